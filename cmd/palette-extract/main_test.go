package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/palette-extract/internal/palette"
)

// createTestImage writes a PNG with a top band of c1 (rows1 rows) and a
// bottom band of c2 (rows2 rows), 10 pixels wide.
func createTestImage(t *testing.T, c1 color.Color, rows1 int, c2 color.Color, rows2 int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, rows1+rows2))
	for y := 0; y < rows1+rows2; y++ {
		c := c1
		if y >= rows1 {
			c = c2
		}
		for x := 0; x < 10; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"palette-extract"}, args...), &stdout, &stderr)
	return code, stdout.String()
}

func TestRun_MissingArgument(t *testing.T) {
	code, out := runCLI(t)
	if code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
	if out != usageLine+"\n" {
		t.Errorf("output: got %q, want usage line", out)
	}
}

func TestRun_Text(t *testing.T) {
	path := createTestImage(t, color.RGBA{255, 0, 0, 255}, 50, color.RGBA{0, 0, 255, 255}, 20)

	code, out := runCLI(t, path)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (output %q)", code, out)
	}

	want := "Extracted Colors:\n#ff0000 (count: 500)\n#0000ff (count: 200)\n"
	if out != want {
		t.Errorf("output: got %q, want %q", out, want)
	}
}

func TestRun_MinCountFlag(t *testing.T) {
	path := createTestImage(t, color.RGBA{255, 0, 0, 255}, 50, color.RGBA{0, 0, 255, 255}, 20)

	code, out := runCLI(t, "--min-count", "300", path)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if out != "Extracted Colors:\n#ff0000 (count: 500)\n" {
		t.Errorf("output: got %q", out)
	}
}

func TestRun_NonExistent(t *testing.T) {
	code, out := runCLI(t, filepath.Join(t.TempDir(), "missing.png"))
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: failed to decode image") {
		t.Errorf("output: got %q, want an Error: line", out)
	}
	if strings.Contains(out, palette.Banner) {
		t.Error("no palette should be printed on failure")
	}
}

func TestRun_TooManyColors(t *testing.T) {
	path := createTestImage(t, color.RGBA{1, 0, 0, 255}, 20, color.RGBA{2, 0, 0, 255}, 20)

	code, out := runCLI(t, "--max-colors", "1", path)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: too many distinct colors") {
		t.Errorf("output: got %q", out)
	}
}

func TestRun_JSON(t *testing.T) {
	path := createTestImage(t, color.RGBA{0, 128, 0, 255}, 30, color.RGBA{9, 9, 9, 255}, 5)

	code, out := runCLI(t, "--format", "json", path)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (output %q)", code, out)
	}

	var report palette.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	if report.Path != path || report.TotalPixels != 350 {
		t.Errorf("unexpected report header: %+v", report)
	}
	if len(report.Colors) != 1 || report.Colors[0].Hex != "#008000" || report.Colors[0].Count != 300 {
		t.Errorf("unexpected colors: %+v", report.Colors)
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	path := createTestImage(t, color.RGBA{0, 0, 0, 255}, 20, color.RGBA{0, 0, 0, 255}, 0)

	code, out := runCLI(t, "-f", "xml", path)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: unknown output format") {
		t.Errorf("output: got %q", out)
	}
}

func TestRun_Swatch(t *testing.T) {
	path := createTestImage(t, color.RGBA{255, 255, 0, 255}, 40, color.RGBA{0, 0, 0, 255}, 20)
	swatch := filepath.Join(t.TempDir(), "swatch.png")

	code, out := runCLI(t, "--swatch", swatch, path)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (output %q)", code, out)
	}
	if want := "Extracted Colors:\n#ffff00 (count: 400)\n#000000 (count: 200)\n"; out != want {
		t.Errorf("output: got %q, want %q", out, want)
	}

	f, err := os.Open(swatch)
	if err != nil {
		t.Fatalf("swatch not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("swatch is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 2*96 || img.Bounds().Dy() != 96 {
		t.Errorf("swatch dimensions: got %v", img.Bounds())
	}
}

func TestRun_SwatchEmptyPalette(t *testing.T) {
	path := createTestImage(t, color.RGBA{1, 2, 3, 255}, 5, color.RGBA{3, 2, 1, 255}, 5)
	swatch := filepath.Join(t.TempDir(), "swatch.png")

	code, out := runCLI(t, "--swatch", swatch, path)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: failed to render swatch") {
		t.Errorf("output: got %q", out)
	}
	if strings.Contains(out, palette.Banner) {
		t.Errorf("no palette should be printed when the swatch fails: %q", out)
	}
	if _, err := os.Stat(swatch); !os.IsNotExist(err) {
		t.Error("no swatch file should be written for an empty palette")
	}
}

func TestRun_SwatchEmptyPaletteJSON(t *testing.T) {
	path := createTestImage(t, color.RGBA{1, 2, 3, 255}, 5, color.RGBA{3, 2, 1, 255}, 5)
	swatch := filepath.Join(t.TempDir(), "swatch.png")

	code, out := runCLI(t, "--format", "json", "--swatch", swatch, path)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: failed to render swatch") {
		t.Errorf("output: got %q", out)
	}
	if strings.Contains(out, "{") {
		t.Errorf("no JSON report should be printed when the swatch fails: %q", out)
	}
}

func TestRun_SwatchUnwritable(t *testing.T) {
	path := createTestImage(t, color.RGBA{255, 255, 0, 255}, 40, color.RGBA{0, 0, 0, 255}, 20)
	swatch := filepath.Join(t.TempDir(), "missing-dir", "swatch.png")

	code, out := runCLI(t, "--swatch", swatch, path)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error:") || strings.Contains(out, palette.Banner) {
		t.Errorf("output: got %q, want only an Error: line", out)
	}
}

func TestRun_ExtraArguments(t *testing.T) {
	path := createTestImage(t, color.RGBA{255, 0, 0, 255}, 50, color.RGBA{0, 0, 255, 255}, 20)

	// Flags after the path are not parsed as flags.
	code, out := runCLI(t, path, "--min-count", "300")
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: unexpected arguments after <image_path>") {
		t.Errorf("output: got %q", out)
	}
	if strings.Contains(out, palette.Banner) {
		t.Error("no palette should be printed on failure")
	}
}

func TestRun_Region(t *testing.T) {
	path := createTestImage(t, color.RGBA{255, 0, 0, 255}, 50, color.RGBA{0, 0, 255, 255}, 20)

	code, out := runCLI(t, "--region", "bottom-half", path)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (output %q)", code, out)
	}
	// Rows 35-69: 15 red rows and 20 blue rows.
	want := "Extracted Colors:\n#0000ff (count: 200)\n#ff0000 (count: 150)\n"
	if out != want {
		t.Errorf("output: got %q, want %q", out, want)
	}
}

func TestRun_Version(t *testing.T) {
	code, out := runCLI(t, "--version")
	if code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("output %q should contain version %s", out, Version)
	}
}

func TestRun_EnvConfig(t *testing.T) {
	t.Setenv("PALETTE_MIN_COUNT", "300")
	path := createTestImage(t, color.RGBA{255, 0, 0, 255}, 50, color.RGBA{0, 0, 255, 255}, 20)

	code, out := runCLI(t, path)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if out != "Extracted Colors:\n#ff0000 (count: 500)\n" {
		t.Errorf("output: got %q", out)
	}
}

func TestRun_BadEnvConfig(t *testing.T) {
	t.Setenv("PALETTE_FORMAT", "yaml")

	code, out := runCLI(t, "whatever.png")
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out, "Error: PALETTE_FORMAT") {
		t.Errorf("output: got %q", out)
	}
}
