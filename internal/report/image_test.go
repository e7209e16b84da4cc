// internal/report/image_test.go
package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"tabreport/pkg/apperror"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 52, G: 152, B: 219, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadImage(t *testing.T) {
	path := writeTestPNG(t, 120, 60)

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Width != 120 || img.Height != 60 {
		t.Errorf("dimensions = %dx%d, want 120x60", img.Width, img.Height)
	}
	if img.Format != "png" {
		t.Errorf("Format = %q, want png", img.Format)
	}
	if got := img.HeightFor(40); got != 20 {
		t.Errorf("HeightFor(40) = %f, want 20", got)
	}
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Fatal("LoadImage() error = nil, want IMAGE_NOT_FOUND")
	}
	if apperror.Code(err) != apperror.CodeImageNotFound {
		t.Errorf("Code(err) = %v, want IMAGE_NOT_FOUND", apperror.Code(err))
	}
	if !apperror.IsWarning(err) {
		t.Error("IsWarning(err) = false, want warning severity")
	}
}

func TestLoadImageGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := LoadImage(path)
	if apperror.Code(err) != apperror.CodeImageNotFound {
		t.Errorf("Code(err) = %v, want IMAGE_NOT_FOUND", apperror.Code(err))
	}
}
