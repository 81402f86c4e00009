package renderer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestImageSaveWritesPNG(t *testing.T) {
	img := NewImage(2, 2)
	img.Colours[0] = RGB{R: 1, G: 0, B: 0}
	img.Colours[1] = RGB{R: 0, G: 1, B: 0}
	img.Colours[2] = RGB{R: 0, G: 0, B: 1}
	img.Colours[3] = RGB{R: 1, G: 1, B: 1}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := img.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected nonempty PNG file")
	}
}

func TestToByteClampsOutOfRange(t *testing.T) {
	if toByte(-1) != 0 {
		t.Error("expected negative values to clamp to 0")
	}
	if toByte(2) != 255 {
		t.Error("expected values above 1 to clamp to 255")
	}
}
