package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunRejectsWrongArgCount(t *testing.T) {
	if code := run([]string{"a", "b"}); code != 1 {
		t.Errorf("expected exit code 1 for missing arguments, got %d", code)
	}
}

func TestRunRejectsNonNumericSamples(t *testing.T) {
	if code := run([]string{"in.txt", "out.png", "abc", "10", "10"}); code != 1 {
		t.Errorf("expected exit code 1 for non-numeric samples, got %d", code)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.txt")
	outPath := filepath.Join(dir, "out.png")

	scene := `
v 0 0 0
v 0 0 -5
ng 0 0 -1
ng 0 1 0
camera 1 1 2 1.0
sphere 2 1
`
	if err := os.WriteFile(scenePath, []byte(scene), 0o644); err != nil {
		t.Fatalf("failed to write scene fixture: %v", err)
	}

	code := run([]string{scenePath, outPath, "2", "4", "4"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output image to exist: %v", err)
	}
}
