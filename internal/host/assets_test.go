package host

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestImageLoaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range Images {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, load := range ImageLoaders(dir) {
		if err := load(context.Background()); err != nil {
			t.Errorf("loader error: %v", err)
		}
	}
}

func TestFileLoader_Missing(t *testing.T) {
	err := FileLoader(t.TempDir(), "images/fielder.png")(context.Background())

	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}
	if assetErr.Error() != "FATAL ERROR: Could not load image: images/fielder.png" {
		t.Errorf("Error() = %q", assetErr.Error())
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("AssetError should unwrap to fs.ErrNotExist")
	}
}

func TestFileLoader_Empty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ball.png"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := FileLoader(dir, "ball.png")(context.Background()); err == nil {
		t.Error("empty file should fail to load")
	}
}
