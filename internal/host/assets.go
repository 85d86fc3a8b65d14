package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Loader prepares one asset. All loaders run concurrently before the first
// plan request; any failure is fatal for the match.
type Loader func(ctx context.Context) error

// Images are the sprites a renderer needs before play can start.
var Images = []string{
	"images/batsman.gif",
	"images/bowler.png",
	"images/fielder.png",
}

type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("FATAL ERROR: Could not load image: %s", e.Path)
}

func (e *AssetError) Unwrap() error { return e.Err }

// FileLoader checks that name exists under dir and is a non-empty regular file.
func FileLoader(dir, name string) Loader {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return &AssetError{Path: name, Err: err}
		}
		if !info.Mode().IsRegular() || info.Size() == 0 {
			return &AssetError{Path: name, Err: fmt.Errorf("not a usable file")}
		}
		return nil
	}
}

// ImageLoaders returns one FileLoader per entry in Images.
func ImageLoaders(dir string) []Loader {
	loaders := make([]Loader, 0, len(Images))
	for _, name := range Images {
		loaders = append(loaders, FileLoader(dir, name))
	}
	return loaders
}
