package orion

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
)

// snapshotter is implemented by surfaces that keep the presented
// frame in memory.
type snapshotter interface {
	Snapshot() image.Image
}

var errNoSnapshot = errors.New("surface does not keep presented frames")

// WriteSnapshot encodes the last presented frame as png into path.
func (app *App) WriteSnapshot(path string) error {
	surface, ok := app.Context.Surface.(snapshotter)
	if !ok {
		return errNoSnapshot
	}

	img := surface.Snapshot()
	if img == nil {
		return errors.New("no frame was presented")
	}

	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	defer fp.Close()

	if err := png.Encode(fp, img); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	slog.Info("Snapshot written", slog.String("path", path))

	return fp.Close()
}
