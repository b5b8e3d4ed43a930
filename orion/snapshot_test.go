package orion

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/hellotri/glimpse"
	"github.com/oliverbestmann/hellotri/pulse/software"
)

func TestRunWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")

	host := glimpse.NewHeadless(40, 30)
	host.Budget = 2

	backend := software.New(software.Options{Programs: software.TrianglePrograms()})

	if err := Run(context.Background(), host, backend, RunOptions{Output: path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	fp, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}

	defer fp.Close()

	img, err := png.Decode(fp)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	if size := img.Bounds().Size(); size.X != 40 || size.Y != 30 {
		t.Errorf("snapshot has size %v", size)
	}

	r, g, b, a := img.At(20, 15).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("center pixel is (%d, %d, %d, %d), want red", r, g, b, a)
	}
}

func TestSnapshotRequiresSoftwareSurface(t *testing.T) {
	host := glimpse.NewHeadless(40, 30)

	// the recorder hides the software surface
	app := startApp(t, host, newRecorder())

	if err := app.WriteSnapshot(filepath.Join(t.TempDir(), "frame.png")); !errors.Is(err, errNoSnapshot) {
		t.Errorf("got %v, want %v", err, errNoSnapshot)
	}
}
