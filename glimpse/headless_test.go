package glimpse

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeadlessBudget(t *testing.T) {
	host := NewHeadless(64, 32)
	host.Budget = 5

	var calls int
	err := host.Run(context.Background(), func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if calls != 5 || host.Frames() != 5 {
		t.Errorf("got %d calls and %d frames, want 5", calls, host.Frames())
	}
}

func TestHeadlessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	host := NewHeadless(64, 32)
	host.BeforeFrame = func(frame int) {
		if frame == 3 {
			cancel()
		}
	}

	err := host.Run(ctx, func() error {
		if ctx.Err() != nil {
			t.Error("frame callback ran after cancellation")
		}

		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want %v", err, context.Canceled)
	}

	if host.Frames() != 3 {
		t.Errorf("got %d frames, want 3", host.Frames())
	}
}

func TestHeadlessStopsOnFrameError(t *testing.T) {
	failure := errors.New("failure")

	host := NewHeadless(64, 32)

	err := host.Run(context.Background(), func() error { return failure })
	if !errors.Is(err, failure) {
		t.Errorf("got %v, want %v", err, failure)
	}

	if host.Frames() != 1 {
		t.Errorf("got %d frames, want 1", host.Frames())
	}
}

func TestHeadlessResizeAndAlerts(t *testing.T) {
	host := NewHeadless(64, 32)

	var sizes [][2]uint32
	host.OnResize(func(width, height uint32) {
		sizes = append(sizes, [2]uint32{width, height})
	})

	host.SetSize(100, 50)
	host.SetSize(100, 50)

	if diff := cmp.Diff([][2]uint32{{100, 50}, {100, 50}}, sizes); diff != "" {
		t.Errorf("resize notifications mismatch (-want +got):\n%s", diff)
	}

	if width, height := host.Size(); width != 100 || height != 50 {
		t.Errorf("size is %dx%d", width, height)
	}

	host.Alert("first")
	if diff := cmp.Diff([]string{"first"}, host.Alerts()); diff != "" {
		t.Errorf("alerts mismatch (-want +got):\n%s", diff)
	}
}
