package orion

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/oliverbestmann/hellotri/glimpse"
	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/hellotri/pulse/pulsetest"
)

func TestResizeDuringFrame(t *testing.T) {
	host := glimpse.NewHeadless(64, 48)
	host.Budget = 3

	rec := newRecorder()
	app := startApp(t, host, rec)
	rec.Reset()

	// the host resizes while the first frame is being recorded
	var resized bool
	rec.Hook = func(event string) {
		if event == "create-view 64x48" && !resized {
			resized = true
			host.SetSize(80, 60)
		}
	}

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}

	var views []string
	for _, event := range rec.Events {
		if strings.HasPrefix(event, "create-view ") {
			views = append(views, event)
		}
	}

	want := []string{"create-view 64x48", "create-view 80x60", "create-view 80x60"}
	if diff := cmp.Diff(want, views); diff != "" {
		t.Errorf("frame sizes mismatch (-want +got):\n%s", diff)
	}

	// the new size is configured after the running frame was presented
	if rec.Index("configure 80x60") < rec.Index("present") {
		t.Errorf("surface reconfigured during a frame: %v", rec.Events)
	}

	if app.Driver.Times.SkippedCount != 0 {
		t.Errorf("skipped %d frames", app.Driver.Times.SkippedCount)
	}

	if n := softwareSurface(t, app).Presented(); n != 3 {
		t.Errorf("presented %d frames, want 3", n)
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	host := glimpse.NewHeadless(64, 48)
	host.Budget = 4

	host.BeforeFrame = func(frame int) {
		switch frame {
		case 1:
			host.SetSize(64, 48)
		case 2:
			host.SetSize(32, 32)
			host.SetSize(32, 32)
		}
	}

	rec := newRecorder()
	app := startApp(t, host, rec)

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}

	if n := rec.Count("configure "); n != 2 {
		t.Errorf("surface configured %d times, want 2: %v", n, rec.Events)
	}

	if width, height := app.View.Size(); width != 32 || height != 32 {
		t.Errorf("view size is %dx%d", width, height)
	}
}

func TestSkippedFramesContinue(t *testing.T) {
	host := glimpse.NewHeadless(64, 48)
	host.Budget = 5

	rec := newRecorder()
	app := startApp(t, host, rec)

	rec.FailTextureFrames = 2

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}

	if got := app.Driver.Times.SkippedCount; got != 2 {
		t.Errorf("skipped %d frames, want 2", got)
	}

	if got := app.Driver.Times.FrameCount; got != 3 {
		t.Errorf("rendered %d frames, want 3", got)
	}

	if n := softwareSurface(t, app).Presented(); n != 3 {
		t.Errorf("presented %d frames, want 3", n)
	}
}

func TestOutdatedSurfaceRecovers(t *testing.T) {
	host := glimpse.NewHeadless(64, 48)
	host.Budget = 3

	rec := newRecorder()
	app := startApp(t, host, rec)

	rec.FailTextureFrames = 1
	rec.FailTextureWith = pulse.ErrSurfaceOutdated

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}

	if n := rec.Count("configure 64x48"); n != 2 {
		t.Errorf("surface configured %d times, want 2", n)
	}

	if n := softwareSurface(t, app).Presented(); n != 2 {
		t.Errorf("presented %d frames, want 2", n)
	}
}

func TestZeroSizeSkipsFrames(t *testing.T) {
	host := glimpse.NewHeadless(0, 0)
	host.Budget = 4

	host.BeforeFrame = func(frame int) {
		if frame == 2 {
			host.SetSize(64, 48)
		}
	}

	rec := newRecorder()
	app := startApp(t, host, rec)

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}

	if got := app.Driver.Times.SkippedCount; got != 2 {
		t.Errorf("skipped %d frames, want 2", got)
	}

	if n := rec.Count("get-current-texture"); n != 2 {
		t.Errorf("acquired %d textures, want 2", n)
	}

	if n := softwareSurface(t, app).Presented(); n != 2 {
		t.Errorf("presented %d frames, want 2", n)
	}
}

func TestFrameErrorsDoNotStopTheLoop(t *testing.T) {
	tests := []struct {
		name   string
		inject func(rec *pulsetest.Recorder)
	}{
		{"create view", func(rec *pulsetest.Recorder) { rec.FailCreateView = 1 }},
		{"command encoder", func(rec *pulsetest.Recorder) { rec.FailEncoder = 1 }},
		{"begin render pass", func(rec *pulsetest.Recorder) { rec.FailRenderPass = 1 }},
		{"end render pass", func(rec *pulsetest.Recorder) { rec.FailEndPass = 1 }},
		{"finish", func(rec *pulsetest.Recorder) { rec.FailFinish = 1 }},
		{"present", func(rec *pulsetest.Recorder) { rec.FailPresent = 1 }},
		{"lost device", func(rec *pulsetest.Recorder) {
			rec.FailFinish = 1
			rec.FailWith = pulse.ErrDeviceUnavailable
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			host := glimpse.NewHeadless(64, 48)
			host.Budget = 4

			rec := newRecorder()
			app := startApp(t, host, rec)

			tc.inject(rec)

			if err := app.Loop(context.Background()); err != nil {
				t.Fatalf("loop stopped: %v", err)
			}

			if host.Frames() != 4 {
				t.Errorf("ran %d frames, want 4", host.Frames())
			}

			if got := app.Driver.Times.FrameCount; got != 3 {
				t.Errorf("rendered %d frames, want 3", got)
			}

			if n := softwareSurface(t, app).Presented(); n != 3 {
				t.Errorf("presented %d frames, want 3", n)
			}
		})
	}
}

func TestFailedConfigureOnResizeRecovers(t *testing.T) {
	host := glimpse.NewHeadless(64, 48)
	host.Budget = 4

	rec := newRecorder()
	app := startApp(t, host, rec)

	host.BeforeFrame = func(frame int) {
		if frame == 1 {
			rec.FailConfigure = 1
			host.SetSize(80, 60)
		}
	}

	if err := app.Loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}

	// the failed configure of the resize is retried by the next frame
	if n := rec.Count("configure 80x60"); n != 2 {
		t.Errorf("configured 80x60 %d times, want 2: %v", n, rec.Events)
	}

	if n := softwareSurface(t, app).Presented(); n != 4 {
		t.Errorf("presented %d frames, want 4", n)
	}

	if width, height := app.View.Size(); width != 80 || height != 60 {
		t.Errorf("view size is %dx%d", width, height)
	}
}
