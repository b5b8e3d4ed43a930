package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/hellotri/pulse/commands"
)

// FrameDriver renders one frame per host tick: acquire the surface texture,
// clear it and draw the triangle, submit and present.
type FrameDriver struct {
	view      *pulse.View
	pipelines *pulse.PipelineCache[pulse.TrianglePipeline]
	triangle  *commands.TriangleCommand

	Times FrameTimes
}

func NewFrameDriver(view *pulse.View, pipelines *pulse.PipelineCache[pulse.TrianglePipeline]) *FrameDriver {
	return &FrameDriver{
		view:      view,
		pipelines: pipelines,
		triangle:  commands.NewTriangle(view.Device),
	}
}

// Frame is the callback for the host run loop. Errors of a single frame are
// logged and the loop continues with the next frame.
func (d *FrameDriver) Frame() error {
	err := d.RenderFrame()

	switch {
	case err == nil:
		if d.Times.Tick() {
			slog.Debug("Frame stats",
				slog.Float64("fps", d.Times.FPS()),
				slog.Duration("avg", d.Times.AverageDuration),
				slog.Duration("max", d.Times.MaxDuration),
				slog.Uint64("skipped", d.Times.SkippedCount),
			)
		}

		return nil

	case errors.Is(err, pulse.ErrFrameAcquisition):
		d.Times.Skip()
		slog.Debug("Skip frame", slog.Any("err", err))
		return nil

	default:
		slog.Warn("Failed to render frame", slog.Any("err", err))
		return nil
	}
}

// RenderFrame renders and presents a single frame. If no texture can be
// acquired, an error wrapping pulse.ErrFrameAcquisition is returned and
// nothing is submitted.
func (d *FrameDriver) RenderFrame() error {
	// applies a pending resize before the texture is acquired
	surface, err := d.view.BeginFrame()
	if err != nil {
		return err
	}

	defer d.view.EndFrame()

	guard := pulse.NewReleaseGuard(surface)
	defer guard.Release()

	if err := d.drawToSurface(surface); err != nil {
		return fmt.Errorf("draw to surface: %w", err)
	}

	// present the rendered image
	if err := d.view.Surface.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	// we do not need to release the screen if present was successful
	guard.Keep()

	return nil
}

func (d *FrameDriver) drawToSurface(surface pulse.SurfaceTexture) error {
	pipeline, err := d.pipelines.Get(pulse.TrianglePipeline{Format: d.view.Format()})
	if err != nil {
		return err
	}

	surfaceView, err := surface.CreateView()
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}

	defer surfaceView.Release()

	return d.triangle.Draw(surfaceView, pipeline, pulse.BackgroundColor)
}
