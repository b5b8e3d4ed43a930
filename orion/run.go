package orion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hellotri/glimpse"
	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/pkg/profile"
)

// App holds everything that was acquired during startup.
type App struct {
	Host    glimpse.Window
	Context *pulse.Context
	View    *pulse.View
	Driver  *FrameDriver

	pipelines *pulse.PipelineCache[pulse.TrianglePipeline]
}

// Start runs the startup sequence: check that the backend is usable, acquire
// adapter and device, configure the surface to the size of the host and
// build the pipeline. Steps run strictly in order, the first failure stops
// the sequence. Failures are reported to the user once using host.Alert.
func Start(ctx context.Context, host glimpse.Window, backend pulse.Backend, opts RunOptions) (app *App, err error) {
	opts = opts.withDefaults()

	defer func() {
		if err == nil {
			return
		}

		slog.Error("Startup failed", slog.Any("err", err))
		host.Alert(alertMessage(err))

		if app != nil {
			app.Release()
			app = nil
		}
	}()

	if !backend.Available() {
		return nil, pulse.ErrCapabilityMissing
	}

	slog.Info("WebGPU is supported", slog.String("backend", backend.Name()))

	gpu, err := pulse.New(ctx, backend, host, pulse.AdapterOptions{
		PowerPreference:      opts.PowerPreference,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		Timeout:              opts.AdapterTimeout,
	})

	if err != nil {
		return nil, fmt.Errorf("initializing wgpu: %w", err)
	}

	app = &App{Host: host, Context: gpu}

	app.View, err = pulse.NewView(gpu)
	if err != nil {
		return app, fmt.Errorf("create view: %w", err)
	}

	// the first configure must succeed, later ones are retried
	width, height := host.Size()
	if err := app.View.Configure(width, height); err != nil {
		return app, fmt.Errorf("%w: %w", pulse.ErrSurfaceUnavailable, err)
	}

	host.OnResize(func(width, height uint32) {
		if err := app.View.Resize(width, height); err != nil {
			slog.Warn("Failed to resize surface", slog.Any("err", err))
		}
	})

	app.pipelines = pulse.NewPipelineCache[pulse.TrianglePipeline](gpu.Device)

	// build the pipeline now, shader errors must not wait for the first frame
	if _, err := app.pipelines.Get(pulse.TrianglePipeline{Format: app.View.Format()}); err != nil {
		return app, err
	}

	app.Driver = NewFrameDriver(app.View, app.pipelines)

	return app, nil
}

// Loop renders frames until the host stops or ctx is cancelled.
// Cancellation is not reported as an error.
func (app *App) Loop(ctx context.Context) error {
	err := app.Host.Run(ctx, app.Driver.Frame)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (app *App) Release() {
	if app.pipelines != nil {
		app.pipelines.Release()
		app.pipelines = nil
	}

	if app.Context != nil {
		app.Context.Release()
		app.Context = nil
	}
}

// Run starts the renderer on host and runs the frame loop.
func Run(ctx context.Context, host glimpse.Window, backend pulse.Backend, opts RunOptions) error {
	opts = opts.withDefaults()

	app, err := Start(ctx, host, backend, opts)
	if err != nil {
		return err
	}

	defer app.Release()

	switch opts.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	}

	if err := app.Loop(ctx); err != nil {
		return err
	}

	if opts.Output != "" {
		return app.WriteSnapshot(opts.Output)
	}

	return nil
}
