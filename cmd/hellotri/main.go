package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/oliverbestmann/hellotri/glimpse"
	"github.com/oliverbestmann/hellotri/orion"
	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/hellotri/pulse/native"
	"github.com/oliverbestmann/hellotri/pulse/software"
)

func main() {
	slog.SetDefault(slog.New(newLogHandler(os.Stderr, logLevelOf(os.Getenv("HELLOTRI_LOG_LEVEL")))))

	opts, err := orion.OptionsFromEnv(os.LookupEnv)
	if err != nil {
		slog.Error("Invalid configuration", slog.Any("err", err))
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		// the user was already alerted by orion
		slog.Error("Exit", slog.Any("err", err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts orion.RunOptions) error {
	host, backend, err := setup(opts)
	if err != nil {
		return err
	}

	defer host.Terminate()
	defer backend.Release()

	return orion.Run(ctx, host, backend, opts)
}

// setup selects the host and backend. The software backend can not present
// to a window and always renders headless.
func setup(opts orion.RunOptions) (glimpse.Window, pulse.Backend, error) {
	switch opts.Backend {
	case orion.BackendSoftware:
		host := glimpse.NewHeadless(uint32(opts.WindowWidth), uint32(opts.WindowHeight))
		host.Budget = opts.Frames

		backend := software.New(software.Options{Programs: software.TrianglePrograms()})

		return host, backend, nil

	default:
		// create a new window (or canvas)
		win, err := glimpse.NewWindow(opts.WindowWidth, opts.WindowHeight, opts.WindowTitle)
		if err != nil {
			return nil, nil, fmt.Errorf("create window: %w", err)
		}

		return win, native.New(), nil
	}
}
