package pulse_test

import (
	"context"
	"testing"

	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/hellotri/pulse/pulsetest"
	"github.com/oliverbestmann/hellotri/pulse/software"
)

type target struct {
	width, height uint32
}

func (t *target) Size() (uint32, uint32) {
	return t.width, t.height
}

func newRecorder(opts software.Options) *pulsetest.Recorder {
	if opts.Programs.Vertex == nil {
		opts.Programs = software.TrianglePrograms()
	}

	return pulsetest.Wrap(software.New(opts))
}

func newContext(t *testing.T, rec *pulsetest.Recorder, tg *target) *pulse.Context {
	t.Helper()

	ctx, err := pulse.New(context.Background(), rec, tg, pulse.AdapterOptions{})
	if err != nil {
		t.Fatalf("create context: %v", err)
	}

	t.Cleanup(ctx.Release)

	return ctx
}
