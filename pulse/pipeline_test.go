package pulse_test

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/hellotri/pulse/software"
)

func TestBuildPipelineDescriptor(t *testing.T) {
	rec := newRecorder(software.Options{})
	ctx := newContext(t, rec, &target{8, 8})

	module, err := pulse.CompileShader(ctx.Device, pulse.TriangleShader())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	pipeline, err := pulse.BuildPipeline(ctx.Device, module, pulse.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}

	defer pipeline.Release()

	if n := rec.Count("create-render-pipeline vs_main fs_main rgba8unorm"); n != 1 {
		t.Errorf("unexpected pipeline creation, events: %v", rec.Events)
	}

	// the shader module must exist before the pipeline is built
	if rec.Index("create-shader-module") > rec.Index("create-render-pipeline") {
		t.Errorf("pipeline built before shader module: %v", rec.Events)
	}
}

func TestBuildPipelineWithoutModule(t *testing.T) {
	rec := newRecorder(software.Options{})
	ctx := newContext(t, rec, &target{8, 8})

	_, err := pulse.BuildPipeline(ctx.Device, nil, pulse.TextureFormatRGBA8Unorm)
	if !errors.Is(err, pulse.ErrPipelineUnbuildable) {
		t.Errorf("got %v, want %v", err, pulse.ErrPipelineUnbuildable)
	}

	if n := rec.Count("create-render-pipeline"); n != 0 {
		t.Errorf("pipeline requested without shader module")
	}
}

func TestPipelineCacheBuildsOncePerFormat(t *testing.T) {
	rec := newRecorder(software.Options{})
	ctx := newContext(t, rec, &target{8, 8})

	cache := pulse.NewPipelineCache[pulse.TrianglePipeline](ctx.Device)
	defer cache.Release()

	conf := pulse.TrianglePipeline{Format: pulse.TextureFormatRGBA8Unorm}

	first, err := cache.Get(conf)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	for range 5 {
		again, err := cache.Get(conf)
		if err != nil {
			t.Fatalf("get: %v", err)
		}

		if again != first {
			t.Fatal("cache returned a different pipeline")
		}
	}

	if n := rec.Count("create-render-pipeline"); n != 1 {
		t.Errorf("pipeline built %d times, want 1", n)
	}

	if _, err := cache.Get(pulse.TrianglePipeline{Format: pulse.TextureFormatBGRA8Unorm}); err != nil {
		t.Fatalf("get: %v", err)
	}

	if cache.Len() != 2 {
		t.Errorf("cache holds %d pipelines, want 2", cache.Len())
	}

	cache.Release()

	if cache.Len() != 0 {
		t.Errorf("release left %d pipelines in the cache", cache.Len())
	}
}

func TestPipelineCacheShaderError(t *testing.T) {
	rec := newRecorder(software.Options{})
	rec.FailShaderModule = true

	ctx := newContext(t, rec, &target{8, 8})

	cache := pulse.NewPipelineCache[pulse.TrianglePipeline](ctx.Device)

	_, err := cache.Get(pulse.TrianglePipeline{Format: pulse.TextureFormatRGBA8Unorm})
	if !errors.Is(err, pulse.ErrShaderCompile) {
		t.Fatalf("got %v, want %v", err, pulse.ErrShaderCompile)
	}

	if cache.Len() != 0 {
		t.Error("failed pipeline was cached")
	}
}
