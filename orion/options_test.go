package orion

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oliverbestmann/hellotri/pulse"
)

func envOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts, err := OptionsFromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	want := RunOptions{
		WindowWidth:    1000,
		WindowHeight:   600,
		WindowTitle:    "Hello Triangle",
		Backend:        BackendNative,
		AdapterTimeout: pulse.DefaultRequestTimeout,
	}

	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	opts, err := OptionsFromEnv(envOf(map[string]string{
		"WGPU_FORCE_FALLBACK_ADAPTER": "1",
		"WGPU_POWER_PREFERENCE":       "high-performance",
		"HELLOTRI_ADAPTER_TIMEOUT":    "250ms",
		"HELLOTRI_PROFILE":            "cpu",
		"HELLOTRI_BACKEND":            "software",
		"HELLOTRI_FRAMES":             "10",
		"HELLOTRI_WIDTH":              "320",
		"HELLOTRI_HEIGHT":             "240",
		"HELLOTRI_OUTPUT":             "frame.png",
	}))

	if err != nil {
		t.Fatalf("options: %v", err)
	}

	want := RunOptions{
		WindowWidth:          320,
		WindowHeight:         240,
		WindowTitle:          "Hello Triangle",
		Backend:              BackendSoftware,
		PowerPreference:      pulse.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: true,
		AdapterTimeout:       250 * time.Millisecond,
		Profile:              "cpu",
		Frames:               10,
		Output:               "frame.png",
	}

	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"WGPU_FORCE_FALLBACK_ADAPTER": "maybe",
		"WGPU_POWER_PREFERENCE":       "fastest",
		"HELLOTRI_ADAPTER_TIMEOUT":    "10 parsecs",
		"HELLOTRI_PROFILE":            "block",
		"HELLOTRI_BACKEND":            "vulkan",
		"HELLOTRI_FRAMES":             "-1",
		"HELLOTRI_WIDTH":              "wide",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := OptionsFromEnv(envOf(map[string]string{key: value}))
			if err == nil {
				t.Errorf("%s=%q was accepted", key, value)
			}
		})
	}
}

func TestAlertMessages(t *testing.T) {
	seen := map[string]bool{}

	for _, err := range []error{
		pulse.ErrCapabilityMissing,
		pulse.ErrNoAdapterFound,
		pulse.ErrDeviceUnavailable,
		pulse.ErrSurfaceUnavailable,
		pulse.ErrShaderCompile,
		pulse.ErrPipelineUnbuildable,
	} {
		message := alertMessage(err)
		if seen[message] {
			t.Errorf("message %q is used for more than one error", message)
		}

		seen[message] = true
	}
}
