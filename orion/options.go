package orion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oliverbestmann/hellotri/pulse"
)

type RunOptions struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// Backend selects the gpu implementation, "native" or "software".
	Backend string

	PowerPreference      pulse.PowerPreference
	ForceFallbackAdapter bool

	// AdapterTimeout bounds the adapter and the device request.
	AdapterTimeout time.Duration

	// Profile enables profiling of the run loop, "cpu" or "mem".
	Profile string

	// Frames is the number of frames a headless host renders,
	// zero renders until cancelled.
	Frames int

	// Output is a png file the last frame of the software
	// backend is written to.
	Output string
}

func (opts RunOptions) withDefaults() RunOptions {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1000
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Hello Triangle"
	}

	if opts.Backend == "" {
		opts.Backend = BackendNative
	}

	if opts.AdapterTimeout == 0 {
		opts.AdapterTimeout = pulse.DefaultRequestTimeout
	}

	return opts
}

const (
	BackendNative   = "native"
	BackendSoftware = "software"
)

// OptionsFromEnv reads the options from environment variables, lookup
// is usually os.LookupEnv. Unset variables keep their default value.
func OptionsFromEnv(lookup func(key string) (string, bool)) (RunOptions, error) {
	var opts RunOptions

	env := envReader{lookup: lookup}

	opts.ForceFallbackAdapter = env.flag("WGPU_FORCE_FALLBACK_ADAPTER")
	opts.WindowWidth = env.number("HELLOTRI_WIDTH")
	opts.WindowHeight = env.number("HELLOTRI_HEIGHT")
	opts.Frames = env.number("HELLOTRI_FRAMES")
	opts.AdapterTimeout = env.duration("HELLOTRI_ADAPTER_TIMEOUT")
	opts.Output = env.str("HELLOTRI_OUTPUT")

	switch pref := strings.ToLower(env.str("WGPU_POWER_PREFERENCE")); pref {
	case "":
	case "low-power", "low":
		opts.PowerPreference = pulse.PowerPreferenceLowPower
	case "high-performance", "high":
		opts.PowerPreference = pulse.PowerPreferenceHighPerformance
	default:
		env.fail("WGPU_POWER_PREFERENCE", fmt.Errorf("unknown power preference %q", pref))
	}

	switch backend := strings.ToLower(env.str("HELLOTRI_BACKEND")); backend {
	case "", BackendNative, BackendSoftware:
		opts.Backend = backend
	default:
		env.fail("HELLOTRI_BACKEND", fmt.Errorf("unknown backend %q", backend))
	}

	switch profile := strings.ToLower(env.str("HELLOTRI_PROFILE")); profile {
	case "", "cpu", "mem":
		opts.Profile = profile
	default:
		env.fail("HELLOTRI_PROFILE", fmt.Errorf("unknown profile mode %q", profile))
	}

	if env.err != nil {
		return RunOptions{}, env.err
	}

	return opts.withDefaults(), nil
}

// envReader remembers the first error while parsing values.
type envReader struct {
	lookup func(key string) (string, bool)
	err    error
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("parse %s: %w", key, err)
	}
}

func (e *envReader) str(key string) string {
	value, _ := e.lookup(key)
	return strings.TrimSpace(value)
}

func (e *envReader) flag(key string) bool {
	value := e.str(key)
	if value == "" {
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		e.fail(key, err)
	}

	return parsed
}

func (e *envReader) number(key string) int {
	value := e.str(key)
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		e.fail(key, err)
		return 0
	}

	if parsed < 0 {
		e.fail(key, fmt.Errorf("negative value %d", parsed))
		return 0
	}

	return parsed
}

func (e *envReader) duration(key string) time.Duration {
	value := e.str(key)
	if value == "" {
		return 0
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		e.fail(key, err)
	}

	return parsed
}
