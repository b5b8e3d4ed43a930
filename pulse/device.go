package pulse

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultRequestTimeout bounds each adapter and device request.
const DefaultRequestTimeout = 10 * time.Second

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter
type Context struct {
	Device
	Surface Surface
	Adapter Adapter
	Backend Backend
}

// New binds a surface to target, then acquires an adapter that can present to
// it and a device from that adapter. The steps run strictly in this order,
// device acquisition never starts before an adapter was found.
func New(ctx context.Context, backend Backend, target SurfaceTarget, opts AdapterOptions) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{Backend: backend}

	// create a Surface based on the window
	st.Surface, err = backend.CreateSurface(target)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	if st.Surface == nil {
		return st, ErrSurfaceUnavailable
	}

	slog.Info("WebGPU context acquired", slog.String("backend", backend.Name()))

	// create an adapter that can render to the Surface
	opts.CompatibleSurface = st.Surface

	st.Adapter, err = AcquireAdapter(ctx, backend, opts)
	if err != nil {
		return st, err
	}

	// get a Device with the default settings
	st.Device, err = AcquireDevice(ctx, st.Adapter, DeviceDescriptor{Label: "Device"}, opts.Timeout)
	if err != nil {
		return st, err
	}

	return st, nil
}

// AcquireAdapter requests a physical GPU from the backend.
func AcquireAdapter(ctx context.Context, backend Backend, opts AdapterOptions) (Adapter, error) {
	adapter, err := await(ctx, opts.Timeout, func(ctx context.Context) (Adapter, error) {
		return backend.RequestAdapter(ctx, opts)
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapterFound, err)
	}

	if adapter == nil {
		return nil, ErrNoAdapterFound
	}

	info := adapter.Info()
	slog.Info("GPU adapter found",
		slog.String("name", info.Name),
		slog.String("driver", info.Driver),
		slog.String("backend", info.BackendType),
		slog.String("powerPreference", opts.PowerPreference.String()),
	)

	return adapter, nil
}

// AcquireDevice requests a logical device from the given adapter.
func AcquireDevice(ctx context.Context, adapter Adapter, desc DeviceDescriptor, timeout time.Duration) (Device, error) {
	if adapter == nil {
		return nil, fmt.Errorf("%w: no adapter", ErrDeviceUnavailable)
	}

	device, err := await(ctx, timeout, func(ctx context.Context) (Device, error) {
		return adapter.RequestDevice(ctx, desc)
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	if device == nil {
		return nil, ErrDeviceUnavailable
	}

	slog.Info("GPU device acquired", slog.String("label", desc.Label))

	return device, nil
}

// await issues a request and waits for its result. The request must honor
// the deadline of the context it receives. A result that arrives after the
// deadline passed is released and the deadline error returned instead.
func await[T Releaser](ctx context.Context, timeout time.Duration, request func(ctx context.Context) (T, error)) (T, error) {
	var zeroT T

	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return zeroT, err
	}

	value, err := request(ctx)
	if err != nil {
		return zeroT, err
	}

	if err := ctx.Err(); err != nil {
		if any(value) != nil {
			value.Release()
		}

		return zeroT, err
	}

	return value, nil
}

func (d *Context) Release() {
	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
