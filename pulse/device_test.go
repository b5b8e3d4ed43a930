package pulse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/hellotri/pulse/software"
)

func TestNewAcquiresInOrder(t *testing.T) {
	rec := newRecorder(software.Options{})
	newContext(t, rec, &target{64, 64})

	want := []string{"create-surface", "request-adapter", "request-device"}
	if diff := cmp.Diff(want, rec.Events); diff != "" {
		t.Errorf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestNewWithoutAdapter(t *testing.T) {
	rec := newRecorder(software.Options{})
	rec.NoAdapter = true

	ctx, err := pulse.New(context.Background(), rec, &target{64, 64}, pulse.AdapterOptions{})
	if !errors.Is(err, pulse.ErrNoAdapterFound) {
		t.Fatalf("got %v, want %v", err, pulse.ErrNoAdapterFound)
	}

	if ctx != nil {
		t.Error("context returned on failure")
	}

	if n := rec.Count("request-device"); n != 0 {
		t.Errorf("device requested %d times without an adapter", n)
	}
}

func TestNewDeviceFailure(t *testing.T) {
	rec := newRecorder(software.Options{})
	rec.FailDevice = true

	_, err := pulse.New(context.Background(), rec, &target{64, 64}, pulse.AdapterOptions{})
	if !errors.Is(err, pulse.ErrDeviceUnavailable) {
		t.Fatalf("got %v, want %v", err, pulse.ErrDeviceUnavailable)
	}
}

func TestNewSurfaceFailure(t *testing.T) {
	rec := newRecorder(software.Options{})
	rec.FailSurface = true

	_, err := pulse.New(context.Background(), rec, &target{64, 64}, pulse.AdapterOptions{})
	if !errors.Is(err, pulse.ErrSurfaceUnavailable) {
		t.Fatalf("got %v, want %v", err, pulse.ErrSurfaceUnavailable)
	}

	if n := rec.Count("request-adapter"); n != 0 {
		t.Errorf("adapter requested %d times without a surface", n)
	}
}

func TestAcquireDeviceWithoutAdapter(t *testing.T) {
	_, err := pulse.AcquireDevice(context.Background(), nil, pulse.DeviceDescriptor{}, 0)
	if !errors.Is(err, pulse.ErrDeviceUnavailable) {
		t.Fatalf("got %v, want %v", err, pulse.ErrDeviceUnavailable)
	}
}

// slowBackend answers adapter requests only after delay.
type slowBackend struct {
	*software.Backend
	delay    time.Duration
	honorCtx bool
	adapter  *releaseCounter
}

type releaseCounter struct {
	pulse.Adapter
	released int
}

func (r *releaseCounter) Release() {
	r.released++
}

func (b *slowBackend) RequestAdapter(ctx context.Context, opts pulse.AdapterOptions) (pulse.Adapter, error) {
	if b.honorCtx {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(b.delay):
		}
	} else {
		time.Sleep(b.delay)
	}

	adapter, err := b.Backend.RequestAdapter(context.Background(), opts)
	if err != nil {
		return nil, err
	}

	b.adapter = &releaseCounter{Adapter: adapter}
	return b.adapter, nil
}

func TestAcquireAdapterTimeout(t *testing.T) {
	backend := &slowBackend{Backend: software.New(software.Options{}), delay: time.Second, honorCtx: true}

	_, err := pulse.AcquireAdapter(context.Background(), backend, pulse.AdapterOptions{Timeout: 10 * time.Millisecond})
	if !errors.Is(err, pulse.ErrNoAdapterFound) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want deadline exceeded", err)
	}
}

func TestAcquireAdapterLateResultIsReleased(t *testing.T) {
	backend := &slowBackend{Backend: software.New(software.Options{}), delay: 50 * time.Millisecond}

	_, err := pulse.AcquireAdapter(context.Background(), backend, pulse.AdapterOptions{Timeout: 5 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want deadline exceeded", err)
	}

	if backend.adapter == nil || backend.adapter.released != 1 {
		t.Error("adapter that arrived after the deadline was not released")
	}
}

func TestAcquireAdapterCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newRecorder(software.Options{})

	_, err := pulse.AcquireAdapter(ctx, rec, pulse.AdapterOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want %v", err, context.Canceled)
	}

	if n := rec.Count("request-adapter"); n != 0 {
		t.Errorf("request issued on a cancelled context")
	}
}
