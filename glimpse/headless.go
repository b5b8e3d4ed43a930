package glimpse

import (
	"context"
	"log/slog"
	"slices"
)

// Headless is a host without a display. Its size is set from code and the
// run loop ticks as fast as frames are rendered.
type Headless struct {
	width, height uint32
	onResize      resizeCallbacks

	// Budget is the number of frames Run renders before it returns.
	// Zero means to run until the context is cancelled.
	Budget int

	// BeforeFrame is called with the index of the frame
	// before the frame callback runs.
	BeforeFrame func(frame int)

	frames int
	alerts []string
}

var _ Window = (*Headless)(nil)

func NewHeadless(width, height uint32) *Headless {
	return &Headless{width: width, height: height}
}

func (h *Headless) Size() (uint32, uint32) {
	return h.width, h.height
}

// SetSize changes the size of the drawable area and notifies
// the resize callbacks, even if the size did not change.
func (h *Headless) SetSize(width, height uint32) {
	h.width, h.height = width, height
	h.onResize.notify(width, height)
}

func (h *Headless) OnResize(callback func(width, height uint32)) {
	h.onResize.add(callback)
}

func (h *Headless) Alert(message string) {
	slog.Error("Alert", slog.String("message", message))
	h.alerts = append(h.alerts, message)
}

// Alerts returns the messages passed to Alert so far.
func (h *Headless) Alerts() []string {
	return slices.Clone(h.alerts)
}

// Frames returns the number of frame callbacks that were run.
func (h *Headless) Frames() int {
	return h.frames
}

func (h *Headless) Run(ctx context.Context, frame func() error) error {
	for h.Budget == 0 || h.frames < h.Budget {
		if h.BeforeFrame != nil {
			h.BeforeFrame(h.frames)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		h.frames += 1

		if err := frame(); err != nil {
			return err
		}
	}

	return nil
}

func (h *Headless) Terminate() {
}
