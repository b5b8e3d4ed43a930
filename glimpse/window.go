package glimpse

import "context"

// Window is the host environment the renderer draws into, a desktop window
// or a browser canvas.
type Window interface {
	// Size returns the size of the drawable area in physical pixels.
	Size() (width, height uint32)

	// OnResize registers a callback that is invoked with the new size
	// whenever the drawable area changes. Callbacks run on the render
	// thread, never concurrently to a frame callback.
	OnResize(callback func(width, height uint32))

	// Alert shows a message to the user and blocks until it is acknowledged
	// where the host supports that.
	Alert(message string)

	// Run calls frame once per display refresh until the window is closed,
	// ctx is cancelled or frame returns an error.
	Run(ctx context.Context, frame func() error) error

	Terminate()
}

type resizeCallbacks []func(width, height uint32)

func (r *resizeCallbacks) add(callback func(width, height uint32)) {
	*r = append(*r, callback)
}

func (r resizeCallbacks) notify(width, height uint32) {
	for _, callback := range r {
		callback(width, height)
	}
}
