//go:build js

package glimpse

import (
	"context"
	"syscall/js"

	"github.com/oliverbestmann/webgpu/wgpu"
)

type jsWindow struct {
	canvas   js.Value
	onResize resizeCallbacks
}

func NewWindow(width, height int, title string) (Window, error) {
	document := js.Global().Get("document")
	canvas := document.Call("createElement", "canvas")
	document.Get("body").Call("appendChild", canvas)

	document.Set("title", title)

	canvas.Set("style", "width:100vw; height:100vh; display:block")

	win := &jsWindow{
		canvas: canvas,
	}

	// the canvas must have its final size before the surface is configured
	resizeCanvas(canvas)

	return win, nil
}

func (g *jsWindow) Size() (uint32, uint32) {
	return uint32(g.canvas.Get("width").Int()), uint32(g.canvas.Get("height").Int())
}

func (g *jsWindow) OnResize(callback func(width, height uint32)) {
	g.onResize.add(callback)
}

func (g *jsWindow) Alert(message string) {
	js.Global().Call("alert", message)
}

func (g *jsWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{Canvas: g.canvas}
}

func (g *jsWindow) Terminate() {
	// do nothing
}

func (g *jsWindow) Run(ctx context.Context, frame func() error) error {
	result := make(chan error, 1)

	resized := true

	onResize := js.FuncOf(func(this js.Value, args []js.Value) any {
		resized = true
		return nil
	})

	defer onResize.Release()

	js.Global().Call("addEventListener", "resize", onResize)
	defer js.Global().Call("removeEventListener", "resize", onResize)

	var tick js.Func

	tick = js.FuncOf(func(this js.Value, args []js.Value) any {
		if err := ctx.Err(); err != nil {
			result <- err
			return nil
		}

		// resize notifications are delivered between frames
		if resized {
			resized = false

			if resizeCanvas(g.canvas) {
				g.onResize.notify(g.Size())
			}
		}

		if err := frame(); err != nil {
			result <- err
			return nil
		}

		js.Global().Call("requestAnimationFrame", tick)
		return nil
	})

	defer tick.Release()

	js.Global().Call("requestAnimationFrame", tick)

	return <-result
}

// resizeCanvas updates the pixel size of the canvas to match the viewport.
// Returns true if the size changed.
func resizeCanvas(canvas js.Value) bool {
	vv := js.Global().Get("visualViewport")
	viewWidth := vv.Get("width").Float()
	viewHeight := vv.Get("height").Float()

	ratio := js.Global().Get("devicePixelRatio").Float()

	width := int(viewWidth * ratio)
	height := int(viewHeight * ratio)

	if canvas.Get("width").Int() == width && canvas.Get("height").Int() == height {
		return false
	}

	canvas.Set("width", width)
	canvas.Set("height", height)

	return true
}
