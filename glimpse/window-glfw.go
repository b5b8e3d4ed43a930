//go:build !js

package glimpse

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

type glfwWindow struct {
	win      *glfw.Window
	onResize resizeCallbacks
}

func NewWindow(width, height int, title string) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	// rendering happens through webgpu, we do not want a gl context
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		slog.Debug("Framebuffer resized",
			slog.Int("width", width),
			slog.Int("height", height),
		)

		w.onResize.notify(uint32(width), uint32(height))
	})

	return w, nil
}

func (g *glfwWindow) Size() (uint32, uint32) {
	// the framebuffer size is in pixels, the window size might
	// be in screen coordinates on high dpi displays
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) OnResize(callback func(width, height uint32)) {
	g.onResize.add(callback)
}

// Alert shows the message in the title of the window and blocks
// until the user closes it.
func (g *glfwWindow) Alert(message string) {
	showAlert(os.Stderr, g.win, glfw.WaitEvents, message)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) Terminate() {
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(ctx context.Context, frame func() error) error {
	for !g.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		// resize callbacks fire from within PollEvents, before the frame
		glfw.PollEvents()

		if err := frame(); err != nil {
			return err
		}
	}

	return nil
}
