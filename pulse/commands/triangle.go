package commands

import (
	"fmt"

	"github.com/oliverbestmann/hellotri/pulse"
)

// TriangleCommand records the commands of one frame: a render pass that
// clears the target and draws the triangle.
type TriangleCommand struct {
	device pulse.Device
}

func NewTriangle(device pulse.Device) *TriangleCommand {
	return &TriangleCommand{device: device}
}

// Draw clears target to the given color, draws the three vertices of the
// triangle using pipeline and submits the result to the queue.
func (c *TriangleCommand) Draw(target pulse.TextureView, pipeline pulse.RenderPipeline, clear pulse.Color) error {
	enc, err := c.device.CreateCommandEncoder("Triangle")
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	pass, err := enc.BeginRenderPass(pulse.RenderPassDescriptor{
		Label:      "Triangle",
		View:       target,
		ClearValue: clear,
	})

	if err != nil {
		return fmt.Errorf("begin render pass: %w", err)
	}

	passGuard := pulse.NewReleaseGuard(pass)
	defer passGuard.Release()

	pass.SetPipeline(pipeline)
	pass.Draw(pulse.TriangleVertexCount, 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	passGuard.Release()

	// encode into a command buffer
	buf, err := enc.Finish("Triangle")
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer buf.Release()

	c.device.Submit(buf)

	return nil
}
