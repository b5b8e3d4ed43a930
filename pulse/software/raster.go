package software

import (
	"image"
	"image/color"

	"github.com/oliverbestmann/hellotri/glm"
)

// Framebuffer holds linear rgba float colors, one per pixel, row by row.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []glm.Vec4f
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]glm.Vec4f, width*height),
	}
}

func (fb *Framebuffer) At(x, y int) glm.Vec4f {
	return fb.Pix[y*fb.Width+x]
}

func (fb *Framebuffer) Set(x, y int, value glm.Vec4f) {
	fb.Pix[y*fb.Width+x] = value
}

func (fb *Framebuffer) Clear(value glm.Vec4f) {
	for idx := range fb.Pix {
		fb.Pix[idx] = value
	}
}

// Image converts the framebuffer into an 8 bit image.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))

	for y := range fb.Height {
		for x := range fb.Width {
			r, g, b, a := fb.At(x, y).XYZW()
			img.SetNRGBA(x, y, color.NRGBA{
				R: toUint8(r),
				G: toUint8(g),
				B: toUint8(b),
				A: toUint8(a),
			})
		}
	}

	return img
}

func toUint8(value float32) uint8 {
	return uint8(glm.Clamp(value, 0, 1)*255 + 0.5)
}

// ToScreen maps a clip space position into pixel coordinates of the framebuffer.
// The viewport covers the full framebuffer, y points downwards.
func (fb *Framebuffer) ToScreen(clip glm.Vec4f) glm.Vec2f {
	ndc := clip.PerspectiveDivide()

	return glm.Vec2f{
		(ndc[0] + 1) / 2 * float32(fb.Width),
		(1 - ndc[1]) / 2 * float32(fb.Height),
	}
}

// DrawTriangle rasterizes the triangle given in clip space. Every pixel whose
// center is covered gets the color computed by fragment. Both windings are
// drawn.
func (fb *Framebuffer) DrawTriangle(a, b, c glm.Vec4f, fragment FragmentFunc) {
	pa, pb, pc := fb.ToScreen(a), fb.ToScreen(b), fb.ToScreen(c)

	area := glm.Edge(pa, pb, pc)
	if area == 0 {
		return
	}

	// bounding box of the triangle, clipped to the framebuffer
	minX := max(0, int(min(pa[0], pb[0], pc[0])))
	minY := max(0, int(min(pa[1], pb[1], pc[1])))
	maxX := min(fb.Width-1, int(max(pa[0], pb[0], pc[0])))
	maxY := min(fb.Height-1, int(max(pa[1], pb[1], pc[1])))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := glm.Vec2f{float32(x) + 0.5, float32(y) + 0.5}

			w0 := glm.Edge(pb, pc, p)
			w1 := glm.Edge(pc, pa, p)
			w2 := glm.Edge(pa, pb, p)

			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}

			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				fb.Set(x, y, fragment())
			}
		}
	}
}
