package pulse

import "fmt"

type TextureFormat uint32

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSrgb
	TextureFormatRGBA8Unorm
	TextureFormatRGBA8UnormSrgb
	TextureFormatRGBA16Float
)

var textureFormatNames = map[TextureFormat]string{
	TextureFormatUndefined:      "undefined",
	TextureFormatBGRA8Unorm:     "bgra8unorm",
	TextureFormatBGRA8UnormSrgb: "bgra8unorm-srgb",
	TextureFormatRGBA8Unorm:     "rgba8unorm",
	TextureFormatRGBA8UnormSrgb: "rgba8unorm-srgb",
	TextureFormatRGBA16Float:    "rgba16float",
}

func (f TextureFormat) String() string {
	if name, ok := textureFormatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("TextureFormat(%d)", uint32(f))
}

// AlphaMode defines how the surface content is composited
// with the host background.
type AlphaMode uint32

const (
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
	AlphaModeUnpremultiplied
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaModeOpaque:
		return "opaque"
	case AlphaModePremultiplied:
		return "premultiplied"
	case AlphaModeUnpremultiplied:
		return "unpremultiplied"
	default:
		return "auto"
	}
}
