package native

import (
	"github.com/oliverbestmann/hellotri/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var textureFormatToWGPU = map[pulse.TextureFormat]wgpu.TextureFormat{
	pulse.TextureFormatBGRA8Unorm:     wgpu.TextureFormatBGRA8Unorm,
	pulse.TextureFormatBGRA8UnormSrgb: wgpu.TextureFormatBGRA8UnormSrgb,
	pulse.TextureFormatRGBA8Unorm:     wgpu.TextureFormatRGBA8Unorm,
	pulse.TextureFormatRGBA8UnormSrgb: wgpu.TextureFormatRGBA8UnormSrgb,
	pulse.TextureFormatRGBA16Float:    wgpu.TextureFormatRGBA16Float,
}

var textureFormatFromWGPU = invert(textureFormatToWGPU)

var alphaModeToWGPU = map[pulse.AlphaMode]wgpu.CompositeAlphaMode{
	pulse.AlphaModeAuto:            wgpu.CompositeAlphaModeAuto,
	pulse.AlphaModeOpaque:          wgpu.CompositeAlphaModeOpaque,
	pulse.AlphaModePremultiplied:   wgpu.CompositeAlphaModePremultiplied,
	pulse.AlphaModeUnpremultiplied: wgpu.CompositeAlphaModeUnpremultiplied,
}

var alphaModeFromWGPU = invert(alphaModeToWGPU)

func invert[K, V comparable](m map[K]V) map[V]K {
	result := make(map[V]K, len(m))
	for key, value := range m {
		result[value] = key
	}

	return result
}

func powerPreferenceOf(pref pulse.PowerPreference) wgpu.PowerPreference {
	switch pref {
	case pulse.PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case pulse.PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}
