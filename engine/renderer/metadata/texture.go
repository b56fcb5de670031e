package metadata

import "github.com/raoe/engine/engine/core"

// FilterMode selects how a texture is sampled across texel boundaries.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

func (m FilterMode) String() string {
	if m == FilterNearest {
		return "nearest"
	}
	return "linear"
}

// ParseFilterMode resolves a manifest string; unknown values fall back to
// linear filtering.
func ParseFilterMode(s string) FilterMode {
	switch s {
	case "nearest":
		return FilterNearest
	case "linear":
		return FilterLinear
	}
	core.Ensure(false, "unknown filter mode %q, using linear", s)
	return FilterLinear
}

// RepeatMode selects the wrap behaviour outside [0,1] texture coordinates.
type RepeatMode uint8

const (
	RepeatRepeat RepeatMode = iota
	RepeatMirrored
	RepeatClampToEdge
	RepeatClampToBorder
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatRepeat:
		return "repeat"
	case RepeatMirrored:
		return "mirrored_repeat"
	case RepeatClampToEdge:
		return "clamp_to_edge"
	case RepeatClampToBorder:
		return "clamp_to_border"
	}
	return "repeat"
}

// ParseRepeatMode resolves a manifest string; unknown values fall back to
// repeat.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "repeat":
		return RepeatRepeat
	case "mirrored_repeat":
		return RepeatMirrored
	case "clamp_to_edge":
		return RepeatClampToEdge
	case "clamp_to_border":
		return RepeatClampToBorder
	}
	core.Ensure(false, "unknown repeat mode %q, using repeat", s)
	return RepeatRepeat
}

// TextureParams controls sampling of one texture object.
type TextureParams struct {
	MinFilter FilterMode
	MagFilter FilterMode
	RepeatU   RepeatMode
	RepeatV   RepeatMode
}

// DefaultTextureParams is linear filtering with repeat wrap.
func DefaultTextureParams() TextureParams {
	return TextureParams{
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
		RepeatU:   RepeatRepeat,
		RepeatV:   RepeatRepeat,
	}
}

// TextureData is the CPU-side pixel buffer: tightly packed RGBA8, row by
// row, top-left origin.
type TextureData struct {
	Width    uint32
	Height   uint32
	Channels uint32
	Pixels   []byte
}
