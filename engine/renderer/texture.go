package renderer

import "github.com/raoe/engine/engine/renderer/metadata"

// Texture pairs a CPU-side pixel buffer with its GPU object. The GPU
// object is created lazily by Upload.
type Texture struct {
	device Device
	handle TextureHandle
	Data   metadata.TextureData
	Params metadata.TextureParams
}

func NewTexture(device Device, data metadata.TextureData, params metadata.TextureParams) *Texture {
	return &Texture{device: device, Data: data, Params: params}
}

// Upload pushes the pixel data to the GPU on first use and returns the
// texture handle.
func (t *Texture) Upload() TextureHandle {
	if t.handle == 0 {
		t.handle = t.device.CreateTexture(t.Data, t.Params)
	}
	return t.handle
}

func (t *Texture) Handle() TextureHandle { return t.handle }

// Release frees the GPU texture; the CPU pixels stay valid.
func (t *Texture) Release() {
	if t.handle != 0 {
		t.device.DestroyTexture(t.handle)
		t.handle = 0
	}
}

// CheckerboardPixels generates a size×size RGBA checkerboard with cells of
// cell×cell pixels, alternating between the two given colours.
func CheckerboardPixels(size, cell uint32, a, b [4]byte) metadata.TextureData {
	pixels := make([]byte, size*size*4)
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			c := a
			if ((x/cell)+(y/cell))%2 == 1 {
				c = b
			}
			i := (y*size + x) * 4
			copy(pixels[i:i+4], c[:])
		}
	}
	return metadata.TextureData{Width: size, Height: size, Channels: 4, Pixels: pixels}
}

// NewCheckerboardTexture builds the magenta/black fallback texture used
// when an asset's own texture is missing or failed to load.
func NewCheckerboardTexture(device Device) *Texture {
	data := CheckerboardPixels(16, 4, [4]byte{255, 0, 255, 255}, [4]byte{0, 0, 0, 255})
	params := metadata.TextureParams{
		MinFilter: metadata.FilterNearest,
		MagFilter: metadata.FilterNearest,
		RepeatU:   metadata.RepeatRepeat,
		RepeatV:   metadata.RepeatRepeat,
	}
	return NewTexture(device, data, params)
}
