package loaders

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/raoe/engine/engine/assets"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// Texture decodes an image file into a tightly packed RGBA8 pixel buffer.
// PNG, JPEG, BMP and TIFF are recognised by their magic bytes.
func Texture(ctx *assets.LoadContext) (metadata.TextureData, error) {
	img, _, err := image.Decode(ctx.Reader)
	if err != nil {
		return metadata.TextureData{}, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return metadata.TextureData{
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		Channels: 4,
		Pixels:   rgba.Pix,
	}, nil
}
