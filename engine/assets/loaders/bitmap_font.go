package loaders

import (
	"github.com/fzipp/bmfont"

	"github.com/raoe/engine/engine/assets"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// BitmapFont parses an AngelCode .fnt descriptor. Page textures are not
// loaded here; the referenced files are recorded for the caller to resolve
// against the same pack.
func BitmapFont(ctx *assets.LoadContext) (metadata.BitmapFont, error) {
	desc, err := bmfont.ReadDescriptor(ctx.Reader)
	if err != nil {
		return metadata.BitmapFont{}, err
	}

	out := metadata.BitmapFont{
		Face:       desc.Info.Face,
		Size:       uint32(desc.Info.Size),
		LineHeight: int32(desc.Common.LineHeight),
		Baseline:   int32(desc.Common.Base),
		AtlasSizeX: int32(desc.Common.ScaleW),
		AtlasSizeY: int32(desc.Common.ScaleH),
		Glyphs:     make([]metadata.FontGlyph, 0, len(desc.Chars)),
		Kernings:   make([]metadata.FontKerning, 0, len(desc.Kerning)),
		Pages:      make([]string, 0, len(desc.Pages)),
	}

	for _, p := range desc.Pages {
		out.Pages = append(out.Pages, p.File)
	}
	for _, g := range desc.Chars {
		out.Glyphs = append(out.Glyphs, metadata.FontGlyph{
			Codepoint: g.ID,
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		})
	}
	for pair, k := range desc.Kerning {
		out.Kernings = append(out.Kernings, metadata.FontKerning{
			First:  pair.First,
			Second: pair.Second,
			Amount: int16(k.Amount),
		})
	}

	return out, nil
}
