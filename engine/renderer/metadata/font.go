package metadata

// FontGlyph is one character cell inside a bitmap font atlas.
type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

// FontKerning adjusts the advance between a specific pair of codepoints.
type FontKerning struct {
	First  rune
	Second rune
	Amount int16
}

// BitmapFont is a parsed AngelCode-style font descriptor. The page files
// reference texture assets relative to the descriptor's directory.
type BitmapFont struct {
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     []FontGlyph
	Kernings   []FontKerning
	Pages      []string
}
