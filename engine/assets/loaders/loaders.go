// Package loaders provides the built-in asset loaders: plain text, RGBA
// textures, GLSL shader sources and AngelCode bitmap fonts.
package loaders

import (
	"io"

	"github.com/raoe/engine/engine/assets"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// RegisterDefaults installs every built-in loader on the asset system.
func RegisterDefaults(s *assets.System) {
	assets.RegisterLoader(s, Text)
	assets.RegisterLoader(s, Texture)
	assets.RegisterLoader(s, ShaderSource)
	assets.RegisterLoader(s, BitmapFont)
}

// Text loads a whole file into a string component.
func Text(ctx *assets.LoadContext) (string, error) {
	data, err := io.ReadAll(ctx.Reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ShaderSource loads a GLSL module verbatim; preprocessing happens at
// shader build time, not load time.
func ShaderSource(ctx *assets.LoadContext) (metadata.ShaderSource, error) {
	data, err := io.ReadAll(ctx.Reader)
	if err != nil {
		return metadata.ShaderSource{}, err
	}
	return metadata.ShaderSource{Path: ctx.Path, Source: string(data)}, nil
}
