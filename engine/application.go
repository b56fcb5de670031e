package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// InitFlags selects which optional engine modules are imported at init.
type InitFlags uint8

const (
	// FlagRendering imports the window and render modules. Without it the
	// engine runs headless: no window, no GL context, no draw phases.
	FlagRendering InitFlags = 1 << iota
)

// ApplicationConfig is the host application's description of itself. Name
// and OrgName seed the per-user preference directory; the rest shapes the
// window.
type ApplicationConfig struct {
	Name    string
	OrgName string
	// BasePath anchors the primary read mount. Empty derives it from the
	// executable's directory.
	BasePath    string
	StartPosX   uint32
	StartPosY   uint32
	StartWidth  uint32
	StartHeight uint32
	LogLevel    log.Level
	Flags       InitFlags
}

func (c *ApplicationConfig) validate() error {
	if c.Name == "" {
		return fmt.Errorf("application config: Name is required")
	}
	if c.OrgName == "" {
		return fmt.Errorf("application config: OrgName is required")
	}
	if c.Flags&FlagRendering != 0 && (c.StartWidth == 0 || c.StartHeight == 0) {
		return fmt.Errorf("application config: window size is required when rendering")
	}
	return nil
}
