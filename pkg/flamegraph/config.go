// Package flamegraph is the boundary to the external flame-layout
// renderer. It writes the canonical collapsed-stack text format,
// carries the rendering options, and shells out to the layout binary;
// graphical placement itself is the renderer's job.
package flamegraph

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Palettes accepted by the layout renderer.
var knownPalettes = map[string]bool{
	"hot":  true,
	"mem":  true,
	"io":   true,
	"java": true,
	"aqua": true,
}

// Config holds the rendering options passed through to the layout
// renderer.
type Config struct {
	// Title displayed at the top of the flamegraph.
	Title string `yaml:"title" default:"Stylus Transaction Profile"`
	// CountName is what the weight represents, shown in tooltips.
	CountName string `yaml:"countName" default:"gas"`
	// Palette is the color scheme (hot, mem, io, java, aqua).
	Palette string `yaml:"palette" default:"hot"`
	// MinWidth is the minimum frame width in pixels to draw.
	MinWidth float64 `yaml:"minWidth" default:"0.1"`
	// ImageWidth is the image width in pixels.
	ImageWidth int `yaml:"imageWidth" default:"1200"`
	// Reverse draws the root at the top instead of the bottom.
	Reverse bool `yaml:"reverse"`
}

// Validate checks the config for values the renderer would reject.
func (c *Config) Validate() error {
	// Unknown palettes are normalized rather than rejected, matching
	// the renderer's own behavior.
	return nil
}

// NormalizePalette maps a user-supplied palette name onto one the
// renderer accepts, warning and falling back to "hot" when unknown.
// "consistent" is an accepted alias for the hash-stable aqua palette.
func NormalizePalette(log logrus.FieldLogger, palette string) string {
	palette = strings.ToLower(palette)

	if palette == "consistent" {
		return "aqua"
	}

	if knownPalettes[palette] {
		return palette
	}

	log.WithField("palette", palette).Warn("Unknown palette, using hot")

	return "hot"
}
