package theme

import (
	"encoding/json"
	"errors"

	"github.com/lucasb-eyer/go-colorful"
)

var errNoAccent = errors.New("no accent color")

// Accent is an optional #RRGGBB color. The zero value means no color was found.
type Accent struct {
	hex string
}

// NewAccent wraps a #RRGGBB string.
func NewAccent(hex string) Accent {
	return Accent{hex: hex}
}

func (a Accent) Present() bool {
	return a.hex != ""
}

// Hex returns the color as found in the stylesheet, or "" when absent.
func (a Accent) Hex() string {
	return a.hex
}

// String returns the color, or "None" when absent.
func (a Accent) String() string {
	if a.hex == "" {
		return "None"
	}
	return a.hex
}

// Color decodes the accent for callers that need RGB components.
func (a Accent) Color() (colorful.Color, error) {
	if a.hex == "" {
		return colorful.Color{}, errNoAccent
	}
	return colorful.Hex(a.hex)
}

func (a Accent) MarshalJSON() ([]byte, error) {
	if a.hex == "" {
		return []byte("null"), nil
	}
	return json.Marshal(a.hex)
}
