package resize

import (
	"fmt"
	"strings"
)

// Orientation is the axis a clipping box lays its entries out along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	default:
		return "horizontal"
	}
}

// ParseOrientation accepts "horizontal"/"h"/"row" and "vertical"/"v"/"column".
// An empty string is horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h", "row":
		return Horizontal, nil
	case "vertical", "v", "column", "col":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("invalid orientation %q: expected horizontal or vertical", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which covers JSON, YAML
// and TOML decoding.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}
