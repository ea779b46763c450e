package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig reports an unrecognized or invalid configuration value.
var ErrConfig = errors.New("layout: invalid configuration")

// Size is an explicit page size in inches.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Margins are page margins in inches.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// Config selects page format, orientation, margins and the initial font.
// Format and MarginPreset name a preset; Size and Margins are used when the
// corresponding name is empty.
type Config struct {
	Format       string     `json:"format" yaml:"format"`
	Size         Size       `json:"size" yaml:"size"`
	Orientation  string     `json:"orientation" yaml:"orientation"`
	MarginPreset string     `json:"marginPreset" yaml:"margin_preset"`
	Margins      Margins    `json:"margins" yaml:"margins"`
	Font         FontConfig `json:"font" yaml:"font"`
}

// Geometry is the resolved, immutable page geometry.
type Geometry struct {
	Width   float64
	Height  float64
	Margins Margins
}

// WritingWidth is the page width minus the left and right margins.
func (g Geometry) WritingWidth() float64 {
	return g.Width - g.Margins.Left - g.Margins.Right
}

// WritingHeight is the page height minus the top and bottom margins.
func (g Geometry) WritingHeight() float64 {
	return g.Height - g.Margins.Top - g.Margins.Bottom
}

var formatPresets = map[string]Size{
	"letter": {Width: 8.5, Height: 11},
	"legal":  {Width: 8.5, Height: 14},
	"a4":     {Width: 595.28 / PtPerIn, Height: 841.89 / PtPerIn},
}

var marginPresets = map[string]Margins{
	"normal": {Top: 1, Bottom: 1, Left: 1, Right: 1},
	"narrow": {Top: 0.5, Bottom: 0.5, Left: 0.5, Right: 0.5},
}

// ResolveGeometry turns a Config into concrete page dimensions and margins.
func ResolveGeometry(cfg Config) (Geometry, error) {
	size, err := resolvePageSize(cfg.Format, cfg.Size)
	if err != nil {
		return Geometry{}, err
	}
	size, err = orient(size, cfg.Orientation)
	if err != nil {
		return Geometry{}, err
	}
	margins, err := resolveMargins(cfg.MarginPreset, cfg.Margins)
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{Width: size.Width, Height: size.Height, Margins: margins}
	if g.WritingWidth() <= 0 || g.WritingHeight() <= 0 {
		return Geometry{}, fmt.Errorf("%w: margins %+v leave no writing space on a %.2fx%.2fin page", ErrConfig, margins, g.Width, g.Height)
	}
	return g, nil
}

func resolvePageSize(format string, explicit Size) (Size, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "" {
		if explicit.Width <= 0 || explicit.Height <= 0 {
			return Size{}, fmt.Errorf("%w: page size %.2fx%.2fin", ErrConfig, explicit.Width, explicit.Height)
		}
		return explicit, nil
	}
	size, ok := formatPresets[name]
	if !ok {
		return Size{}, fmt.Errorf("%w: unknown page format %q", ErrConfig, format)
	}
	return size, nil
}

func orient(size Size, orientation string) (Size, error) {
	short, long := size.Width, size.Height
	if short > long {
		short, long = long, short
	}
	switch strings.ToLower(strings.TrimSpace(orientation)) {
	case "", "p", "portrait":
		return Size{Width: short, Height: long}, nil
	case "l", "landscape":
		return Size{Width: long, Height: short}, nil
	default:
		return Size{}, fmt.Errorf("%w: unknown orientation %q", ErrConfig, orientation)
	}
}

func resolveMargins(preset string, explicit Margins) (Margins, error) {
	name := strings.ToLower(strings.TrimSpace(preset))
	if name == "" {
		if explicit.Top < 0 || explicit.Bottom < 0 || explicit.Left < 0 || explicit.Right < 0 {
			return Margins{}, fmt.Errorf("%w: negative margin %+v", ErrConfig, explicit)
		}
		return explicit, nil
	}
	m, ok := marginPresets[name]
	if !ok {
		return Margins{}, fmt.Errorf("%w: unknown margin preset %q", ErrConfig, preset)
	}
	return m, nil
}
