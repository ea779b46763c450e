package layout

import (
	"fmt"
	"strings"
)

// Family is one of the built-in type families.
type Family string

const (
	Times     Family = "times"
	Helvetica Family = "helvetica"
	Courier   Family = "courier"
)

// Emphasis is the weight/slant of a font.
type Emphasis string

const (
	Normal     Emphasis = "normal"
	Bold       Emphasis = "bold"
	Italic     Emphasis = "italic"
	BoldItalic Emphasis = "bolditalic"
)

// LineHeightFactor matches the spacing PDF writers use for a font size.
const LineHeightFactor = 1.15

// FontConfig describes the active font. A zero field means "unset" when used
// as a patch for SetFontConfig.
type FontConfig struct {
	Family   Family   `json:"family,omitempty" yaml:"family"`
	Emphasis Emphasis `json:"emphasis,omitempty" yaml:"emphasis"`
	SizePt   float64  `json:"sizePt,omitempty" yaml:"size_pt"`
}

// DefaultFont is applied for every field the construction config leaves unset.
var DefaultFont = FontConfig{Family: Times, Emphasis: Normal, SizePt: 12}

// Merge returns f with every non-zero field of patch applied.
func (f FontConfig) Merge(patch FontConfig) FontConfig {
	if patch.Family != "" {
		f.Family = patch.Family
	}
	if patch.Emphasis != "" {
		f.Emphasis = patch.Emphasis
	}
	if patch.SizePt != 0 {
		f.SizePt = patch.SizePt
	}
	return f
}

// Normalize validates the fields that are set and returns their canonical form.
func (f FontConfig) Normalize() (FontConfig, error) {
	var err error
	if f.Family != "" {
		if f.Family, err = ParseFamily(string(f.Family)); err != nil {
			return FontConfig{}, err
		}
	}
	if f.Emphasis != "" {
		if f.Emphasis, err = ParseEmphasis(string(f.Emphasis)); err != nil {
			return FontConfig{}, err
		}
	}
	if f.SizePt < 0 {
		return FontConfig{}, fmt.Errorf("%w: font size %gpt", ErrConfig, f.SizePt)
	}
	return f, nil
}

// LineHeight is the height of one wrapped line in inches.
func (f FontConfig) LineHeight() float64 {
	return f.SizePt * LineHeightFactor / PtPerIn
}

// IsBold reports whether the emphasis carries a bold weight.
func (f FontConfig) IsBold() bool { return f.Emphasis == Bold || f.Emphasis == BoldItalic }

// IsItalic reports whether the emphasis is slanted.
func (f FontConfig) IsItalic() bool { return f.Emphasis == Italic || f.Emphasis == BoldItalic }

// ParseFamily accepts the family names case-insensitively.
func ParseFamily(v string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(v))) {
	case Times:
		return Times, nil
	case Helvetica:
		return Helvetica, nil
	case Courier:
		return Courier, nil
	}
	return "", fmt.Errorf("%w: unknown font family %q", ErrConfig, v)
}

// ParseEmphasis accepts the emphasis names case-insensitively; "bold-italic"
// and "italicbold" are aliases of bolditalic.
func ParseEmphasis(v string) (Emphasis, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "normal", "regular":
		return Normal, nil
	case "bold":
		return Bold, nil
	case "italic":
		return Italic, nil
	case "bolditalic", "bold-italic", "italicbold":
		return BoldItalic, nil
	}
	return "", fmt.Errorf("%w: unknown font emphasis %q", ErrConfig, v)
}
