package theme

import (
	"strconv"
	"strings"

	"github.com/pulselabs/pulse-go/model"
)

// Color is a resolved RGBA color with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// ParseHex parses a 6-digit RGB or 8-digit RGBA hex string, with or without
// a leading '#', case-insensitive. Anything else is rejected.
func ParseHex(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, false
	}

	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return Color{}, false
	}

	a := 1.0
	if len(s) == 8 {
		a = float64(v&0xFF) / 255
		v >>= 8
	}
	return Color{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
		A: a,
	}, true
}

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Luminance uses the 0.299/0.587/0.114 channel weights. The weights are
// load-bearing: rendered contrast decisions depend on these exact values.
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func (c Color) IsDark() bool {
	return c.Luminance() < 0.5
}

// colorOrDefault resolves one configurable color field: a present, valid hex
// wins; anything else falls back to the registry hex, which is a constant
// and always parses.
func colorOrDefault(hex *string, fallbackHex string) Color {
	if hex != nil {
		if c, ok := ParseHex(*hex); ok {
			return c
		}
	}
	c, _ := ParseHex(fallbackHex)
	return c
}

func PrimaryColor(t *model.Theme) Color {
	if t == nil {
		return colorOrDefault(nil, Defaults.PrimaryColorHex)
	}
	return colorOrDefault(t.PrimaryColorHex, Defaults.PrimaryColorHex)
}

func BackgroundColor(t *model.Theme) Color {
	if t == nil {
		return colorOrDefault(nil, Defaults.BackgroundColorHex)
	}
	return colorOrDefault(t.BackgroundColorHex, Defaults.BackgroundColorHex)
}

func TextColor(t *model.Theme) Color {
	if t == nil {
		return colorOrDefault(nil, Defaults.TextColorHex)
	}
	return colorOrDefault(t.TextColorHex, Defaults.TextColorHex)
}

func ButtonTextColor(t *model.Theme) Color {
	if t == nil {
		return colorOrDefault(nil, Defaults.ButtonTextColorHex)
	}
	return colorOrDefault(t.ButtonTextColorHex, Defaults.ButtonTextColorHex)
}

// OptionSelectedBackground is derived from the primary color at a fixed
// opacity unless the theme overrides it with a valid hex of its own.
func OptionSelectedBackground(t *model.Theme) Color {
	if t != nil && t.OptionSelectedBackgroundHex != nil {
		if c, ok := ParseHex(*t.OptionSelectedBackgroundHex); ok {
			return c
		}
	}
	return PrimaryColor(t).WithAlpha(selectedBackgroundOpacity)
}

// OptionSelectedText follows the resolved text color; selecting an option
// must not change its text color.
func OptionSelectedText(t *model.Theme) Color {
	if t != nil && t.OptionSelectedTextHex != nil {
		if c, ok := ParseHex(*t.OptionSelectedTextHex); ok {
			return c
		}
	}
	return TextColor(t)
}

func OptionUnselectedBackground(t *model.Theme) Color {
	return TextColor(t).WithAlpha(unselectedBackgroundOpacity)
}

func OptionUnselectedBorder(t *model.Theme) Color {
	return TextColor(t).WithAlpha(unselectedBorderOpacity)
}

func SecondaryTextColor(t *model.Theme) Color {
	return TextColor(t).WithAlpha(secondaryTextOpacity)
}
