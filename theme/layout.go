package theme

import "github.com/pulselabs/pulse-go/model"

// Alignment is the resolved text alignment.
type Alignment string

const (
	AlignLeading Alignment = "leading"
	AlignCenter  Alignment = "center"
)

// IsFullscreen reports whether the theme asks for the fullscreen layout.
// Popup is the universal fallback: absent or unrecognized tags are not
// fullscreen.
func IsFullscreen(t *model.Theme) bool {
	return t != nil && t.Layout != nil && *t.Layout == "fullscreen"
}

func ContentPadding(t *model.Theme) float64 {
	if t == nil {
		return Defaults.ContentPadding
	}
	return nonNegativeOrDefault(t.ContentPadding, maxContentPadding, Defaults.ContentPadding)
}

// TextAlignment recognizes only "center"; everything else reads in the
// natural direction.
func TextAlignment(t *model.Theme) Alignment {
	if t != nil && t.TextAlign != nil && *t.TextAlign == "center" {
		return AlignCenter
	}
	return Defaults.TextAlignment
}
