package theme

import "github.com/pulselabs/pulse-go/model"

// CardCornerRadius resolves the survey card radius. Fullscreen layouts have
// no card edge to round, so the radius is forced to 0 regardless of what the
// theme configured.
func CardCornerRadius(t *model.Theme) float64 {
	if IsFullscreen(t) {
		return 0
	}
	if t == nil {
		return Defaults.CardCornerRadius
	}
	return nonNegativeOrDefault(t.CornerRadius, maxCornerRadius, Defaults.CardCornerRadius)
}

func ButtonCornerRadius(t *model.Theme) float64 {
	if t == nil {
		return Defaults.ButtonCornerRadius
	}
	return nonNegativeOrDefault(t.ButtonCornerRadius, maxCornerRadius, Defaults.ButtonCornerRadius)
}
