package theme

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nonNegativeOrDefault is the shared numeric resolution rule: a present,
// non-negative value is clamped to [0, max]; a negative value counts as
// absent and falls back, it is not clamped up to zero.
func nonNegativeOrDefault(v *float64, max, fallback float64) float64 {
	if v != nil && *v >= 0 {
		return clamp(*v, 0, max)
	}
	return fallback
}
