package theme

import (
	"time"

	"github.com/pulselabs/pulse-go/model"
)

// Animation is the entrance animation variant.
type Animation string

const (
	AnimationSlideFromBottom Animation = "slideFromBottom"
	AnimationSlideFromTop    Animation = "slideFromTop"
	AnimationSlideFromLeft   Animation = "slideFromLeft"
	AnimationSlideFromRight  Animation = "slideFromRight"
	AnimationFadeIn          Animation = "fadeIn"
	AnimationScale           Animation = "scale"
	AnimationNone            Animation = "none"
)

// ParseAnimation is total: unrecognized tags resolve to the default
// entrance.
func ParseAnimation(s string) Animation {
	switch Animation(s) {
	case AnimationSlideFromBottom, AnimationSlideFromTop,
		AnimationSlideFromLeft, AnimationSlideFromRight,
		AnimationFadeIn, AnimationScale, AnimationNone:
		return Animation(s)
	default:
		return Defaults.Entrance
	}
}

type Speed string

const (
	SpeedFast   Speed = "fast"
	SpeedNormal Speed = "normal"
	SpeedSlow   Speed = "slow"
)

func ParseSpeed(s string) Speed {
	switch Speed(s) {
	case SpeedFast, SpeedNormal, SpeedSlow:
		return Speed(s)
	default:
		return Defaults.Speed
	}
}

// Duration maps each speed to its fixed animation duration.
func (s Speed) Duration() time.Duration {
	switch s {
	case SpeedFast:
		return 500 * time.Millisecond
	case SpeedSlow:
		return time.Second
	default:
		return 750 * time.Millisecond
	}
}

// DelaySeconds resolves the presentation delay, bounded to [0,30]. Negative
// values count as absent.
func DelaySeconds(t *model.Theme) int {
	if t != nil && t.DelaySeconds != nil && *t.DelaySeconds >= 0 {
		return int(clamp(float64(*t.DelaySeconds), 0, maxDelaySeconds))
	}
	return Defaults.DelaySeconds
}

func ShowCloseButton(t *model.Theme) bool {
	if t != nil && t.ShowCloseButton != nil {
		return *t.ShowCloseButton
	}
	return Defaults.ShowCloseButton
}

func EntranceAnimation(t *model.Theme) Animation {
	if t == nil || t.EntranceAnimation == nil {
		return Defaults.Entrance
	}
	return ParseAnimation(*t.EntranceAnimation)
}

func AnimationSpeed(t *model.Theme) Speed {
	if t == nil || t.AnimationSpeed == nil {
		return Defaults.Speed
	}
	return ParseSpeed(*t.AnimationSpeed)
}
