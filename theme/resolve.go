// Package theme normalizes the optional, untrusted theme payload into
// bounded design tokens. Every resolver is total: for any input, including a
// nil theme, it returns a valid value by clamping, falling back to the
// Defaults registry, or deriving from another resolved color. Resolvers hold
// no state and are safe for concurrent use.
package theme

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/pulselabs/pulse-go/model"
)

// Resolved is a one-pass snapshot of every design token. Derived colors are
// computed here exactly once so call sites cannot recompute them
// inconsistently.
type Resolved struct {
	Fullscreen     bool
	TextAlignment  Alignment
	ContentPadding float64

	CardCornerRadius   float64
	ButtonCornerRadius float64

	Primary    Color
	Background Color
	Text       Color
	ButtonText Color

	OptionSelectedBackground   Color
	OptionSelectedText         Color
	OptionUnselectedBackground Color
	OptionUnselectedBorder     Color
	SecondaryText              Color

	Title       Font
	Body        Font
	Base        Font
	Button      Font
	Question    Font
	HeaderLabel Font

	Delay             time.Duration
	ShowCloseButton   bool
	Entrance          Animation
	Speed             Speed
	AnimationDuration time.Duration
}

// Resolve computes the full token set for a theme. A nil theme yields the
// all-defaults snapshot.
func Resolve(t *model.Theme) Resolved {
	speed := AnimationSpeed(t)
	return Resolved{
		Fullscreen:     IsFullscreen(t),
		TextAlignment:  TextAlignment(t),
		ContentPadding: ContentPadding(t),

		CardCornerRadius:   CardCornerRadius(t),
		ButtonCornerRadius: ButtonCornerRadius(t),

		Primary:    PrimaryColor(t),
		Background: BackgroundColor(t),
		Text:       TextColor(t),
		ButtonText: ButtonTextColor(t),

		OptionSelectedBackground:   OptionSelectedBackground(t),
		OptionSelectedText:         OptionSelectedText(t),
		OptionUnselectedBackground: OptionUnselectedBackground(t),
		OptionUnselectedBorder:     OptionUnselectedBorder(t),
		SecondaryText:              SecondaryTextColor(t),

		Title:       FontFor(t, RoleTitle),
		Body:        FontFor(t, RoleBody),
		Base:        FontFor(t, RoleBase),
		Button:      FontFor(t, RoleButton),
		Question:    FontFor(t, RoleQuestion),
		HeaderLabel: FontFor(t, RoleHeaderLabel),

		Delay:             time.Duration(DelaySeconds(t)) * time.Second,
		ShowCloseButton:   ShowCloseButton(t),
		Entrance:          EntranceAnimation(t),
		Speed:             speed,
		AnimationDuration: speed.Duration(),
	}
}

// Validate reports every present-but-invalid field. It exists for debug
// logging only; resolution itself never fails, it silently falls back.
func Validate(t *model.Theme) error {
	if t == nil {
		return nil
	}

	var errs *multierror.Error

	checkHex := func(name string, hex *string) {
		if hex == nil {
			return
		}
		if _, ok := ParseHex(*hex); !ok {
			errs = multierror.Append(errs, fmt.Errorf("%s: not a 6- or 8-digit hex color: %q", name, *hex))
		}
	}
	checkHex("primaryColorHex", t.PrimaryColorHex)
	checkHex("backgroundColorHex", t.BackgroundColorHex)
	checkHex("textColorHex", t.TextColorHex)
	checkHex("buttonTextColorHex", t.ButtonTextColorHex)
	checkHex("optionSelectedBackgroundHex", t.OptionSelectedBackgroundHex)
	checkHex("optionSelectedTextHex", t.OptionSelectedTextHex)

	checkRange := func(name string, v *float64, lo, hi float64) {
		if v != nil && (*v < lo || *v > hi) {
			errs = multierror.Append(errs, fmt.Errorf("%s: %v outside [%v,%v]", name, *v, lo, hi))
		}
	}
	checkRange("cornerRadius", t.CornerRadius, 0, maxCornerRadius)
	checkRange("buttonCornerRadius", t.ButtonCornerRadius, 0, maxCornerRadius)
	checkRange("fontSize", t.FontSize, minFontSize, maxFontSize)
	checkRange("titleFontSize", t.TitleFontSize, minFontSize, maxFontSize)
	checkRange("bodyFontSize", t.BodyFontSize, minFontSize, maxFontSize)
	checkRange("buttonFontSize", t.ButtonFontSize, minFontSize, maxFontSize)
	checkRange("contentPadding", t.ContentPadding, 0, maxContentPadding)

	if t.DelaySeconds != nil && (*t.DelaySeconds < 0 || *t.DelaySeconds > maxDelaySeconds) {
		errs = multierror.Append(errs, fmt.Errorf("delaySeconds: %d outside [0,%d]", *t.DelaySeconds, maxDelaySeconds))
	}

	checkTag := func(name string, v *string, known ...string) {
		if v == nil {
			return
		}
		for _, k := range known {
			if *v == k {
				return
			}
		}
		errs = multierror.Append(errs, fmt.Errorf("%s: unrecognized tag %q", name, *v))
	}
	checkTag("layout", t.Layout, "popup", "fullscreen")
	if t.FontFamily != nil {
		// family tags are the one case-insensitive enum
		lower := strings.ToLower(*t.FontFamily)
		checkTag("fontFamily", &lower, "system", "rounded", "serif", "mono", "monospaced", "casual")
	}
	checkTag("textAlign", t.TextAlign, "left", "center")
	checkTag("entranceAnimation", t.EntranceAnimation,
		string(AnimationSlideFromBottom), string(AnimationSlideFromTop),
		string(AnimationSlideFromLeft), string(AnimationSlideFromRight),
		string(AnimationFadeIn), string(AnimationScale), string(AnimationNone))
	checkTag("animationSpeed", t.AnimationSpeed,
		string(SpeedFast), string(SpeedNormal), string(SpeedSlow))

	return errs.ErrorOrNil()
}
