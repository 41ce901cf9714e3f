package theme

import (
	"strings"

	"github.com/pulselabs/pulse-go/model"
)

// Family is the parsed font-family tag.
type Family string

const (
	FamilySystem  Family = "system"
	FamilyRounded Family = "rounded"
	FamilySerif   Family = "serif"
	FamilyMono    Family = "mono"
	FamilyCasual  Family = "casual"
)

// ParseFamily is total: unrecognized or empty tags resolve to the system
// family.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rounded":
		return FamilyRounded
	case "serif":
		return FamilySerif
	case "mono", "monospaced":
		return FamilyMono
	case "casual":
		return FamilyCasual
	default:
		return FamilySystem
	}
}

// Design selects a variant of the platform font. Rendering maps it to the
// toolkit's equivalent; unavailable designs degrade along Font.Fallback.
type Design string

const (
	DesignDefault    Design = "default"
	DesignRounded    Design = "rounded"
	DesignSerif      Design = "serif"
	DesignMonospaced Design = "monospaced"
)

type Weight string

const (
	WeightRegular  Weight = "regular"
	WeightSemibold Weight = "semibold"
	WeightBold     Weight = "bold"
)

// casualFaceName is the decorative face used by the "casual" family. It is
// an opaque token for the renderer; when the face is unavailable the
// renderer falls back to Font.Design, then to the system design.
const casualFaceName = "ChalkboardSE-Regular"

// Font is a fully resolved, renderer-agnostic font token.
type Font struct {
	FaceName string // named face; empty means design-based
	Design   Design // primary design (or fallback for a named face)
	Fallback Design // last-resort design
	Size     float64
	Weight   Weight
}

// Role names a text slot in the survey card.
type Role string

const (
	RoleTitle       Role = "title"
	RoleBody        Role = "body"
	RoleBase        Role = "base"
	RoleButton      Role = "button"
	RoleQuestion    Role = "question"
	RoleHeaderLabel Role = "headerLabel"
)

func defaultWeight(role Role) Weight {
	switch role {
	case RoleTitle:
		return WeightBold
	case RoleButton, RoleHeaderLabel:
		return WeightSemibold
	default:
		return WeightRegular
	}
}

// FontSize resolves the point size for a role, clamped to [8,100] no matter
// where the value came from. The question role derives from the base size;
// the header label is fixed and ignores the theme entirely.
func FontSize(t *model.Theme, role Role) float64 {
	switch role {
	case RoleTitle:
		return sizeOrDefault(t, func(t *model.Theme) *float64 { return t.TitleFontSize }, Defaults.TitleFontSize)
	case RoleBody:
		return sizeOrDefault(t, func(t *model.Theme) *float64 { return t.BodyFontSize }, Defaults.BodyFontSize)
	case RoleButton:
		return sizeOrDefault(t, func(t *model.Theme) *float64 { return t.ButtonFontSize }, Defaults.ButtonFontSize)
	case RoleQuestion:
		return clamp(FontSize(t, RoleBase)*questionSizeScale, minFontSize, maxFontSize)
	case RoleHeaderLabel:
		return headerLabelFontSize
	default:
		return sizeOrDefault(t, func(t *model.Theme) *float64 { return t.FontSize }, Defaults.BaseFontSize)
	}
}

// sizeOrDefault takes the theme value when present and positive, the
// registry default otherwise, and clamps either.
func sizeOrDefault(t *model.Theme, field func(*model.Theme) *float64, fallback float64) float64 {
	size := fallback
	if t != nil {
		if v := field(t); v != nil && *v > 0 {
			size = *v
		}
	}
	return clamp(size, minFontSize, maxFontSize)
}

// FontFamily resolves the theme's family tag; absent or unknown tags are the
// system family.
func FontFamily(t *model.Theme) Family {
	if t == nil || t.FontFamily == nil {
		return Defaults.FontFamily
	}
	return ParseFamily(*t.FontFamily)
}

// FontFor resolves the complete font token for a role using the role's
// default weight.
func FontFor(t *model.Theme, role Role) Font {
	return FontForWeight(t, role, defaultWeight(role))
}

// FontForWeight is FontFor with a caller-chosen weight. The header label
// keeps its fixed size but still honors the requested weight.
func FontForWeight(t *model.Theme, role Role, weight Weight) Font {
	f := Font{
		Size:     FontSize(t, role),
		Weight:   weight,
		Design:   DesignDefault,
		Fallback: DesignDefault,
	}

	switch FontFamily(t) {
	case FamilyRounded:
		f.Design = DesignRounded
	case FamilySerif:
		f.Design = DesignSerif
	case FamilyMono:
		f.Design = DesignMonospaced
	case FamilyCasual:
		f.FaceName = casualFaceName
		f.Design = DesignRounded
	}
	return f
}
