package theme

import (
	"testing"

	"github.com/pulselabs/pulse-go/model"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestFontSizeClampsEvenExplicitValues(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{500, 100},
		{100, 100},
		{24, 24},
		{8, 8},
		{4, 8},
	}
	for _, c := range cases {
		th := &model.Theme{TitleFontSize: fptr(c.in)}
		if got := FontSize(th, RoleTitle); got != c.want {
			t.Errorf("title size %v resolved to %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFontSizeNonPositiveFallsBack(t *testing.T) {
	for _, in := range []float64{0, -12} {
		th := &model.Theme{BodyFontSize: fptr(in)}
		if got := FontSize(th, RoleBody); got != Defaults.BodyFontSize {
			t.Errorf("body size %v resolved to %v, want default %v", in, got, Defaults.BodyFontSize)
		}
	}
	if got := FontSize(nil, RoleBase); got != Defaults.BaseFontSize {
		t.Errorf("nil theme base size = %v, want %v", got, Defaults.BaseFontSize)
	}
}

func TestQuestionSizeDerivesFromBase(t *testing.T) {
	th := &model.Theme{FontSize: fptr(20)}
	if got := FontSize(th, RoleQuestion); !approx(got, 23) {
		t.Fatalf("question size = %v, want ~23 (20 * 1.15)", got)
	}

	// derived size stays bounded even when base sits at the cap
	th = &model.Theme{FontSize: fptr(100)}
	if got := FontSize(th, RoleQuestion); got != 100 {
		t.Fatalf("question size = %v, want clamp at 100", got)
	}
}

func TestHeaderLabelIsFixed(t *testing.T) {
	th := &model.Theme{FontSize: fptr(40), TitleFontSize: fptr(40)}
	f := FontFor(th, RoleHeaderLabel)
	if f.Size != 16 {
		t.Fatalf("header label size = %v, want fixed 16", f.Size)
	}
	if f.Weight != WeightSemibold {
		t.Fatalf("header label weight = %v, want semibold", f.Weight)
	}
}

func TestParseFamily(t *testing.T) {
	cases := map[string]Family{
		"system":     FamilySystem,
		"ROUNDED":    FamilyRounded,
		"Serif":      FamilySerif,
		"mono":       FamilyMono,
		"monospaced": FamilyMono,
		"casual":     FamilyCasual,
		"comic sans": FamilySystem,
		"":           FamilySystem,
	}
	for in, want := range cases {
		if got := ParseFamily(in); got != want {
			t.Errorf("ParseFamily(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCasualFamilyFallbackChain(t *testing.T) {
	th := &model.Theme{FontFamily: sptr("casual")}
	f := FontFor(th, RoleBody)
	if f.FaceName == "" {
		t.Fatal("casual family should carry a named face")
	}
	if f.Design != DesignRounded || f.Fallback != DesignDefault {
		t.Fatalf("casual fallback chain = %v -> %v, want rounded -> default", f.Design, f.Fallback)
	}
}

func TestDefaultWeights(t *testing.T) {
	cases := map[Role]Weight{
		RoleTitle:       WeightBold,
		RoleBody:        WeightRegular,
		RoleBase:        WeightRegular,
		RoleButton:      WeightSemibold,
		RoleQuestion:    WeightRegular,
		RoleHeaderLabel: WeightSemibold,
	}
	for role, want := range cases {
		if got := FontFor(nil, role).Weight; got != want {
			t.Errorf("%s default weight = %v, want %v", role, got, want)
		}
	}
}

func TestCallerWeightOverride(t *testing.T) {
	f := FontForWeight(nil, RoleBody, WeightBold)
	if f.Weight != WeightBold {
		t.Fatalf("weight = %v, want caller-supplied bold", f.Weight)
	}
}

func TestUnknownFamilyDegradesToSystem(t *testing.T) {
	th := &model.Theme{FontFamily: sptr("papyrus")}
	f := FontFor(th, RoleTitle)
	if f.Design != DesignDefault || f.FaceName != "" {
		t.Fatalf("unknown family resolved to %+v, want system design", f)
	}
}
