package theme

// Defaults is the single fallback registry. Every resolver falls back here
// instead of carrying its own literal, so a default can never drift between
// call sites.
var Defaults = struct {
	PrimaryColorHex    string
	BackgroundColorHex string
	TextColorHex       string
	ButtonTextColorHex string

	CardCornerRadius   float64
	ButtonCornerRadius float64

	FontFamily     Family
	BaseFontSize   float64
	TitleFontSize  float64
	BodyFontSize   float64
	ButtonFontSize float64

	TextAlignment  Alignment
	ContentPadding float64

	DelaySeconds    int
	ShowCloseButton bool
	Entrance        Animation
	Speed           Speed
}{
	PrimaryColorHex:    "#007AFF",
	BackgroundColorHex: "#FFFFFF",
	TextColorHex:       "#000000",
	ButtonTextColorHex: "#FFFFFF",

	CardCornerRadius:   16,
	ButtonCornerRadius: 10,

	FontFamily:     FamilySystem,
	BaseFontSize:   16,
	TitleFontSize:  20,
	BodyFontSize:   16,
	ButtonFontSize: 16,

	TextAlignment:  AlignLeading,
	ContentPadding: 20,

	DelaySeconds:    0,
	ShowCloseButton: true,
	Entrance:        AnimationSlideFromBottom,
	Speed:           SpeedNormal,
}

// Fixed design constants, not theme-configurable.
const (
	selectedBackgroundOpacity   = 0.20
	unselectedBackgroundOpacity = 0.08
	unselectedBorderOpacity     = 0.30
	secondaryTextOpacity        = 0.60

	questionSizeScale   = 1.15
	headerLabelFontSize = 16

	minFontSize = 8
	maxFontSize = 100

	maxCornerRadius   = 50
	maxContentPadding = 60
	maxDelaySeconds   = 30
)
