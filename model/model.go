// Package model holds the wire records exchanged with the survey backend.
// They are decoded once from a network response and read-only afterwards.
package model

type Survey struct {
	ID          string     `json:"id"`
	Version     int        `json:"version,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	Theme       *Theme     `json:"theme,omitempty"`
}

const (
	QuestionMultipleChoice = "multipleChoice"
	QuestionRating         = "rating"
	QuestionText           = "text"
)

type Question struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// Answer carries one collected value; ratings encode their integer as a
// string.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// Theme is the styling payload attached to a survey. Every field is
// optional: a nil pointer means "not configured", which is distinct from a
// present-but-invalid value. Resolution of either case is the theme
// package's job; nothing here validates.
type Theme struct {
	Layout *string `json:"layout,omitempty"`

	PrimaryColorHex             *string `json:"primaryColorHex,omitempty"`
	BackgroundColorHex          *string `json:"backgroundColorHex,omitempty"`
	TextColorHex                *string `json:"textColorHex,omitempty"`
	ButtonTextColorHex          *string `json:"buttonTextColorHex,omitempty"`
	OptionSelectedBackgroundHex *string `json:"optionSelectedBackgroundHex,omitempty"`
	OptionSelectedTextHex       *string `json:"optionSelectedTextHex,omitempty"`

	CornerRadius       *float64 `json:"cornerRadius,omitempty"`
	ButtonCornerRadius *float64 `json:"buttonCornerRadius,omitempty"`

	FontFamily     *string  `json:"fontFamily,omitempty"`
	FontSize       *float64 `json:"fontSize,omitempty"`
	TitleFontSize  *float64 `json:"titleFontSize,omitempty"`
	BodyFontSize   *float64 `json:"bodyFontSize,omitempty"`
	ButtonFontSize *float64 `json:"buttonFontSize,omitempty"`

	TextAlign      *string  `json:"textAlign,omitempty"`
	ContentPadding *float64 `json:"contentPadding,omitempty"`

	DelaySeconds      *int    `json:"delaySeconds,omitempty"`
	ShowCloseButton   *bool   `json:"showCloseButton,omitempty"`
	EntranceAnimation *string `json:"entranceAnimation,omitempty"`
	AnimationSpeed    *string `json:"animationSpeed,omitempty"`
}
