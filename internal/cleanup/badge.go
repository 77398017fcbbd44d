package cleanup

// Badge describes how a cleanup type is shown next to a domain or cookie.
type Badge struct {
	// I18nKey is the message key of the badge label.
	I18nKey string `json:"i18nKey"`
	// Text is the short label used when no translation is available.
	Text string `json:"text"`
	// Color is the foreground color.
	Color string `json:"color"`
	// BackgroundColor is the badge background color.
	BackgroundColor string `json:"backgroundColor"`
	// ClassName is the style class of the badge.
	ClassName string `json:"className"`
}

var badges = map[Type]Badge{
	Never: {
		I18nKey:         "cleanup_type_never_badge",
		Text:            "W",
		Color:           "#ffffff",
		BackgroundColor: "#00aa00",
		ClassName:       "cleanup_type_never",
	},
	Startup: {
		I18nKey:         "cleanup_type_startup_badge",
		Text:            "S",
		Color:           "#000000",
		BackgroundColor: "#ffcc00",
		ClassName:       "cleanup_type_startup",
	},
	Leave: {
		I18nKey:         "cleanup_type_leave_badge",
		Text:            "L",
		Color:           "#ffffff",
		BackgroundColor: "#0060df",
		ClassName:       "cleanup_type_leave",
	},
	Instantly: {
		I18nKey:         "cleanup_type_instantly_badge",
		Text:            "I",
		Color:           "#ffffff",
		BackgroundColor: "#d70022",
		ClassName:       "cleanup_type_instantly",
	},
}

// BadgeFor returns the badge of t. Unknown types get the Leave badge, which
// is also the default fallback classification.
func BadgeFor(t Type) Badge {
	if b, ok := badges[t]; ok {
		return b
	}
	return badges[Leave]
}
