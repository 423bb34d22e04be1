package colors

// Default returns the default color scheme (green pitch theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#2ECC71",

		// Text
		Title:  "#27AE60",
		Subtle: "#7F8C8D",
		Normal: "#D0D0D0",

		// Ability bands
		AbilityHigh: "#E74C3C",
		AbilityMid:  "#F39C12",

		// Notifications
		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
