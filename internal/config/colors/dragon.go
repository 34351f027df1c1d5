package colors

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		Accent: "#8992A7", // dragonViolet

		Create: "#87A987",
		Edit:   "#8BA4B0",
		Delete: "#C4746E",

		ListBorder: "#625E5A",
		ItemBorder: "#282727",

		Title:  "#8BA4B0",
		Subtle: "#737C73", // dragonAsh
		Normal: "#C5C9C5",

		InfoFg:    "#658594",
		WarningFg: "#FF9E3B",
		ErrorFg:   "#E82424",
	}
}
