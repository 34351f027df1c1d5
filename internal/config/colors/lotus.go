package colors

// Lotus returns the Kanagawa Lotus color scheme (light theme)
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset: "lotus",

		Accent: "#624C83",

		Create: "#6F894E",
		Edit:   "#4D699B",
		Delete: "#C84053",

		ListBorder: "#A09CAC",
		ItemBorder: "#E7DBA0",

		Title:  "#4D699B",
		Subtle: "#8A8980",
		Normal: "#545464",

		InfoFg:    "#5A7785",
		WarningFg: "#E98A00",
		ErrorFg:   "#E82424",
	}
}
