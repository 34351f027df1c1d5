package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: "#957FB8", // oniViolet

		Create: "#98BB6C", // springGreen
		Edit:   "#7E9CD8", // crystalBlue
		Delete: "#FF5D62", // peachRed

		ListBorder: "#54546D", // sumiInk6
		ItemBorder: "#363646", // sumiInk4

		Title:  "#7E9CD8",
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		InfoFg:    "#658594",
		WarningFg: "#FF9E3B",
		ErrorFg:   "#E82424",
	}
}
