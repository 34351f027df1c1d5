package colors

// ColorScheme defines all configurable color values used by the CLI output
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset"`

	// Primary accent color (board names, headers)
	Accent string `yaml:"accent"`

	// Semantic colors
	Create string `yaml:"create"` // Green - creation confirmations
	Edit   string `yaml:"edit"`   // Blue - rename/reorder confirmations
	Delete string `yaml:"delete"` // Red - delete confirmations

	// Board rendering
	ListBorder string `yaml:"list_border"`
	ItemBorder string `yaml:"item_border"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted text: ids, timestamps
	Normal string `yaml:"normal"`

	// Message colors
	InfoFg    string `yaml:"info_fg"`
	WarningFg string `yaml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg"`
}

// Presets lists the names accepted by GetPreset
var Presets = []string{"default", "monochrome", "wave", "dragon", "lotus"}

// GetPreset returns a preset color scheme by name.
// Unknown names fall back to the default scheme.
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	case "lotus":
		return Lotus()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Create, preset.Create)
	fill(&c.Edit, preset.Edit)
	fill(&c.Delete, preset.Delete)
	fill(&c.ListBorder, preset.ListBorder)
	fill(&c.ItemBorder, preset.ItemBorder)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.ErrorFg, preset.ErrorFg)
}

// MergeFrom overrides colors with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	take := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	take(&c.Preset, other.Preset)
	take(&c.Accent, other.Accent)
	take(&c.Create, other.Create)
	take(&c.Edit, other.Edit)
	take(&c.Delete, other.Delete)
	take(&c.ListBorder, other.ListBorder)
	take(&c.ItemBorder, other.ItemBorder)
	take(&c.Title, other.Title)
	take(&c.Subtle, other.Subtle)
	take(&c.Normal, other.Normal)
	take(&c.InfoFg, other.InfoFg)
	take(&c.WarningFg, other.WarningFg)
	take(&c.ErrorFg, other.ErrorFg)
}
