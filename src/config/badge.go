package config

// BadgeConfig holds SVG status badge options.
type BadgeConfig struct {
	Label    string  `yaml:"label" toml:"label"`
	FontFile string  `yaml:"font_file" toml:"font_file"`
	FontSize float64 `yaml:"font_size" toml:"font_size"`
	Output   string  `yaml:"output" toml:"output"`
}

// DefaultBadgeConfig returns badge defaults.
func DefaultBadgeConfig() BadgeConfig {
	return BadgeConfig{
		Label:  "lint",
		Output: ".typefreight/badges/lint.svg",
	}
}
