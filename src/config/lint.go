package config

// RuleConfig holds per-rule overrides from the tool config.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity string         `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Exclude  []string       `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// LintConfig holds lint-specific configuration.
type LintConfig struct {
	CacheDir     string                `yaml:"cache_dir" toml:"cache_dir"`
	TargetBranch string                `yaml:"target_branch" toml:"target_branch"`
	Exclude      []string              `yaml:"exclude" toml:"exclude"`
	Rules        map[string]RuleConfig `yaml:"rules" toml:"rules"`
}

// DefaultLintConfig returns production defaults.
func DefaultLintConfig() LintConfig {
	return LintConfig{
		Exclude: []string{},
		Rules:   map[string]RuleConfig{},
	}
}
