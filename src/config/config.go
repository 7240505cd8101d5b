package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sofmeright/typefreight/src/version"
	"gopkg.in/yaml.v3"
)

// Default config filenames, tried in order when no explicit path is given.
var defaultConfigFiles = []string{".typefreight.yml", ".typefreight.toml"}

// Config is the top-level typefreight configuration.
type Config struct {
	// RequiresVersion is an optional semver constraint the running binary
	// must satisfy (e.g. ">=0.2"). Dev builds skip the check.
	RequiresVersion string `yaml:"requires_version" toml:"requires_version"`

	Lint  LintConfig  `yaml:"lint" toml:"lint"`
	Style StyleConfig `yaml:"style" toml:"style"`
	Badge BadgeConfig `yaml:"badge" toml:"badge"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default filenames in order.
// Returns sensible defaults if no file exists.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return defaults(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.checkVersion(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkVersion enforces the requires_version constraint against the
// build version. Dev builds (no injected version) always pass.
func (c *Config) checkVersion() error {
	if c.RequiresVersion == "" || version.Version == "dev" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.RequiresVersion)
	if err != nil {
		return fmt.Errorf("invalid requires_version %q: %w", c.RequiresVersion, err)
	}
	current, err := semver.NewVersion(version.Version)
	if err != nil {
		return fmt.Errorf("parsing build version %q: %w", version.Version, err)
	}
	if !constraint.Check(current) {
		return fmt.Errorf("typefreight %s does not satisfy requires_version %q", version.Version, c.RequiresVersion)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Lint:  DefaultLintConfig(),
		Style: DefaultStyleConfig(),
		Badge: DefaultBadgeConfig(),
	}
}
