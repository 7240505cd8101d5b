package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ConfigFile is the compiler configuration read from the project root.
const ConfigFile = "tsconfig.json"

// Config mirrors the file-selection keys of a tsconfig.json.
// CompilerOptions is carried opaquely; typefreight never reinterprets it.
//
// If Files is non-empty it is authoritative and Include/Exclude are
// ignored. Otherwise Include (default **/*.ts) minus Exclude defines
// the project file set.
type Config struct {
	Files           []string       `json:"files"`
	Include         []string       `json:"include"`
	Exclude         []string       `json:"exclude"`
	CompilerOptions map[string]any `json:"compilerOptions"`
}

// Load reads tsconfig.json from rootDir. A missing file yields an
// empty config (all defaults); a malformed one is an error.
func Load(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// IncludePatterns returns the effective include globs.
func (c *Config) IncludePatterns() []string {
	if len(c.Include) > 0 {
		return c.Include
	}
	return []string{"**/*.ts"}
}
