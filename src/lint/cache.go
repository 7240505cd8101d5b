package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultCacheDir = ".typefreight/cache/lint"
	engineVersion   = "0.1.0"
)

// Cache provides content-addressed lint result caching. Keys include
// the effective configuration, so a config change can never replay
// stale findings.
type Cache struct {
	Dir     string
	Enabled bool
}

// cacheEntry stores cached findings for a file+rule combination.
type cacheEntry struct {
	Findings []Finding `json:"findings"`
}

// ResolveCacheDir returns the cache directory: the config override when
// set, else the default under the project root.
func ResolveCacheDir(rootDir, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(rootDir, defaultCacheDir)
}

// Key computes a cache key from file content, rule name, rule options,
// and the effective configuration identity.
func (c *Cache) Key(content []byte, ruleName, configJSON, effective string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(ruleName))
	h.Write([]byte(configJSON))
	h.Write([]byte(effective))
	h.Write([]byte(engineVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached findings. Returns nil, false on cache miss.
func (c *Cache) Get(key string) ([]Finding, bool) {
	if !c.Enabled {
		return nil, false
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	return entry.Findings, true
}

// Put stores findings in the cache.
func (c *Cache) Put(key string, findings []Finding) error {
	if !c.Enabled {
		return nil
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	entry := cacheEntry{Findings: findings}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Clear removes the entire cache directory.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.Dir)
}

// path returns the filesystem path for a cache key.
// Uses 2-char prefix subdirectory to avoid huge flat directories.
func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key[:2], key+".json")
}
