package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OverrideFile is the per-directory lint configuration filename.
// Its presence alone signals "use this configuration instead of the
// bundled default" for files under that directory and its descendants
// lacking a closer override.
const OverrideFile = ".typefreightrc.json"

// RuleSet maps rule name to severity level. "off" disables a rule;
// rules absent from the set do not run.
type RuleSet map[string]string

// Enabled reports whether the named rule runs under this set.
func (r RuleSet) Enabled(name string) bool {
	level, ok := r[name]
	return ok && level != "off"
}

// Effective is the configuration governing one file for one invocation.
// Origin is the override file that supplied it, empty for the bundled
// default. Resolved fresh per invocation, never cached across runs.
type Effective struct {
	Origin string
	Rules  RuleSet
}

// overrideDoc is the on-disk shape of an override file. Levels may be
// strings ("off", "info", "warning", "critical") or booleans.
type overrideDoc struct {
	Rules map[string]any `json:"rules"`
}

// ResolveEffective walks from dir upward toward rootDir and returns the
// configuration of the first directory containing an override file,
// falling back to base when none is found before the root boundary.
// Absence of any override is normal, never an error.
func ResolveEffective(dir, rootDir string, base RuleSet) (*Effective, error) {
	dir = filepath.Clean(dir)
	root := filepath.Clean(rootDir)

	// Visited guard: the ancestor chain is acyclic by construction, but
	// symlinked roots can repeat — stop rather than loop.
	seen := map[string]bool{}

	for !seen[dir] {
		seen[dir] = true

		candidate := filepath.Join(dir, OverrideFile)
		rules, found, err := readOverride(candidate)
		if err != nil {
			return nil, err
		}
		if found {
			return &Effective{Origin: candidate, Rules: rules}, nil
		}

		if dir == root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // filesystem root — hard stop
		}
		dir = parent
	}

	return &Effective{Rules: base}, nil
}

// readOverride loads and normalizes one override file. A missing file
// is not an error; a malformed one is.
func readOverride(path string) (RuleSet, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var doc overrideDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", path, err)
	}

	rules := make(RuleSet, len(doc.Rules))
	for name, raw := range doc.Rules {
		level, err := normalizeLevel(raw)
		if err != nil {
			return nil, false, fmt.Errorf("%s: rule %s: %w", path, name, err)
		}
		rules[name] = level
	}
	return rules, true, nil
}

// normalizeLevel converts an override value to a severity level string.
// true means "on at the rule's default severity", encoded as "on" and
// resolved by the engine.
func normalizeLevel(raw any) (string, error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return "on", nil
		}
		return "off", nil
	case string:
		if v == "off" || v == "on" {
			return v, nil
		}
		if _, ok := ParseSeverity(v); !ok {
			return "", fmt.Errorf("unknown level %q", v)
		}
		return v, nil
	default:
		return "", fmt.Errorf("level must be a string or boolean, got %T", raw)
	}
}
