package lint

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sofmeright/typefreight/src/source"
)

// Rule is the interface every lint check implements. Rules receive the
// scanned source once per file; they must not touch the disk themselves.
type Rule interface {
	Name() string
	DefaultSeverity() Severity
	Check(ctx context.Context, file FileInfo, src *source.File) ([]Finding, error)
}

// ConfigurableRule is implemented by rules that accept options from the
// tool config.
type ConfigurableRule interface {
	Rule
	Configure(opts map[string]any) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Rule{}
)

// Register adds a rule constructor to the global registry.
// Called from init() in each rule file.
func Register(name string, constructor func() Rule) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("lint: duplicate rule registration: %s", name))
	}
	registry[name] = constructor
}

// Get returns a new instance of the named rule.
func Get(name string) (Rule, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("lint: unknown rule: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered rules.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
