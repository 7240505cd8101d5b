package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sofmeright/typefreight/src/config"
	"github.com/sofmeright/typefreight/src/project"
	"github.com/sofmeright/typefreight/src/source"
	"golang.org/x/sync/semaphore"
)

// Engine orchestrates lint rules across files.
type Engine struct {
	Config  config.LintConfig
	RootDir string
	Rules   []Rule
	Cache   *Cache
	Verbose bool

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
}

// NewEngine creates a lint engine with the selected rules.
func NewEngine(cfg config.LintConfig, rootDir string, ruleNames []string, skipNames []string, verbose bool, cache *Cache) (*Engine, error) {
	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		skipSet[name] = true
	}

	var rules []Rule

	if len(ruleNames) > 0 {
		// Explicit rule selection
		for _, name := range ruleNames {
			if skipSet[name] {
				continue
			}
			r, err := Get(name)
			if err != nil {
				return nil, err
			}
			if err := configureRule(r, cfg, name); err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	} else {
		// All registered rules minus skipped
		for _, name := range All() {
			if skipSet[name] {
				continue
			}
			r, err := Get(name)
			if err != nil {
				return nil, err
			}

			// Check if config explicitly disables this rule
			if rc, ok := cfg.Rules[name]; ok && rc.Enabled != nil && !*rc.Enabled {
				continue
			}

			if err := configureRule(r, cfg, name); err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("no lint rules selected")
	}

	return &Engine{
		Config:  cfg,
		RootDir: rootDir,
		Rules:   rules,
		Cache:   cache,
		Verbose: verbose,
	}, nil
}

// BaseRules returns the bundled default rule set: every active rule at
// its default severity, adjusted by tool-config severity overrides.
// This is what files without a directory override lint under.
func (e *Engine) BaseRules() RuleSet {
	base := make(RuleSet, len(e.Rules))
	for _, r := range e.Rules {
		level := r.DefaultSeverity().String()
		if rc, ok := e.Config.Rules[r.Name()]; ok && rc.Severity != "" {
			level = rc.Severity
		}
		base[r.Name()] = level
	}
	return base
}

// RuleStats holds per-rule scan statistics.
type RuleStats struct {
	Name     string
	Files    int
	Cached   int
	Findings int
	Critical int
	Warnings int
}

// Run executes all rules against the given files and returns findings.
func (e *Engine) Run(ctx context.Context, files []FileInfo) ([]Finding, error) {
	findings, _, err := e.RunWithStats(ctx, files)
	return findings, err
}

// RunWithStats executes all rules and returns findings plus per-rule
// statistics. Each file is checked under its effective configuration:
// the nearest directory override, else the bundled default. Effective
// configs are resolved once per directory per invocation.
func (e *Engine) RunWithStats(ctx context.Context, files []FileInfo) ([]Finding, []RuleStats, error) {
	base := e.BaseRules()

	// Resolve effective configs up front so malformed overrides fail
	// the run before any rule executes.
	effByDir := make(map[string]*Effective)
	for _, file := range files {
		dir := filepath.Dir(file.AbsPath)
		if _, ok := effByDir[dir]; ok {
			continue
		}
		eff, err := ResolveEffective(dir, e.RootDir, base)
		if err != nil {
			return nil, nil, err
		}
		effByDir[dir] = eff
	}

	var (
		mu       sync.Mutex
		findings []Finding
		wg       sync.WaitGroup
		errs     []error
	)

	sem := semaphore.NewWeighted(int64(runtime.NumCPU() * 2))

	// Per-rule stat counters (index matches e.Rules)
	stats := make([]RuleStats, len(e.Rules))
	for i, r := range e.Rules {
		stats[i].Name = r.Name()
	}

	for _, file := range files {
		if e.isExcluded(file.Path) {
			continue
		}

		wg.Add(1)
		sem.Acquire(ctx, 1)
		go func(f FileInfo, eff *Effective) {
			defer wg.Done()
			defer sem.Release(1)

			content, err := os.ReadFile(f.AbsPath)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", f.Path, err))
				mu.Unlock()
				return
			}
			src := source.Scan(content)

			for ri, rule := range e.Rules {
				if !eff.Rules.Enabled(rule.Name()) {
					continue
				}
				if e.isRuleExcluded(rule.Name(), f.Path) {
					continue
				}

				results, cached, err := e.checkOne(ctx, rule, f, src, eff, content)

				mu.Lock()
				stats[ri].Files++
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %s: %w", rule.Name(), f.Path, err))
					mu.Unlock()
					continue
				}
				if cached {
					stats[ri].Cached++
				}
				for _, r := range results {
					stats[ri].Findings++
					if r.Severity == SeverityCritical {
						stats[ri].Critical++
					} else if r.Severity == SeverityWarning {
						stats[ri].Warnings++
					}
				}
				findings = append(findings, results...)
				mu.Unlock()
			}
		}(file, effByDir[filepath.Dir(file.AbsPath)])
	}

	wg.Wait()

	if len(errs) > 0 {
		return findings, stats, fmt.Errorf("%d rule errors (first: %w)", len(errs), errs[0])
	}

	return findings, stats, nil
}

// checkOne runs a single rule on a single file, consulting the cache.
// Findings are severity-adjusted and origin-stamped before caching so
// cache hits replay the effective configuration of the keyed run.
func (e *Engine) checkOne(ctx context.Context, rule Rule, f FileInfo, src *source.File, eff *Effective, content []byte) ([]Finding, bool, error) {
	var key string
	if e.Cache != nil && e.Cache.Enabled {
		key = e.Cache.Key(content, rule.Name(), e.ruleConfigJSON(rule.Name()), eff.Origin+":"+eff.Rules[rule.Name()])
		if cached, ok := e.Cache.Get(key); ok {
			e.CacheHits.Add(1)
			return cached, true, nil
		}
		e.CacheMisses.Add(1)
	}

	results, err := rule.Check(ctx, f, src)
	if err != nil {
		return nil, false, err
	}

	level := eff.Rules[rule.Name()]
	for i := range results {
		results[i].Origin = eff.Origin
		if sev, ok := ParseSeverity(level); ok {
			results[i].Severity = sev
		}
	}

	if key != "" {
		// Cache even empty results (clean pass).
		if cacheErr := e.Cache.Put(key, results); cacheErr != nil && e.Verbose {
			fmt.Fprintf(os.Stderr, "cache: write failed for %s/%s: %v\n", rule.Name(), f.Path, cacheErr)
		}
	}

	return results, false, nil
}

// RuleNames returns the names of all active rules in this engine.
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.Rules))
	for i, r := range e.Rules {
		names[i] = r.Name()
	}
	return names
}

// normalizeSlashPath converts a path to forward slashes and strips leading "./".
func normalizeSlashPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// matchExcludePattern matches a single exclude pattern against a normalized path.
// Patterns containing "/" or "**" match against the full path; others match base name only.
func matchExcludePattern(pattern, normPath, baseName string) bool {
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
		return project.MatchGlob(pattern, normPath)
	}
	return project.MatchGlob(pattern, baseName)
}

func (e *Engine) isExcluded(path string) bool {
	if len(e.Config.Exclude) == 0 {
		return false
	}
	normPath := normalizeSlashPath(path)
	baseName := filepath.Base(normPath)
	for _, pattern := range e.Config.Exclude {
		if matchExcludePattern(pattern, normPath, baseName) {
			return true
		}
	}
	return false
}

// isRuleExcluded checks per-rule exclude patterns from config.
// Engine-wide isExcluded prevents files from being queued at all;
// rule excludes prevent only that rule from running on matching files.
func (e *Engine) isRuleExcluded(ruleName, path string) bool {
	rc, ok := e.Config.Rules[ruleName]
	if !ok || len(rc.Exclude) == 0 {
		return false
	}
	normPath := normalizeSlashPath(path)
	baseName := filepath.Base(normPath)
	for _, pattern := range rc.Exclude {
		if matchExcludePattern(pattern, normPath, baseName) {
			return true
		}
	}
	return false
}

// configureRule passes config options to rules that implement ConfigurableRule.
func configureRule(r Rule, cfg config.LintConfig, name string) error {
	cr, ok := r.(ConfigurableRule)
	if !ok {
		return nil
	}
	rc, exists := cfg.Rules[name]
	if !exists || rc.Options == nil {
		// Call with empty map so the rule can apply defaults.
		return cr.Configure(nil)
	}
	return cr.Configure(rc.Options)
}

func (e *Engine) ruleConfigJSON(name string) string {
	rc, ok := e.Config.Rules[name]
	if !ok || rc.Options == nil {
		return "{}"
	}
	data, err := json.Marshal(rc.Options)
	if err != nil {
		return "{}"
	}
	return string(data)
}
