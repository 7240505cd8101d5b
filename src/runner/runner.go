// Package runner ties target resolution, per-directory config
// resolution, the lint engine, and the formatter into the two
// operations the CLI exposes: Lint and Format.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sofmeright/typefreight/src/config"
	"github.com/sofmeright/typefreight/src/format"
	"github.com/sofmeright/typefreight/src/lint"
	// Register all built-in rules.
	_ "github.com/sofmeright/typefreight/src/lint/rules"
	"github.com/sofmeright/typefreight/src/project"
)

// Options carries everything one invocation needs. It is constructed
// by the caller and threaded through explicitly — there is no shared
// process-wide configuration.
type Options struct {
	RootDir   string
	TargetDir string // defaults to RootDir
	DryRun    bool   // never touch disk, report pre-fix state
	Changed   bool   // restrict to git-changed files
	Verbose   bool
	Rules     []string // run only these rules, empty means all
	SkipRules []string // skip these rules
	Config    *config.Config
	Cache     *lint.Cache // nil disables caching
	Log       Logger      // nil discards
}

// Diagnostic is one reported violation, attributed to its file.
type Diagnostic struct {
	File    string
	Line    int
	Column  int
	Rule    string
	Message string
}

// RunResult is the outcome of one lint or format pass.
type RunResult struct {
	Okay        bool
	Diagnostics []Diagnostic

	// Structured detail for printers and reports.
	Findings []lint.Finding
	Stats    []lint.RuleStats
	Files    []lint.FileInfo

	CacheHits   int64
	CacheMisses int64
}

func (o Options) normalized() Options {
	if o.TargetDir == "" {
		o.TargetDir = o.RootDir
	} else if !filepath.IsAbs(o.TargetDir) {
		o.TargetDir = filepath.Join(o.RootDir, o.TargetDir)
	}
	if o.Config == nil {
		cfg, _ := config.Load("")
		o.Config = cfg
	}
	if o.Log == nil {
		o.Log = Discard()
	}
	return o
}

// Lint resolves the target set and runs every active rule over it
// under each file's effective configuration.
//
// With fix enabled and DryRun off, mechanical corrections are written
// in place and the post-fix state determines Okay. With DryRun on,
// nothing is written and Okay reflects the pre-fix state.
func Lint(ctx context.Context, opts Options, explicit []string, fix bool) (*RunResult, error) {
	opts = opts.normalized()

	files, err := resolveTargets(ctx, opts, explicit)
	if err != nil {
		return nil, err
	}

	engine, err := lint.NewEngine(opts.Config.Lint, opts.RootDir, opts.Rules, opts.SkipRules, opts.Verbose, opts.Cache)
	if err != nil {
		return nil, err
	}

	findings, stats, err := engine.RunWithStats(ctx, files)
	if err != nil {
		return nil, err
	}

	if fix && !opts.DryRun {
		if rewritten, err := applyFixes(opts, files, findings); err != nil {
			return nil, err
		} else if rewritten > 0 {
			// The post-fix state is what determines the boolean.
			findings, stats, err = engine.RunWithStats(ctx, files)
			if err != nil {
				return nil, err
			}
		}
	}

	sortFindings(findings)

	result := &RunResult{
		Okay:        len(findings) == 0,
		Findings:    findings,
		Stats:       stats,
		Files:       files,
		CacheHits:   engine.CacheHits.Load(),
		CacheMisses: engine.CacheMisses.Load(),
	}
	for _, f := range findings {
		d := Diagnostic{File: f.File, Line: f.Line, Column: f.Column, Rule: f.Rule, Message: f.Message}
		result.Diagnostics = append(result.Diagnostics, d)
		opts.Log.Logf("%s:%d:%d %s %s", d.File, d.Line, d.Column, d.Rule, d.Message)
	}

	return result, nil
}

// Format checks (or rewrites, when write is set and DryRun is not)
// every resolved file against the active style configuration.
func Format(ctx context.Context, opts Options, explicit []string, write bool) (*RunResult, error) {
	opts = opts.normalized()

	files, err := resolveTargets(ctx, opts, explicit)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Okay: true, Files: files}

	for _, f := range files {
		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}

		formatted, changes := format.Apply(content, opts.Config.Style)
		if len(changes) == 0 {
			continue
		}

		for _, c := range changes {
			d := Diagnostic{File: f.Path, Line: c.Line, Rule: "format", Message: c.Message}
			result.Diagnostics = append(result.Diagnostics, d)
			opts.Log.Logf("%s:%d format %s", d.File, d.Line, d.Message)
		}

		if write && !opts.DryRun {
			if !bytes.Equal(content, formatted) {
				if err := os.WriteFile(f.AbsPath, formatted, 0o644); err != nil {
					return nil, fmt.Errorf("writing %s: %w", f.Path, err)
				}
			}
			continue // file became formatted — not a failure
		}

		result.Okay = false
	}

	return result, nil
}

// resolveTargets runs the project resolver and optional delta filter.
func resolveTargets(ctx context.Context, opts Options, explicit []string) ([]lint.FileInfo, error) {
	proj, err := project.Load(opts.RootDir)
	if err != nil {
		return nil, err
	}

	resolved, err := project.Resolve(proj, opts.RootDir, opts.TargetDir, explicit)
	if err != nil {
		return nil, err
	}

	files := make([]lint.FileInfo, len(resolved))
	for i, f := range resolved {
		files[i] = lint.FileInfo{Path: f.Path, AbsPath: f.AbsPath, Size: f.Size}
	}

	if opts.Changed {
		delta := &lint.Delta{
			RootDir:      opts.RootDir,
			TargetBranch: opts.Config.Lint.TargetBranch,
			Verbose:      opts.Verbose,
		}
		changedSet, err := delta.ChangedFiles(ctx)
		if err != nil && opts.Verbose {
			opts.Log.Errorf("delta: %v, falling back to full scan", err)
		}
		if changedSet != nil {
			files = lint.FilterByDelta(files, changedSet)
		}
	}

	return files, nil
}

// applyFixes rewrites files carrying mechanical corrections and
// returns how many files changed on disk.
func applyFixes(opts Options, files []lint.FileInfo, findings []lint.Finding) (int, error) {
	byFile := make(map[string][]lint.Finding)
	for _, f := range findings {
		if f.Fix != nil {
			byFile[f.File] = append(byFile[f.File], f)
		}
	}
	if len(byFile) == 0 {
		return 0, nil
	}

	rewritten := 0
	for _, file := range files {
		ff, ok := byFile[file.Path]
		if !ok {
			continue
		}

		content, err := os.ReadFile(file.AbsPath)
		if err != nil {
			return rewritten, fmt.Errorf("reading %s: %w", file.Path, err)
		}

		fixed, applied := lint.ApplyFixes(content, ff)
		if applied == 0 || bytes.Equal(content, fixed) {
			continue
		}

		if err := os.WriteFile(file.AbsPath, fixed, 0o644); err != nil {
			return rewritten, fmt.Errorf("writing %s: %w", file.Path, err)
		}
		opts.Log.Logf("fixed %s (%d corrections)", file.Path, applied)
		rewritten++
	}

	return rewritten, nil
}

// sortFindings orders findings for stable output: file, line, column,
// rule, message.
func sortFindings(findings []lint.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}
