package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/output"
	"github.com/sofmeright/typefreight/src/runner"
	"github.com/spf13/cobra"
)

var (
	lintFix     bool
	lintDryRun  bool
	lintChanged bool
	lintDir     string
	lintRules   []string
	lintNoRule  []string
	lintNoCache bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Run lint rules over the project",
	Long: `Run cache-aware lint rules over the project's TypeScript files.

Without arguments, targets come from tsconfig.json (files, or the
include patterns minus excludes). Named files must belong to the
project or the run aborts.

With --fix, mechanical corrections are written in place and the
post-fix state decides pass or fail. --dry-run reports what would
change without touching disk.`,
	RunE: runLintCmd,
}

func init() {
	lintCmd.Flags().BoolVar(&lintFix, "fix", false, "apply mechanical corrections in place")
	lintCmd.Flags().BoolVar(&lintDryRun, "dry-run", false, "report without writing anything")
	lintCmd.Flags().BoolVar(&lintChanged, "changed", false, "only scan git-changed files")
	lintCmd.Flags().StringVar(&lintDir, "dir", "", "target directory within the project (default: root)")
	lintCmd.Flags().StringSliceVar(&lintRules, "rule", nil, "run only these rules (comma-separated)")
	lintCmd.Flags().StringSliceVar(&lintNoRule, "no-rule", nil, "skip these rules (comma-separated)")
	lintCmd.Flags().BoolVar(&lintNoCache, "no-cache", false, "disable cache (clear and rescan)")

	rootCmd.AddCommand(lintCmd)
}

func runLintCmd(cmd *cobra.Command, args []string) error {
	cache := setupCache()

	opts := runner.Options{
		RootDir:   rootDir,
		TargetDir: lintDir,
		DryRun:    lintDryRun,
		Changed:   lintChanged,
		Verbose:   verbose,
		Rules:     lintRules,
		SkipRules: lintNoRule,
		Config:    cfg,
		Cache:     cache,
		Log:       cliLogger(),
	}

	ctx := context.Background()
	ci := output.IsCI()
	color := output.UseColor()
	w := os.Stdout

	start := time.Now()
	result, err := runner.Lint(ctx, opts, args, lintFix)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var critical, warning, info int
	for _, f := range result.Findings {
		switch f.Severity {
		case lint.SeverityCritical:
			critical++
		case lint.SeverityWarning:
			warning++
		case lint.SeverityInfo:
			info++
		}
	}
	var totalFiles, totalCached int
	for _, rs := range result.Stats {
		totalFiles += rs.Files
		totalCached += rs.Cached
	}

	// JUnit XML in CI for test reporting
	if ci {
		ruleNames := make([]string, 0, len(result.Stats))
		for _, rs := range result.Stats {
			ruleNames = append(ruleNames, rs.Name)
		}
		if jErr := output.WriteLintJUnit(".typefreight/reports", result.Findings, result.Files, ruleNames, elapsed); jErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write junit report: %v\n", jErr)
		}
	}

	// ── Lint section ──
	output.SectionStart(w, "tf_lint", "Lint")
	sec := output.NewSection(w, "Lint", elapsed, color)
	output.RuleTable(w, result.Stats, color)
	sec.Separator()
	sec.Row("%-16s%5d   %5d   %d findings (%d critical)",
		"total", totalFiles, totalCached, len(result.Findings), critical)
	sec.Close()
	output.SectionEnd(w, "tf_lint")

	// ── Findings section (only when findings > 0) ──
	if len(result.Findings) > 0 {
		output.SectionStart(w, "tf_findings", "Findings")
		fSec := output.NewSection(w, "Findings", 0, color)
		output.SectionFindings(fSec, result.Findings, color)
		fSec.Separator()
		fSec.Row(output.FindingsSummaryLine(len(result.Findings), critical, warning, info, len(result.Files), color))
		fSec.Close()
		output.SectionEnd(w, "tf_findings")
	}

	// Verbose: repeat the findings on stderr as a plain grouped
	// listing, greppable without the section framing.
	if verbose && len(result.Findings) > 0 {
		p := &output.Printer{Writer: os.Stderr, Color: color}
		p.Print(result.Findings)
		p.Summary(len(result.Findings), critical, warning, info, len(result.Files))
	}

	if verbose && cache.Enabled {
		fmt.Fprintf(os.Stderr, "cache: %d hits, %d misses\n", result.CacheHits, result.CacheMisses)
	}

	if !result.Okay {
		return fmt.Errorf("lint failed: %d findings (%d critical)", len(result.Findings), critical)
	}

	return nil
}

// setupCache builds the lint cache honoring --no-cache.
func setupCache() *lint.Cache {
	cache := &lint.Cache{
		Dir:     lint.ResolveCacheDir(rootDir, cfg.Lint.CacheDir),
		Enabled: !lintNoCache,
	}
	if lintNoCache {
		if err := cache.Clear(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "cache: clear failed: %v\n", err)
		}
	}
	return cache
}

// cliLogger routes runner errors to stderr in verbose mode and
// discards the log stream — findings render through the sections and
// the verbose Printer, not the raw per-diagnostic log.
func cliLogger() runner.Logger {
	if verbose {
		return &runner.StdLogger{Out: io.Discard, Err: os.Stderr}
	}
	return runner.Discard()
}
