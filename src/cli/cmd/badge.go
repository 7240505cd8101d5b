package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sofmeright/typefreight/src/badge"
	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/runner"
	"github.com/spf13/cobra"
)

var badgeOutput string

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Generate an SVG lint status badge",
	Long: `Run the lint rules and write an SVG status badge reflecting the
outcome: passing, warning (non-critical findings only), or failing.

With badge.font_file configured, the font is embedded in the SVG and
used for text measurement. Otherwise approximate Verdana metrics are
used and rendering falls back to the viewer's fonts.`,
	RunE: runBadgeCmd,
}

func init() {
	badgeCmd.Flags().StringVarP(&badgeOutput, "output", "o", "", "badge output path (default: from config)")

	rootCmd.AddCommand(badgeCmd)
}

func runBadgeCmd(cmd *cobra.Command, args []string) error {
	opts := runner.Options{
		RootDir: rootDir,
		Verbose: verbose,
		Config:  cfg,
		Cache:   setupCache(),
		Log:     cliLogger(),
	}

	result, err := runner.Lint(context.Background(), opts, nil, false)
	if err != nil {
		return err
	}

	status := "passing"
	for _, f := range result.Findings {
		if f.Severity >= lint.SeverityCritical {
			status = "failing"
			break
		}
		status = "warning"
	}

	metrics, err := badgeMetrics()
	if err != nil {
		return err
	}

	svg := badge.New(metrics).Generate(badge.Badge{
		Label: cfg.Badge.Label,
		Value: status,
		Color: badge.StatusColor(status),
	})

	out := badgeOutput
	if out == "" {
		out = cfg.Badge.Output
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating badge dir: %w", err)
	}
	if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing badge: %w", err)
	}

	fmt.Printf("badge: %s (%s)\n", out, status)
	return nil
}

// badgeMetrics loads the configured font, falling back to approximate
// Verdana metrics when none is set.
func badgeMetrics() (*badge.FontMetrics, error) {
	size := cfg.Badge.FontSize
	if size == 0 {
		size = 11
	}
	if cfg.Badge.FontFile == "" {
		return badge.Approx(size), nil
	}
	return badge.LoadFontFile(cfg.Badge.FontFile, size)
}
