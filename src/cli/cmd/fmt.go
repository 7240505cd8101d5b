package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sofmeright/typefreight/src/output"
	"github.com/sofmeright/typefreight/src/runner"
	"github.com/spf13/cobra"
)

var (
	fmtWrite   bool
	fmtDryRun  bool
	fmtChanged bool
	fmtDir     string
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Check or rewrite source formatting",
	Long: `Check the project's TypeScript files against the style
configuration: quote style, semicolons, indentation, trailing
whitespace, and final newline.

By default the command only reports deviations and fails when any
exist. With --write, files are rewritten in place and the command
succeeds. --dry-run forces report-only mode even with --write.`,
	RunE: runFmtCmd,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite files in place")
	fmtCmd.Flags().BoolVar(&fmtDryRun, "dry-run", false, "report without writing anything")
	fmtCmd.Flags().BoolVar(&fmtChanged, "changed", false, "only check git-changed files")
	fmtCmd.Flags().StringVar(&fmtDir, "dir", "", "target directory within the project (default: root)")

	rootCmd.AddCommand(fmtCmd)
}

func runFmtCmd(cmd *cobra.Command, args []string) error {
	opts := runner.Options{
		RootDir:   rootDir,
		TargetDir: fmtDir,
		DryRun:    fmtDryRun,
		Changed:   fmtChanged,
		Verbose:   verbose,
		Config:    cfg,
		Log:       cliLogger(),
	}

	color := output.UseColor()
	w := os.Stdout

	start := time.Now()
	result, err := runner.Format(context.Background(), opts, args, fmtWrite)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Count distinct files with deviations
	touched := map[string]bool{}
	for _, d := range result.Diagnostics {
		touched[d.File] = true
	}

	output.SectionStart(w, "tf_fmt", "Format")
	sec := output.NewSection(w, "Format", elapsed, color)
	sec.Row("%-16s%5d files, %d with deviations", "checked", len(result.Files), len(touched))
	if len(result.Diagnostics) > 0 {
		sec.Separator()
		for _, d := range result.Diagnostics {
			if d.Line > 0 {
				sec.Row("  %s:%d  %s", d.File, d.Line, d.Message)
			} else {
				sec.Row("  %s  %s", d.File, d.Message)
			}
		}
	}
	sec.Close()
	output.SectionEnd(w, "tf_fmt")

	if !result.Okay {
		return fmt.Errorf("format check failed: %d files need formatting", len(touched))
	}

	return nil
}
