package rules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("no-console", func() lint.Rule { return &noConsoleRule{} })
}

// noConsoleRule flags console calls left in source.
type noConsoleRule struct{}

func (r *noConsoleRule) Name() string                   { return "no-console" }
func (r *noConsoleRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

var consoleRe = regexp.MustCompile(`\bconsole\.(log|warn|error|info|debug|trace|dir|table)\s*\(`)

func (r *noConsoleRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		for _, m := range consoleRe.FindAllStringSubmatchIndex(masked, -1) {
			method := masked[m[2]:m[3]]
			findings = append(findings, lint.Finding{
				File:     file.Path,
				Line:     li + 1,
				Column:   m[0] + 1,
				Rule:     r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("console.%s call", method),
			})
		}
	}

	return findings, nil
}
