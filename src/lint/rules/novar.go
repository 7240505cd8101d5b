package rules

import (
	"context"
	"regexp"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("no-var", func() lint.Rule { return &noVarRule{} })
}

// noVarRule flags var declarations. The fix rewrites to let; promoting
// to const is left to the author since it needs flow analysis.
type noVarRule struct{}

func (r *noVarRule) Name() string                   { return "no-var" }
func (r *noVarRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

var varRe = regexp.MustCompile(`(^|[\s;({,])var\s+[A-Za-z_$]`)

func (r *noVarRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		for _, m := range varRe.FindAllStringSubmatchIndex(masked, -1) {
			// Offset of the keyword itself, past the leading context.
			start := m[3]

			findings = append(findings, lint.Finding{
				File:     file.Path,
				Line:     li + 1,
				Column:   start + 1,
				Rule:     r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  "var declaration (use let or const)",
				Fix: &lint.Fix{
					Line:     li + 1,
					StartCol: start + 1,
					EndCol:   start + 4,
					Text:     "let",
				},
			})
		}
	}

	return findings, nil
}
