package rules

import (
	"context"
	"regexp"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("no-any", func() lint.Rule { return &noAnyRule{} })
}

// noAnyRule flags explicit any annotations and casts.
type noAnyRule struct{}

func (r *noAnyRule) Name() string                   { return "no-any" }
func (r *noAnyRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

var anyRe = regexp.MustCompile(`(?::\s*|\bas\s+)(any)\b`)

func (r *noAnyRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		for _, m := range anyRe.FindAllStringSubmatchIndex(masked, -1) {
			findings = append(findings, lint.Finding{
				File:     file.Path,
				Line:     li + 1,
				Column:   m[2] + 1,
				Rule:     r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  "explicit any defeats type checking",
			})
		}
	}

	return findings, nil
}
