package rules

import (
	"context"
	"regexp"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("array-type", func() lint.Rule { return &arrayTypeRule{} })
}

// arrayTypeRule flags Array<T> generic syntax in favor of T[].
// Simple element types get a mechanical fix; nested generics and
// unions are flagged only.
type arrayTypeRule struct{}

func (r *arrayTypeRule) Name() string                   { return "array-type" }
func (r *arrayTypeRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

var (
	arrayBroadRe  = regexp.MustCompile(`\bArray<`)
	arraySimpleRe = regexp.MustCompile(`^Array<([A-Za-z_$][\w$.]*)>`)
)

func (r *arrayTypeRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		for _, m := range arrayBroadRe.FindAllStringIndex(masked, -1) {
			start := m[0]

			f := lint.Finding{
				File:     file.Path,
				Line:     li + 1,
				Column:   start + 1,
				Rule:     r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  "Array<T> syntax (use T[] instead)",
			}

			if sm := arraySimpleRe.FindStringSubmatch(masked[start:]); sm != nil {
				f.Fix = &lint.Fix{
					Line:     li + 1,
					StartCol: start + 1,
					EndCol:   start + len(sm[0]) + 1,
					Text:     sm[1] + "[]",
				}
			}

			findings = append(findings, f)
		}
	}

	return findings, nil
}
