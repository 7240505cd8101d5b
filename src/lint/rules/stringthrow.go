package rules

import (
	"context"
	"regexp"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("no-string-throw", func() lint.Rule { return &stringThrowRule{} })
}

// stringThrowRule flags throwing raw string literals. Thrown strings
// lose the stack trace an Error carries; the fix wraps the literal.
type stringThrowRule struct{}

func (r *stringThrowRule) Name() string                   { return "no-string-throw" }
func (r *stringThrowRule) DefaultSeverity() lint.Severity { return lint.SeverityCritical }

var throwRe = regexp.MustCompile("\\bthrow\\s+(['\"`])")

func (r *stringThrowRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		for _, m := range throwRe.FindAllStringSubmatchIndex(masked, -1) {
			quotePos := m[2]

			f := lint.Finding{
				File:     file.Path,
				Line:     li + 1,
				Column:   quotePos + 1,
				Rule:     r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  "string thrown (throw an Error instead)",
			}

			// Fixable only when the literal closes on the same line;
			// template literals spanning lines are flagged without a fix.
			for _, span := range src.Strings[li] {
				if span.Start == quotePos {
					literal := src.Lines[li][span.Start:span.End]
					f.Fix = &lint.Fix{
						Line:     li + 1,
						StartCol: span.Start + 1,
						EndCol:   span.End + 1,
						Text:     "new Error(" + literal + ")",
					}
					break
				}
			}

			findings = append(findings, f)
		}
	}

	return findings, nil
}
