package rules

import (
	"context"
	"regexp"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("no-debugger", func() lint.Rule { return &noDebuggerRule{} })
}

// noDebuggerRule flags debugger statements. A statement alone on its
// line gets a fix that drops the line.
type noDebuggerRule struct{}

func (r *noDebuggerRule) Name() string                   { return "no-debugger" }
func (r *noDebuggerRule) DefaultSeverity() lint.Severity { return lint.SeverityCritical }

var (
	debuggerRe     = regexp.MustCompile(`\bdebugger\b`)
	debuggerLineRe = regexp.MustCompile(`^\s*debugger\s*;?\s*$`)
)

func (r *noDebuggerRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		m := debuggerRe.FindStringIndex(masked)
		if m == nil {
			continue
		}

		f := lint.Finding{
			File:     file.Path,
			Line:     li + 1,
			Column:   m[0] + 1,
			Rule:     r.Name(),
			Severity: r.DefaultSeverity(),
			Message:  "debugger statement",
		}

		if debuggerLineRe.MatchString(masked) {
			f.Fix = &lint.Fix{Line: li + 1, DeleteLine: true}
		}

		findings = append(findings, f)
	}

	return findings, nil
}
