package rules

import (
	"context"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
)

func init() {
	lint.Register("eqeqeq", func() lint.Rule { return &eqeqeqRule{} })
}

// eqeqeqRule flags loose equality operators. The fix inserts the
// missing = to make the comparison strict.
type eqeqeqRule struct{}

func (r *eqeqeqRule) Name() string                   { return "eqeqeq" }
func (r *eqeqeqRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r *eqeqeqRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	var findings []lint.Finding

	for li, masked := range src.Masked {
		for _, op := range looseOps(masked) {
			strict := "==="
			msg := "== comparison (use === instead)"
			if masked[op] == '!' {
				strict = "!=="
				msg = "!= comparison (use !== instead)"
			}

			findings = append(findings, lint.Finding{
				File:     file.Path,
				Line:     li + 1,
				Column:   op + 1,
				Rule:     r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  msg,
				Fix: &lint.Fix{
					Line:     li + 1,
					StartCol: op + 1,
					EndCol:   op + 3,
					Text:     strict,
				},
			})
		}
	}

	return findings, nil
}

// looseOps returns start offsets of == and != operators that are not
// part of ===, !==, <=, >=, => or assignment.
func looseOps(line string) []int {
	var ops []int
	for i := 0; i+1 < len(line); i++ {
		c, next := line[i], line[i+1]
		if next != '=' {
			continue
		}
		if c != '=' && c != '!' {
			continue
		}
		// A third = makes the operator already strict.
		if i+2 < len(line) && line[i+2] == '=' {
			i += 2
			continue
		}
		// Leading =/!/</> means this pair is the tail of another operator.
		if i > 0 {
			prev := line[i-1]
			if prev == '=' || prev == '!' || prev == '<' || prev == '>' {
				continue
			}
		}
		ops = append(ops, i)
		i++ // skip past the matched pair
	}
	return ops
}
