package output

import (
	"strings"
	"testing"

	"github.com/sofmeright/typefreight/src/lint"
)

func TestPrinter_GroupsAndSortsFindings(t *testing.T) {
	var buf strings.Builder
	p := &Printer{Writer: &buf}

	hasCritical := p.Print([]lint.Finding{
		{File: "src/b.ts", Line: 3, Column: 1, Rule: "no-var", Severity: lint.SeverityWarning, Message: "var used"},
		{File: "src/a.ts", Line: 9, Column: 2, Rule: "no-any", Severity: lint.SeverityWarning, Message: "any used"},
		{File: "src/a.ts", Line: 1, Column: 5, Rule: "string-throw", Severity: lint.SeverityCritical, Message: "throw literal"},
	})

	if !hasCritical {
		t.Fatal("critical finding not reported")
	}

	out := buf.String()
	aPos := strings.Index(out, "src/a.ts")
	bPos := strings.Index(out, "src/b.ts")
	if aPos < 0 || bPos < 0 || aPos > bPos {
		t.Fatalf("files not grouped in sorted order:\n%s", out)
	}
	if strings.Index(out, "1:5") > strings.Index(out, "9:2") {
		t.Fatalf("findings within a file not sorted by line:\n%s", out)
	}
	if !strings.Contains(out, "CRIT") || !strings.Contains(out, "WARN") {
		t.Fatalf("severity tags missing:\n%s", out)
	}
}

func TestPrinter_NoFindingsWritesNothing(t *testing.T) {
	var buf strings.Builder
	p := &Printer{Writer: &buf}

	if p.Print(nil) {
		t.Fatal("empty input reported critical")
	}
	if buf.Len() != 0 {
		t.Fatalf("empty input produced output: %q", buf.String())
	}
}

func TestPrinter_Summary(t *testing.T) {
	var buf strings.Builder
	p := &Printer{Writer: &buf}

	p.Summary(5, 2, 3, 0, 4)

	out := buf.String()
	if !strings.Contains(out, "5 findings in 4 files") {
		t.Fatalf("summary totals wrong: %q", out)
	}
	if !strings.Contains(out, "2 critical") || !strings.Contains(out, "3 warning") {
		t.Fatalf("summary breakdown wrong: %q", out)
	}
}

func TestFindingsSummaryLine_NoFindings(t *testing.T) {
	line := FindingsSummaryLine(0, 0, 0, 0, 7, false)
	if !strings.Contains(line, "no findings") {
		t.Fatalf("clean run summary wrong: %q", line)
	}
}
