// Package format implements the style side of typefreight: quote
// style, semicolons, indentation, and whitespace. It owns these
// concerns exclusively — the lint rule set never reports on them.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sofmeright/typefreight/src/config"
	"github.com/sofmeright/typefreight/src/source"
)

// Change records one formatting deviation. Line is 1-based; 0 marks a
// file-level deviation (missing final newline).
type Change struct {
	Line    int
	Message string
}

// Apply formats content per style and returns the formatted bytes plus
// the changes that were (or would be) made. Pure: callers decide
// whether the result is written back to disk.
func Apply(content []byte, style config.StyleConfig) ([]byte, []Change) {
	src := source.Scan(content)
	lines := make([]string, len(src.Lines))
	copy(lines, src.Lines)

	var changes []Change

	for li := range lines {
		lineNum := li + 1

		// Bytes inside a multiline template literal are string contents,
		// never style. A line beginning inside one keeps its leading
		// bytes; a line ending inside one keeps its trailing bytes and
		// is not a terminable statement.
		beginsInTemplate := li > 0 && src.InTemplate[li-1]
		endsInTemplate := src.InTemplate[li]

		if line, changed := normalizeQuotes(lines[li], src.Strings[li], style.QuoteChar()); changed {
			lines[li] = line
			changes = append(changes, Change{lineNum, quoteMessage(style)})
		}

		// Semicolon insertion uses scanner offsets, so it runs before
		// any length-changing transform below. Lines continuing into a
		// template literal or block comment are left alone.
		if style.WantSemicolons() && !endsInTemplate && !src.InComment[li] {
			if pos, ok := semicolonPos(src.Masked[li]); ok {
				line := lines[li]
				if pos > len(line) {
					pos = len(line)
				}
				lines[li] = line[:pos] + ";" + line[pos:]
				changes = append(changes, Change{lineNum, "missing semicolon"})
			}
		}

		if !beginsInTemplate {
			if line, n := expandIndent(lines[li], style.Indent); n > 0 {
				lines[li] = line
				changes = append(changes, Change{lineNum, "tab indentation (spaces expected)"})
			}
		}

		if style.WantTrimTrailing() && !beginsInTemplate && !endsInTemplate {
			if trimmed := strings.TrimRight(lines[li], " \t"); trimmed != lines[li] {
				lines[li] = trimmed
				changes = append(changes, Change{lineNum, "trailing whitespace"})
			}
		}
	}

	out := strings.Join(lines, "\n")

	if style.WantFinalNewline() && len(out) > 0 && !strings.HasSuffix(out, "\n") {
		out += "\n"
		changes = append(changes, Change{0, "missing final newline"})
	}

	return []byte(out), changes
}

func quoteMessage(style config.StyleConfig) string {
	return fmt.Sprintf("string should use %s quotes", style.Quotes)
}

// normalizeQuotes rewrites string literal delimiters to the preferred
// quote character. Conversion is length-preserving, so literal spans
// from the scanner stay valid. Literals whose body contains the target
// quote or an escape are left alone rather than re-escaped.
func normalizeQuotes(line string, literals []source.Span, want byte) (string, bool) {
	changed := false
	b := []byte(line)

	for _, span := range literals {
		if b[span.Start] == want {
			continue
		}
		body := line[span.Start+1 : span.End-1]
		if strings.ContainsAny(body, string(want)+"\\") {
			continue
		}
		b[span.Start] = want
		b[span.End-1] = want
		changed = true
	}

	return string(b), changed
}

// expandIndent replaces leading tabs with spaces, returning the new
// line and the number of tabs expanded.
func expandIndent(line string, indent int) (string, int) {
	if indent <= 0 {
		indent = 2
	}
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	if n == 0 {
		return line, 0
	}
	return strings.Repeat(" ", n*indent) + line[n:], n
}

// Statement openers that are safe to terminate with a semicolon when
// the line doesn't already end in one. Control-flow and declaration
// headers are deliberately absent — guessing there does more harm
// than a missed semicolon.
var stmtStartRe = regexp.MustCompile(`^\s*(const|let|var|return|throw|break|continue|import|export)\b`)

// Trailing characters that indicate a continuation or an already
// terminated/structural line.
const noSemiTail = ";,{}([:&|+-*/=<>?."

// semicolonPos reports whether a masked line is a statement safely
// missing its terminator, and the byte offset where it belongs.
// Comment text is masked to spaces, delimiters included, so a trailing
// comment trims away and the insertion point lands after the last code
// byte, before the comment.
func semicolonPos(masked string) (int, bool) {
	trimmed := strings.TrimRight(masked, " \t")
	if trimmed == "" || !stmtStartRe.MatchString(trimmed) {
		return 0, false
	}
	last := trimmed[len(trimmed)-1]
	if strings.IndexByte(noSemiTail, last) >= 0 {
		return 0, false
	}
	// Bare keywords like `export` or `import` opening a multi-line
	// form never get a terminator appended.
	if strings.TrimSpace(trimmed) == strings.TrimSpace(stmtStartRe.FindString(trimmed)) {
		return 0, false
	}
	return len(trimmed), true
}
