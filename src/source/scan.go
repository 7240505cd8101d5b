// Package source provides a lightweight scanner over TypeScript source
// that blanks out string literal bodies and comments so pattern-based
// checks never match inside them. Columns are preserved byte-for-byte.
//
// Regex literals are recognized by a look-behind heuristic (a / after
// an operator or opening bracket opens a regex); keyword contexts like
// `return /x/` read as division and are left unmasked.
package source

import "strings"

// Span is a half-open byte range within a single line, including the
// surrounding quote characters.
type Span struct {
	Start int
	End   int
}

// File holds the scanned view of one source file.
type File struct {
	Content []byte   // raw bytes as read from disk
	Lines   []string // original lines, no trailing newline
	Masked  []string // literal/comment bodies replaced with spaces
	Strings [][]Span // single/double-quoted literals per line

	// Per-line end state: whether scanning left the line inside an
	// unterminated template literal or block comment. Line i begins
	// inside one exactly when line i-1 ended inside one.
	InTemplate []bool
	InComment  []bool
}

// EndsWithNewline reports whether the original content had a final newline.
func EndsWithNewline(content []byte) bool {
	return len(content) > 0 && content[len(content)-1] == '\n'
}

// Scan splits content into lines and masks string/comment interiors.
// Delimiters (quotes, backticks) survive masking; comment text does not.
// Block comments and template literals carry state across lines;
// quoted strings reset at end of line (TS forbids raw newlines there).
func Scan(content []byte) *File {
	lines := strings.Split(string(content), "\n")

	f := &File{
		Content:    content,
		Lines:      lines,
		Masked:     make([]string, len(lines)),
		Strings:    make([][]Span, len(lines)),
		InTemplate: make([]bool, len(lines)),
		InComment:  make([]bool, len(lines)),
	}

	const (
		modeCode = iota
		modeBlockComment
		modeTemplate
	)
	mode := modeCode

	for li, line := range lines {
		masked := []byte(line)
		var spans []Span

		// Per-line quote state. quote is 0 outside a string.
		var quote byte
		quoteStart := 0

		for i := 0; i < len(line); i++ {
			c := line[i]

			switch {
			case quote != 0:
				if c == '\\' && i+1 < len(line) {
					masked[i] = ' '
					masked[i+1] = ' '
					i++
					continue
				}
				if c == quote {
					spans = append(spans, Span{Start: quoteStart, End: i + 1})
					quote = 0
					continue
				}
				masked[i] = ' '

			case mode == modeBlockComment:
				masked[i] = ' '
				if c == '*' && i+1 < len(line) && line[i+1] == '/' {
					masked[i+1] = ' '
					i++
					mode = modeCode
				}

			case mode == modeTemplate:
				if c == '\\' && i+1 < len(line) {
					masked[i] = ' '
					masked[i+1] = ' '
					i++
					continue
				}
				if c == '`' {
					mode = modeCode
					continue
				}
				masked[i] = ' '

			default: // modeCode
				switch c {
				case '/':
					if i+1 < len(line) && line[i+1] == '/' {
						for j := i; j < len(line); j++ {
							masked[j] = ' '
						}
						i = len(line)
					} else if i+1 < len(line) && line[i+1] == '*' {
						masked[i] = ' '
						masked[i+1] = ' '
						i++
						mode = modeBlockComment
					} else if end, ok := regexEnd(line, i); ok && regexCanFollow(masked, i) {
						for k := i + 1; k < end; k++ {
							masked[k] = ' '
						}
						i = end
					}
				case '\'', '"':
					quote = c
					quoteStart = i
				case '`':
					mode = modeTemplate
				}
			}
		}

		f.Masked[li] = string(masked)
		f.Strings[li] = spans
		f.InTemplate[li] = mode == modeTemplate
		f.InComment[li] = mode == modeBlockComment
	}

	return f
}

// regexCanFollow reports whether a / at offset i can open a regex
// literal rather than a division, judged by the last code character
// before it in the already-masked prefix.
func regexCanFollow(masked []byte, i int) bool {
	for j := i - 1; j >= 0; j-- {
		c := masked[j]
		if c == ' ' || c == '\t' {
			continue
		}
		return strings.ContainsRune("=([{,;:!&|?+-*%<>~^", rune(c))
	}
	return true // line start
}

// regexEnd returns the offset of the closing / of a regex literal
// opening at i, honoring escapes and character classes. Regex literals
// cannot span lines, so no close on this line means the / was a
// division after all.
func regexEnd(line string, i int) (int, bool) {
	inClass := false
	for j := i + 1; j < len(line); j++ {
		switch {
		case line[j] == '\\':
			j++
		case inClass:
			if line[j] == ']' {
				inClass = false
			}
		case line[j] == '[':
			inClass = true
		case line[j] == '/':
			return j, true
		}
	}
	return 0, false
}
