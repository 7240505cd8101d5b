package source

import (
	"strings"
	"testing"
)

func TestScan_MasksStringBodies(t *testing.T) {
	src := Scan([]byte(`const s = 'throw me';`))

	if strings.Contains(src.Masked[0], "throw me") {
		t.Fatalf("string body not masked: %q", src.Masked[0])
	}
	if len(src.Masked[0]) != len(src.Lines[0]) {
		t.Fatalf("masking changed line length: %d != %d", len(src.Masked[0]), len(src.Lines[0]))
	}
	// Delimiters survive.
	if src.Masked[0][10] != '\'' {
		t.Fatalf("opening quote masked: %q", src.Masked[0])
	}
}

func TestScan_RecordsStringSpans(t *testing.T) {
	src := Scan([]byte(`f('a', "bb");`))

	spans := src.Strings[0]
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %#v", spans)
	}
	line := src.Lines[0]
	if line[spans[0].Start:spans[0].End] != `'a'` {
		t.Fatalf("first span wrong: %q", line[spans[0].Start:spans[0].End])
	}
	if line[spans[1].Start:spans[1].End] != `"bb"` {
		t.Fatalf("second span wrong: %q", line[spans[1].Start:spans[1].End])
	}
}

func TestScan_LineComments(t *testing.T) {
	src := Scan([]byte("let x = 1; // var y = 2"))

	if strings.Contains(src.Masked[0], "var") {
		t.Fatalf("comment body not masked: %q", src.Masked[0])
	}
	if !strings.Contains(src.Masked[0], "let x = 1;") {
		t.Fatalf("code lost in masking: %q", src.Masked[0])
	}
}

func TestScan_BlockCommentAcrossLines(t *testing.T) {
	content := "a();\n/* var x\n   var y */\nb();"
	src := Scan([]byte(content))

	if strings.Contains(src.Masked[1], "var") || strings.Contains(src.Masked[2], "var") {
		t.Fatalf("block comment leaked: %q / %q", src.Masked[1], src.Masked[2])
	}
	if !strings.Contains(src.Masked[3], "b();") {
		t.Fatalf("code after block comment masked: %q", src.Masked[3])
	}
}

func TestScan_TemplateAcrossLines(t *testing.T) {
	content := "const t = `line one\nvar inside\n`;\nvar after;"
	src := Scan([]byte(content))

	if strings.Contains(src.Masked[1], "var") {
		t.Fatalf("template body leaked: %q", src.Masked[1])
	}
	if !strings.Contains(src.Masked[3], "var after;") {
		t.Fatalf("code after template masked: %q", src.Masked[3])
	}
}

func TestScan_EscapedQuoteStaysInString(t *testing.T) {
	src := Scan([]byte(`const s = 'it\'s fine'; var x;`))

	if !strings.Contains(src.Masked[0], "var x;") {
		t.Fatalf("escape handling broke string end: %q", src.Masked[0])
	}
	if strings.Contains(src.Masked[0], "fine") {
		t.Fatalf("string body leaked past escape: %q", src.Masked[0])
	}
}

func TestScan_CommentMarkerInsideString(t *testing.T) {
	src := Scan([]byte(`const url = 'http://x'; var y;`))

	if !strings.Contains(src.Masked[0], "var y;") {
		t.Fatalf("// inside string treated as comment: %q", src.Masked[0])
	}
}

func TestScan_TracksMultilineEndState(t *testing.T) {
	content := "const t = `one\ntwo\n`;\n/* note\n*/ done();"
	src := Scan([]byte(content))

	wantTemplate := []bool{true, true, false, false, false}
	wantComment := []bool{false, false, false, true, false}
	for i := range wantTemplate {
		if src.InTemplate[i] != wantTemplate[i] {
			t.Errorf("InTemplate[%d] = %v, want %v", i, src.InTemplate[i], wantTemplate[i])
		}
		if src.InComment[i] != wantComment[i] {
			t.Errorf("InComment[%d] = %v, want %v", i, src.InComment[i], wantComment[i])
		}
	}
}

func TestScan_RegexLiteralMasked(t *testing.T) {
	src := Scan([]byte(`const re = /ab\/cd/; f();`))

	if strings.Contains(src.Masked[0], "ab") {
		t.Fatalf("regex body not masked: %q", src.Masked[0])
	}
	if !strings.Contains(src.Masked[0], "f();") {
		t.Fatalf("escaped slash ended the regex early or ate the line: %q", src.Masked[0])
	}
}

func TestScan_RegexCharClassSlash(t *testing.T) {
	src := Scan([]byte(`t(/[/]+/); g();`))

	if !strings.Contains(src.Masked[0], "g();") {
		t.Fatalf("slash in character class closed the regex: %q", src.Masked[0])
	}
}

func TestScan_DivisionNotMasked(t *testing.T) {
	src := Scan([]byte(`const x = a / b / c;`))

	if !strings.Contains(src.Masked[0], "a / b / c") {
		t.Fatalf("division masked as regex: %q", src.Masked[0])
	}
}

func TestEndsWithNewline(t *testing.T) {
	if EndsWithNewline([]byte("x")) {
		t.Fatal("no trailing newline reported as present")
	}
	if !EndsWithNewline([]byte("x\n")) {
		t.Fatal("trailing newline not detected")
	}
	if EndsWithNewline(nil) {
		t.Fatal("empty content reported as newline-terminated")
	}
}
