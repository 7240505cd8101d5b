package format

import (
	"strings"
	"testing"

	"github.com/sofmeright/typefreight/src/config"
)

func apply(t *testing.T, content string) (string, []Change) {
	t.Helper()

	out, changes := Apply([]byte(content), config.DefaultStyleConfig())
	return string(out), changes
}

func hasChangeContaining(changes []Change, substr string) bool {
	for _, c := range changes {
		if strings.Contains(c.Message, substr) {
			return true
		}
	}
	return false
}

func TestApply_CleanFileUntouched(t *testing.T) {
	content := "const x = 'one';\nlet y = 2;\n"
	out, changes := apply(t, content)
	if len(changes) != 0 {
		t.Fatalf("clean file produced changes: %#v", changes)
	}
	if out != content {
		t.Fatalf("clean file rewritten: %q", out)
	}
}

func TestApply_QuoteNormalization(t *testing.T) {
	out, changes := apply(t, `const s = "hello";`+"\n")
	if !strings.Contains(out, "'hello'") {
		t.Fatalf("double quotes not normalized: %q", out)
	}
	if !hasChangeContaining(changes, "single quotes") {
		t.Fatalf("missing quote change: %#v", changes)
	}
}

func TestApply_QuoteNormalizationSkipsUnsafeBodies(t *testing.T) {
	// Body contains the target quote — re-quoting would need escaping.
	content := `const s = "it's";` + "\n"
	out, _ := apply(t, content)
	if !strings.Contains(out, `"it's"`) {
		t.Fatalf("unsafe literal rewritten: %q", out)
	}

	// Body contains an escape — left alone as well.
	content = `const s = "a\tb";` + "\n"
	out, _ = apply(t, content)
	if !strings.Contains(out, `"a\tb"`) {
		t.Fatalf("escaped literal rewritten: %q", out)
	}
}

func TestApply_SemicolonInsertion(t *testing.T) {
	out, changes := apply(t, "const x = 1\n")
	if !strings.Contains(out, "const x = 1;") {
		t.Fatalf("semicolon not inserted: %q", out)
	}
	if !hasChangeContaining(changes, "semicolon") {
		t.Fatalf("missing semicolon change: %#v", changes)
	}
}

func TestApply_SemicolonBeforeTrailingComment(t *testing.T) {
	out, _ := apply(t, "return x // result\n")
	if !strings.Contains(out, "return x; // result") {
		t.Fatalf("semicolon not placed before comment: %q", out)
	}

	out, _ = apply(t, "return x /* result */\n")
	if !strings.Contains(out, "return x; /* result */") {
		t.Fatalf("semicolon not placed before block comment: %q", out)
	}
}

func TestApply_SemicolonNotForcedOnContinuations(t *testing.T) {
	cases := []string{
		"const x = {\n",
		"const x = 1 +\n",
		"import {\n",
		"export\n",
		"const x = 1;\n",
	}
	for _, content := range cases {
		out, _ := apply(t, content)
		if strings.Count(out, ";") > strings.Count(content, ";") {
			t.Errorf("semicolon inserted into %q: %q", content, out)
		}
	}
}

func TestApply_MultilineTemplateLeftAlone(t *testing.T) {
	// Every byte between the backticks is string contents: the open
	// line gets no terminator, interior tabs and trailing spaces stay.
	content := "const s = `hello  \n\tworld\n`;\n"
	out, changes := apply(t, content)
	if len(changes) != 0 {
		t.Fatalf("template literal produced changes: %#v", changes)
	}
	if out != content {
		t.Fatalf("template literal rewritten:\n%q\n%q", content, out)
	}
}

func TestApply_NoSemicolonIntoOpenBlockComment(t *testing.T) {
	content := "const x = 1 /* note\n*/ + 2;\n"
	out, _ := apply(t, content)
	if strings.Contains(out, "note;") || strings.Contains(out, "1;") {
		t.Fatalf("semicolon inserted into open block comment: %q", out)
	}
}

func TestApply_TabIndentExpansion(t *testing.T) {
	out, changes := apply(t, "\t\tf();\n")
	if !strings.HasPrefix(out, "    f();") {
		t.Fatalf("tabs not expanded to two-space indent: %q", out)
	}
	if !hasChangeContaining(changes, "tab indentation") {
		t.Fatalf("missing indent change: %#v", changes)
	}
}

func TestApply_TrailingWhitespaceTrimmed(t *testing.T) {
	out, changes := apply(t, "f();   \n")
	if !strings.Contains(out, "f();\n") || strings.Contains(out, ";   ") {
		t.Fatalf("trailing whitespace kept: %q", out)
	}
	if !hasChangeContaining(changes, "trailing whitespace") {
		t.Fatalf("missing trim change: %#v", changes)
	}
}

func TestApply_FinalNewlineAppended(t *testing.T) {
	out, changes := apply(t, "f();")
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("final newline not appended: %q", out)
	}
	if !hasChangeContaining(changes, "final newline") {
		t.Fatalf("missing newline change: %#v", changes)
	}
	// The file-level change carries line 0.
	for _, c := range changes {
		if strings.Contains(c.Message, "final newline") && c.Line != 0 {
			t.Fatalf("final newline change on line %d, want 0", c.Line)
		}
	}
}

func TestApply_StyleTogglesRespected(t *testing.T) {
	no := false
	style := config.StyleConfig{
		Quotes:                 config.QuotesDouble,
		Semicolons:             &no,
		Indent:                 4,
		FinalNewline:           &no,
		TrimTrailingWhitespace: &no,
	}

	out, _ := Apply([]byte("const s = 'x'\n\tf();  "), style)
	got := string(out)

	if !strings.Contains(got, `"x"`) {
		t.Fatalf("double quote preference ignored: %q", got)
	}
	if strings.Contains(got, "'x';") {
		t.Fatalf("semicolon inserted with semicolons off: %q", got)
	}
	if !strings.Contains(got, "    f();") {
		t.Fatalf("four-space indent ignored: %q", got)
	}
	if !strings.HasSuffix(got, "  ") {
		t.Fatalf("trailing whitespace trimmed with trim off: %q", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	content := "var s = \"hi\"\n\tf()   \nreturn s"
	once, _ := Apply([]byte(content), config.DefaultStyleConfig())
	twice, changes := Apply(once, config.DefaultStyleConfig())
	if len(changes) != 0 {
		t.Fatalf("second pass still reports changes: %#v", changes)
	}
	if string(once) != string(twice) {
		t.Fatalf("formatting not idempotent:\n%q\n%q", once, twice)
	}
}
