package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sofmeright/typefreight/src/config"
	"github.com/sofmeright/typefreight/src/project"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	return string(data)
}

func testOptions(root string) Options {
	return Options{
		RootDir: root,
		Config: &config.Config{
			Lint:  config.DefaultLintConfig(),
			Style: config.DefaultStyleConfig(),
			Badge: config.DefaultBadgeConfig(),
		},
	}
}

func diagnosticFiles(result *RunResult) map[string]bool {
	files := map[string]bool{}
	for _, d := range result.Diagnostics {
		files[d.File] = true
	}
	return files
}

func TestLint_ErrorThrowPasses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	writeFile(t, root, "a.ts", "throw new Error('hello world');\n")

	result, err := Lint(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if !result.Okay {
		t.Fatalf("expected pass, got diagnostics: %#v", result.Diagnostics)
	}
}

func TestLint_StringThrowFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	writeFile(t, root, "a.ts", "throw 'hello world';\n")

	result, err := Lint(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if result.Okay {
		t.Fatal("expected failure for thrown string")
	}

	found := false
	for _, d := range result.Diagnostics {
		if d.File == "a.ts" && d.Rule == "no-string-throw" && d.Line == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing no-string-throw diagnostic: %#v", result.Diagnostics)
	}
}

func TestLint_FixRewritesAndPasses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	path := writeFile(t, root, "a.ts", "const x : Array<string> = [];\n")

	result, err := Lint(context.Background(), testOptions(root), nil, true)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if got := readFile(t, path); got != "const x : string[] = [];\n" {
		t.Fatalf("fix produced %q", got)
	}
	// Post-fix state decides the outcome.
	if !result.Okay {
		t.Fatalf("expected pass after fix, got %#v", result.Diagnostics)
	}
}

func TestLint_DryRunNeverWrites(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	content := "const x : Array<string> = [];\n"
	path := writeFile(t, root, "a.ts", content)

	opts := testOptions(root)
	opts.DryRun = true

	result, err := Lint(context.Background(), opts, nil, true)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if got := readFile(t, path); got != content {
		t.Fatalf("dry run touched the file: %q", got)
	}
	// Pre-fix state decides the outcome.
	if result.Okay {
		t.Fatal("dry run should report the pre-fix failure")
	}
}

func TestLint_FixIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	path := writeFile(t, root, "a.ts", "var ok = a == b;\n")

	if _, err := Lint(context.Background(), testOptions(root), nil, true); err != nil {
		t.Fatalf("Lint (first): %v", err)
	}
	first := readFile(t, path)
	if first != "let ok = a === b;\n" {
		t.Fatalf("first fix produced %q", first)
	}

	if _, err := Lint(context.Background(), testOptions(root), nil, true); err != nil {
		t.Fatalf("Lint (second): %v", err)
	}
	if second := readFile(t, path); second != first {
		t.Fatalf("second fix pass changed the file:\n%q\n%q", first, second)
	}
}

func TestLint_ExplicitFileIgnoresSiblingViolations(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{}`)
	writeFile(t, root, "good.ts", "export const ok = 1;\n")
	writeFile(t, root, "bad.ts", "throw 'sibling violation';\n")

	result, err := Lint(context.Background(), testOptions(root), []string{"good.ts"}, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if !result.Okay {
		t.Fatalf("sibling violations leaked into isolated run: %#v", result.Diagnostics)
	}
}

func TestLint_IncludeScopesTheScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"include":["dirb/*"]}`)
	writeFile(t, root, "dira/good.ts", "throw 'unscanned';\n")
	writeFile(t, root, "dirb/bad.ts", "throw 'scanned';\n")

	result, err := Lint(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if result.Okay {
		t.Fatal("expected failure from dirb/bad.ts")
	}

	files := diagnosticFiles(result)
	if !files["dirb/bad.ts"] {
		t.Fatalf("dirb/bad.ts not reported: %#v", result.Diagnostics)
	}
	if files["dira/good.ts"] {
		t.Fatalf("file outside include reported: %#v", result.Diagnostics)
	}
}

func TestLint_UnknownExplicitFileAborts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	writeFile(t, root, "a.ts", "export const ok = 1;\n")
	writeFile(t, root, "stray.ts", "throw 'never scanned';\n")

	_, err := Lint(context.Background(), testOptions(root), []string{"stray.ts"}, false)
	var unknown *project.UnknownFileError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFileError, got %v", err)
	}
	if !strings.Contains(unknown.Error(), "not part of the project") {
		t.Fatalf("unexpected message: %q", unknown.Error())
	}
}

func TestLint_DirectoryOverrideReplacesDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{}`)
	writeFile(t, root, "dira/a.ts", "var x = 1;\n")
	writeFile(t, root, "dirb/b.ts", "var y = 2;\n")
	// Empty rule set: nothing runs under dirb.
	writeFile(t, root, "dirb/.typefreightrc.json", `{"rules":{}}`)

	result, err := Lint(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}

	files := diagnosticFiles(result)
	if !files["dira/a.ts"] {
		t.Fatalf("default rules did not run in dira: %#v", result.Diagnostics)
	}
	if files["dirb/b.ts"] {
		t.Fatalf("override did not suppress rules in dirb: %#v", result.Diagnostics)
	}
}

func TestLint_OverrideEscalatesSeverity(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{}`)
	writeFile(t, root, "a.ts", "var x = 1;\n")
	writeFile(t, root, ".typefreightrc.json", `{"rules":{"no-var":"critical"}}`)

	result, err := Lint(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %#v", result.Findings)
	}
	f := result.Findings[0]
	if f.Severity.String() != "critical" {
		t.Fatalf("severity = %v, want critical", f.Severity)
	}
	if f.Origin == "" {
		t.Fatal("finding not stamped with its override origin")
	}
}

func TestLint_MalformedOverrideAbortsRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{}`)
	writeFile(t, root, "a.ts", "export const ok = 1;\n")
	writeFile(t, root, ".typefreightrc.json", `{"rules":`)

	if _, err := Lint(context.Background(), testOptions(root), nil, false); err == nil {
		t.Fatal("malformed override should abort the run")
	}
}

func TestFormat_CheckReportsWithoutWriting(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	content := "const x = \"hi\"\n"
	path := writeFile(t, root, "a.ts", content)

	result, err := Format(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if result.Okay {
		t.Fatal("expected deviations to fail the check")
	}
	if got := readFile(t, path); got != content {
		t.Fatalf("check mode touched the file: %q", got)
	}
}

func TestFormat_WriteRewritesInPlace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	path := writeFile(t, root, "a.ts", "const x = \"hi\"\n")

	result, err := Format(context.Background(), testOptions(root), nil, true)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !result.Okay {
		t.Fatalf("write mode should succeed: %#v", result.Diagnostics)
	}
	if got := readFile(t, path); got != "const x = 'hi';\n" {
		t.Fatalf("rewrite produced %q", got)
	}

	// A second pass finds nothing left to do.
	again, err := Format(context.Background(), testOptions(root), nil, false)
	if err != nil {
		t.Fatalf("Format (second pass): %v", err)
	}
	if !again.Okay || len(again.Diagnostics) != 0 {
		t.Fatalf("formatting not stable: %#v", again.Diagnostics)
	}
}

func TestFormat_DryRunOverridesWrite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	content := "const x = \"hi\"\n"
	path := writeFile(t, root, "a.ts", content)

	opts := testOptions(root)
	opts.DryRun = true

	result, err := Format(context.Background(), opts, nil, true)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := readFile(t, path); got != content {
		t.Fatalf("dry run touched the file: %q", got)
	}
	if result.Okay {
		t.Fatal("dry run should report the pending deviations")
	}
}

func TestLint_RuleSelectionFlags(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"files":["a.ts"]}`)
	writeFile(t, root, "a.ts", "var x = 1;\nconsole.log(x);\n")

	opts := testOptions(root)
	opts.Rules = []string{"no-var"}

	result, err := Lint(context.Background(), opts, nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	for _, d := range result.Diagnostics {
		if d.Rule != "no-var" {
			t.Fatalf("unselected rule ran: %#v", d)
		}
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("selected rule produced no diagnostics")
	}

	opts = testOptions(root)
	opts.SkipRules = []string{"no-var"}
	result, err = Lint(context.Background(), opts, nil, false)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	for _, d := range result.Diagnostics {
		if d.Rule == "no-var" {
			t.Fatalf("skipped rule ran: %#v", d)
		}
	}
}
