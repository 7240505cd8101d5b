package lint

import (
	"sort"
	"strings"
)

// ApplyFixes applies mechanical corrections to content and returns the
// rewritten bytes plus the number of fixes applied. Fixes on the same
// line are applied right-to-left; overlapping fixes are skipped so one
// correction never corrupts another. Line structure outside fixed
// regions is preserved byte-for-byte.
func ApplyFixes(content []byte, findings []Finding) ([]byte, int) {
	var fixes []Fix
	for _, f := range findings {
		if f.Fix != nil {
			fixes = append(fixes, *f.Fix)
		}
	}
	if len(fixes) == 0 {
		return content, 0
	}

	lines := strings.Split(string(content), "\n")

	byLine := make(map[int][]Fix)
	deleted := make(map[int]bool)
	for _, fx := range fixes {
		if fx.Line < 1 || fx.Line > len(lines) {
			continue
		}
		if fx.DeleteLine {
			deleted[fx.Line] = true
			continue
		}
		byLine[fx.Line] = append(byLine[fx.Line], fx)
	}

	applied := 0
	for lineNum, lineFixes := range byLine {
		if deleted[lineNum] {
			continue
		}
		// Right-to-left keeps earlier columns stable.
		sort.Slice(lineFixes, func(i, j int) bool {
			return lineFixes[i].StartCol > lineFixes[j].StartCol
		})

		line := lines[lineNum-1]
		lastStart := len(line) + 1
		for _, fx := range lineFixes {
			start, end := fx.StartCol-1, fx.EndCol-1
			if start < 0 || end > len(line) || start > end {
				continue
			}
			if end > lastStart-1 {
				continue // overlaps a fix already applied
			}
			line = line[:start] + fx.Text + line[end:]
			lastStart = start + 1
			applied++
		}
		lines[lineNum-1] = line
	}

	if len(deleted) > 0 {
		kept := lines[:0]
		for i, line := range lines {
			if deleted[i+1] {
				applied++
				continue
			}
			kept = append(kept, line)
		}
		lines = kept
	}

	return []byte(strings.Join(lines, "\n")), applied
}
