package lint

import "fmt"

// Severity indicates how serious a finding is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity maps a config level string to a Severity.
// "error" is accepted as an alias for critical.
func ParseSeverity(level string) (Severity, bool) {
	switch level {
	case "info":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "critical", "error":
		return SeverityCritical, true
	}
	return SeverityInfo, false
}

// Fix is a mechanical correction for a finding: a byte-column range
// replacement within one line, or removal of the whole line.
type Fix struct {
	Line       int    // 1-based
	StartCol   int    // 1-based byte column
	EndCol     int    // exclusive
	Text       string // replacement text
	DeleteLine bool   // drop the entire line; cols ignored
}

// Finding represents a single lint result. Origin carries the path of
// the override configuration the file was linted under, empty for the
// bundled default.
type Finding struct {
	File     string
	Line     int
	Column   int
	Rule     string
	Severity Severity
	Message  string
	Origin   string
	Fix      *Fix
}

// FileInfo is passed to each rule for inspection.
type FileInfo struct {
	Path    string // relative path from project root
	AbsPath string // absolute path on disk
	Size    int64
}
