package config

// Quote styles accepted by StyleConfig.Quotes.
const (
	QuotesSingle = "single"
	QuotesDouble = "double"
)

// StyleConfig holds formatter options. Style concerns live here
// exclusively — the lint rule set never duplicates them.
type StyleConfig struct {
	Quotes                 string `yaml:"quotes" toml:"quotes"`
	Semicolons             *bool  `yaml:"semicolons" toml:"semicolons"`
	Indent                 int    `yaml:"indent" toml:"indent"`
	FinalNewline           *bool  `yaml:"final_newline" toml:"final_newline"`
	TrimTrailingWhitespace *bool  `yaml:"trim_trailing_whitespace" toml:"trim_trailing_whitespace"`
}

// DefaultStyleConfig returns the bundled formatter defaults:
// single quotes, required semicolons, two-space indent, final newline.
func DefaultStyleConfig() StyleConfig {
	yes := true
	return StyleConfig{
		Quotes:                 QuotesSingle,
		Semicolons:             &yes,
		Indent:                 2,
		FinalNewline:           &yes,
		TrimTrailingWhitespace: &yes,
	}
}

// WantSemicolons reports whether trailing semicolons are required.
func (s StyleConfig) WantSemicolons() bool {
	return s.Semicolons == nil || *s.Semicolons
}

// WantFinalNewline reports whether files must end with a newline.
func (s StyleConfig) WantFinalNewline() bool {
	return s.FinalNewline == nil || *s.FinalNewline
}

// WantTrimTrailing reports whether trailing whitespace is stripped.
func (s StyleConfig) WantTrimTrailing() bool {
	return s.TrimTrailingWhitespace == nil || *s.TrimTrailingWhitespace
}

// QuoteChar returns the preferred quote character.
func (s StyleConfig) QuoteChar() byte {
	if s.Quotes == QuotesDouble {
		return '"'
	}
	return '\''
}
