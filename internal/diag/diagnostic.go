package diag

import "zenc/internal/source"

// Note attaches auxiliary context to a diagnostic, e.g. the location of the
// conflicting prior borrow or the original move site.
type Note struct {
	Pos source.Pos
	Msg string
}

// Diagnostic captures a single borrow or move violation.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Pos
	Notes    []Note
	Hints    []string
}
