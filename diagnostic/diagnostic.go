// Copyright © 2025 The pyvet authors

// Package diagnostic provides annotated error rendering for pyvet CLI
// output. Style violations go to stdout as plain single-line records;
// this package renders the other kind of output — fatal I/O and parse
// failures — as annotated snippets on stderr. It is independent of the
// check package so that any command can use it.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a location in source code to display under the
// diagnostic header.
type Span struct {
	File  string // path for reading source; display name if unreadable
	Line  int    // 1-based line number
	Col   int    // 1-based column, 0 when unknown
	Label string // text shown after the caret
}

// Diagnostic is a single error, warning, or note with optional source
// annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string
}
