// Copyright © 2025 The pyvet authors

// Package token defines lexical tokens for Python source and a scanner
// that produces them.
package token

import "fmt"

// Type identifies the lexical class of a token.
type Type uint

const (
	INVALID Type = iota
	ERROR
	EOF

	// NEWLINE terminates a logical line. Newlines inside brackets and
	// after a backslash continuation are suppressed by the scanner.
	NEWLINE

	NAME
	NUMBER
	STRING
	OP

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		NEWLINE: "newline",
		NAME:    "name",
		NUMBER:  "number",
		STRING:  "string",
		OP:      "op",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Token is a single lexical token. Text is the exact source text, so a
// token spans bytes [Source.Pos, Source.Pos+len(Text)) of the input.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

// End returns the byte offset just past the token's source text.
func (t *Token) End() int {
	return t.Source.Pos + len(t.Text)
}

// Location identifies a position in a source stream.
type Location struct {
	File string // a name representing the source stream
	Pos  int    // byte offset (starting at 0)
	Line int    // line number (starting at 1)
	Col  int    // column number (starting at 1)
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return loc.File
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError is an error annotated with a source location.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
