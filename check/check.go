// Copyright © 2025 The pyvet authors

// Package check provides static style analysis for Python source files.
//
// The checker is a fixed table of rules, each identified by a stable code
// (S001..S012). Rules come in two shapes: line rules, evaluated
// independently against every physical line, and tree rules, which derive
// candidate name sets from a once-parsed syntax tree and correlate each
// name back to the first line containing it as a substring. Diagnostics
// are emitted line by line in ascending code order, so output for a file
// is fully deterministic.
package check

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/luthersystems/pyvet/parser/pyparse"
)

// Code identifies a single style rule.
type Code int

const (
	S001 Code = iota + 1
	S002
	S003
	S004
	S005
	S006
	S007
	S008
	S009
	S010
	S011
	S012

	numCodes
)

func (c Code) String() string {
	return fmt.Sprintf("S%03d", int(c))
}

// ParseCode converts a string such as "S001" into a Code.
func ParseCode(s string) (Code, error) {
	for c := Code(1); c < numCodes; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown check code: %q", s)
}

// DefaultCodes returns all rule codes in their fixed evaluation order.
func DefaultCodes() []Code {
	codes := make([]Code, 0, numCodes-1)
	for c := Code(1); c < numCodes; c++ {
		codes = append(codes, c)
	}
	return codes
}

// messages maps each code to its verbatim message template. S007, S008,
// and S009 carry one format placeholder.
var messages = map[Code]string{
	S001: "Too long",
	S002: "Indentation is not a multiple of four",
	S003: "Unnecessary semicolon after a statement",
	S004: "Less than two spaces before inline comments",
	S005: "TODO found",
	S006: "More than two blank lines preceding a code line",
	S007: "Too many spaces after %s",
	S008: "Class name %s should be written in CamelCase",
	S009: "Function name %s should be written in snake_case",
	S010: "Argument name arg_name should be written in snake_case",
	S011: "Variable var_name should be written in snake_case",
	S012: "The default argument value is mutable",
}

// Diagnostic is a single reported violation. Immutable once created.
type Diagnostic struct {
	// Path is the checked file.
	Path string `json:"path"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Code is the violated rule.
	Code Code `json:"code"`

	// Message is the rendered message text.
	Message string `json:"message"`
}

// String returns the diagnostic in the checker's output format:
// <path>: Line <n>: <CODE> <message>
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: Line %d: %s %s", d.Path, d.Line, d.Code, d.Message)
}

// Checker runs a set of rules over source files. The zero value runs all
// rules.
type Checker struct {
	enabled map[Code]bool
}

// New returns a Checker running the given rules. With no arguments every
// rule is enabled. Rule evaluation order is always the fixed code order
// regardless of the order given here.
func New(codes ...Code) *Checker {
	if len(codes) == 0 {
		codes = DefaultCodes()
	}
	enabled := make(map[Code]bool, len(codes))
	for _, c := range codes {
		enabled[c] = true
	}
	return &Checker{enabled: enabled}
}

// CheckFile reads and checks a single file.
func (c *Checker) CheckFile(path string) ([]Diagnostic, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c.Check(src, path)
}

// Check analyzes source and returns all diagnostics in output order:
// ascending line, then ascending code with the tree rules (S010..S012)
// after the line rules. A parse failure is fatal for the file — no
// diagnostics are returned at all.
func (c *Checker) Check(src []byte, path string) ([]Diagnostic, error) {
	lines := splitLines(src)

	root, err := pyparse.Parse(path, src)
	if err != nil {
		return nil, err
	}
	args := newCandidateSet(argumentNames(root))
	vars := newCandidateSet(variableNames(root))
	defaults := newCandidateSet(mutableDefaultFunctions(root))

	var diags []Diagnostic
	for i, line := range lines {
		for _, rule := range lineRules {
			if !c.enabled[rule.Code] || !rule.Violated(lines, i) {
				continue
			}
			msg := messages[rule.Code]
			if rule.Detail != nil {
				msg = fmt.Sprintf(msg, rule.Detail(line))
			}
			diags = append(diags, Diagnostic{Path: path, Line: i + 1, Code: rule.Code, Message: msg})
		}
		for _, tr := range []struct {
			code Code
			set  *candidateSet
		}{
			{S010, args},
			{S011, vars},
			{S012, defaults},
		} {
			if !c.enabled[tr.code] {
				continue
			}
			if _, ok := tr.set.consume(line); ok {
				diags = append(diags, Diagnostic{Path: path, Line: i + 1, Code: tr.code, Message: messages[tr.code]})
			}
		}
	}
	return diags, nil
}

// splitLines splits source into physical lines with trailing whitespace
// stripped. A trailing newline does not produce a final empty line.
func splitLines(src []byte) []string {
	lines := strings.Split(string(src), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}
