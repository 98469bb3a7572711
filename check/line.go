// Copyright © 2025 The pyvet authors

package check

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineRule is a stateless single-line rule. Violated receives the full
// rstripped line list and the index of the line under test; most rules
// only look at lines[i], S006 looks back three lines. Detail, when set,
// produces the message placeholder value from the line text.
type LineRule struct {
	Code     Code
	Doc      string
	Violated func(lines []string, i int) bool
	Detail   func(line string) string
}

// lineRules is the fixed rule table in evaluation order.
var lineRules = []LineRule{
	{
		Code:     S001,
		Doc:      "A line must not be longer than 79 characters.",
		Violated: tooLong,
	},
	{
		Code:     S002,
		Doc:      "Indentation must be a multiple of four spaces. Only leading space characters count; tabs do not.",
		Violated: badIndentation,
	},
	{
		Code:     S003,
		Doc:      "A statement must not end with an unnecessary semicolon. Semicolons inside the comment portion of a line are acceptable.",
		Violated: trailingSemicolon,
	},
	{
		Code:     S004,
		Doc:      "An inline comment must be separated from code by at least two spaces.",
		Violated: tightInlineComment,
	},
	{
		Code:     S005,
		Doc:      "Lines must not contain TODO markers in comments. The match is case-insensitive and purely textual, so occurrences inside string literals are also reported.",
		Violated: todoFound,
	},
	{
		Code:     S006,
		Doc:      "A code line must not be preceded by more than two blank lines. Only the first non-blank line after such a run is reported.",
		Violated: excessBlankLines,
	},
	{
		Code:     S007,
		Doc:      "A class or def keyword must be followed by exactly one space before the declared name.",
		Violated: constructorSpaces,
		Detail:   constructorKeyword,
	},
	{
		Code:     S008,
		Doc:      "Class names must be written in CamelCase.",
		Violated: classNameNotCamel,
		Detail:   declaredName,
	},
	{
		Code:     S009,
		Doc:      "Function names must be written in snake_case. Only an uppercase first letter is actually rejected.",
		Violated: funcNameNotSnake,
		Detail:   declaredName,
	},
}

// S001
func tooLong(lines []string, i int) bool {
	return utf8.RuneCountInString(lines[i]) > 79
}

// S002
func badIndentation(lines []string, i int) bool {
	n := 0
	for _, c := range lines[i] {
		if c != ' ' {
			break
		}
		n++
	}
	return n%4 != 0
}

// S003
func trailingSemicolon(lines []string, i int) bool {
	code, _, _ := strings.Cut(lines[i], "#")
	code = strings.TrimRightFunc(code, unicode.IsSpace)
	return strings.HasSuffix(code, ";")
}

// S004
func tightInlineComment(lines []string, i int) bool {
	line := lines[i]
	return strings.Contains(line, "#") &&
		!strings.HasPrefix(line, "#") &&
		!strings.Contains(line, "  #")
}

// S005
func todoFound(lines []string, i int) bool {
	line := strings.ToLower(lines[i])
	return strings.Contains(line, "#todo") || strings.Contains(line, "# todo")
}

// S006
func excessBlankLines(lines []string, i int) bool {
	if i <= 2 {
		return false
	}
	return lines[i] != "" && lines[i-1] == "" && lines[i-2] == "" && lines[i-3] == ""
}

var (
	spacesAfterConstructor = regexp.MustCompile(`^(class|def)\s{2,}`)
	camelClassDecl         = regexp.MustCompile(`^class\s+[A-Z]`)
	lowerFuncDecl          = regexp.MustCompile(`^def\s+[^A-Z]`)
	spaceRuns              = regexp.MustCompile(` +`)
	nonWordRuns            = regexp.MustCompile(`\W+`)
)

// S007
func constructorSpaces(lines []string, i int) bool {
	return spacesAfterConstructor.MatchString(lstrip(lines[i]))
}

// S008. The containment test is deliberately textual: any line containing
// "class" that does not open a CamelCase class declaration is reported,
// string literals included.
func classNameNotCamel(lines []string, i int) bool {
	return strings.Contains(lines[i], "class") && !camelClassDecl.MatchString(lines[i])
}

// S009. Inverted check: only a name whose first letter is uppercase
// fails; a mixed name like my_Func passes.
func funcNameNotSnake(lines []string, i int) bool {
	return strings.Contains(lines[i], "def") && !lowerFuncDecl.MatchString(lstrip(lines[i]))
}

// constructorKeyword names the keyword reported by S007, chosen by
// whether the untrimmed line starts with "class".
func constructorKeyword(line string) string {
	if strings.HasPrefix(line, "class") {
		return "'class'"
	}
	return "'def'"
}

// declaredName extracts the declared identifier for S008/S009: split the
// line on runs of spaces, take the second token, and strip every
// non-word character. Lines with fewer than two tokens yield "".
func declaredName(line string) string {
	fields := spaceRuns.Split(line, -1)
	if len(fields) < 2 {
		return ""
	}
	return nonWordRuns.ReplaceAllString(fields[1], "")
}

func lstrip(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
