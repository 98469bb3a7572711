// Copyright © 2025 The pyvet authors

package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner converts Python source into a stream of tokens. The scanner
// implements logical-line semantics: physical newlines inside open
// brackets or following a backslash continuation do not produce NEWLINE
// tokens. Comments are consumed and never emitted.
type Scanner struct {
	file string
	src  []byte
	pos  int
	line int
	col  int

	brackets []byte // stack of open bracket characters
	reported bool   // an unclosed-bracket error was already emitted
}

// NewScanner initializes and returns a new Scanner reading src.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{file: file, src: src, line: 1, col: 1}
}

// Scan returns the next token. At the end of input Scan returns an EOF
// token on every call. Lexical problems are reported as ERROR tokens
// whose Text holds a human-readable message.
func (s *Scanner) Scan() *Token {
	for {
		if s.pos >= len(s.src) {
			if len(s.brackets) > 0 && !s.reported {
				s.reported = true
				open := s.brackets[len(s.brackets)-1]
				return &Token{
					Type:   ERROR,
					Text:   fmt.Sprintf("unexpected EOF: unclosed %q", string(open)),
					Source: s.loc(),
				}
			}
			return &Token{Type: EOF, Source: s.loc()}
		}
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			s.next()
		case c == '\n':
			loc := s.loc()
			s.next()
			if len(s.brackets) == 0 {
				return &Token{Type: NEWLINE, Text: "\n", Source: loc}
			}
		case c == '\\':
			loc := s.loc()
			s.next()
			if s.pos < len(s.src) && s.src[s.pos] == '\r' {
				s.next()
			}
			if s.pos < len(s.src) && s.src[s.pos] == '\n' {
				s.next()
				continue
			}
			return s.errorf(loc, `unexpected character '\'`)
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.next()
			}
		case c == '\'' || c == '"':
			return s.scanString(s.loc(), s.pos)
		case c >= '0' && c <= '9':
			return s.scanNumber(s.loc(), s.pos)
		case c == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]):
			return s.scanNumber(s.loc(), s.pos)
		default:
			r, _ := utf8.DecodeRune(s.src[s.pos:])
			if isNameStart(r) {
				return s.scanName()
			}
			return s.scanOperator()
		}
	}
}

func (s *Scanner) loc() *Location {
	return &Location{File: s.file, Pos: s.pos, Line: s.line, Col: s.col}
}

// next consumes one rune, tracking line and column.
func (s *Scanner) next() {
	r, n := utf8.DecodeRune(s.src[s.pos:])
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos += n
}

func (s *Scanner) errorf(loc *Location, format string, args ...interface{}) *Token {
	return &Token{Type: ERROR, Text: fmt.Sprintf(format, args...), Source: loc}
}

func (s *Scanner) scanName() *Token {
	loc := s.loc()
	start := s.pos
	for s.pos < len(s.src) {
		r, _ := utf8.DecodeRune(s.src[s.pos:])
		if !isNameCont(r) {
			break
		}
		s.next()
	}
	text := string(s.src[start:s.pos])
	// A short run of string-prefix letters directly before a quote lexes
	// as part of the string literal (r"...", b'...', f"...", rb"...").
	if s.pos < len(s.src) && (s.src[s.pos] == '\'' || s.src[s.pos] == '"') && isStringPrefix(text) {
		return s.scanString(loc, start)
	}
	return &Token{Type: NAME, Text: text, Source: loc}
}

// scanString consumes a string literal. start is the byte offset of the
// literal including any prefix letters already consumed; loc points at
// that offset.
func (s *Scanner) scanString(loc *Location, start int) *Token {
	quote := s.src[s.pos]
	s.next()
	triple := false
	if s.pos+1 < len(s.src) && s.src[s.pos] == quote && s.src[s.pos+1] == quote {
		triple = true
		s.next()
		s.next()
	}
	for {
		if s.pos >= len(s.src) {
			return s.errorf(loc, "unterminated string literal")
		}
		c := s.src[s.pos]
		switch {
		case c == '\\':
			s.next()
			if s.pos < len(s.src) {
				s.next()
			}
		case c == '\n' && !triple:
			return s.errorf(loc, "unterminated string literal")
		case c == quote:
			if !triple {
				s.next()
				return &Token{Type: STRING, Text: string(s.src[start:s.pos]), Source: loc}
			}
			if s.pos+2 < len(s.src) && s.src[s.pos+1] == quote && s.src[s.pos+2] == quote {
				s.next()
				s.next()
				s.next()
				return &Token{Type: STRING, Text: string(s.src[start:s.pos]), Source: loc}
			}
			s.next()
		default:
			s.next()
		}
	}
}

// scanNumber consumes a numeric literal loosely: digits, letters (hex,
// binary, imaginary suffixes), underscores, dots, and signed exponents.
// The checker never interprets numeric values, so no validation happens.
func (s *Scanner) scanNumber(loc *Location, start int) *Token {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isDigit(c) || isASCIILetter(c) || c == '.' || c == '_' {
			s.next()
			continue
		}
		if (c == '+' || c == '-') && s.pos > start {
			prev := s.src[s.pos-1]
			if (prev == 'e' || prev == 'E') && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]) {
				s.next()
				continue
			}
		}
		break
	}
	return &Token{Type: NUMBER, Text: string(s.src[start:s.pos]), Source: loc}
}

// Multi-character operators, longest first so maximal munch wins.
var ops3 = []string{"**=", "//=", ">>=", "<<=", "..."}

var ops2 = []string{
	"**", "//", ">>", "<<",
	"<=", ">=", "==", "!=",
	"->", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
}

const singleOps = "+-*/%@&|^~<>=.,:;()[]{}"

func (s *Scanner) scanOperator() *Token {
	loc := s.loc()
	rest := s.src[s.pos:]
	text := ""
	for _, op := range ops3 {
		if strings.HasPrefix(string(rest[:min(len(rest), 3)]), op) {
			text = op
			break
		}
	}
	if text == "" {
		for _, op := range ops2 {
			if strings.HasPrefix(string(rest[:min(len(rest), 2)]), op) {
				text = op
				break
			}
		}
	}
	if text == "" {
		c := rest[0]
		if !strings.ContainsRune(singleOps, rune(c)) {
			r, _ := utf8.DecodeRune(rest)
			s.next()
			return s.errorf(loc, "unexpected character %q", string(r))
		}
		text = string(c)
	}
	for range text {
		s.next()
	}

	switch text {
	case "(", "[", "{":
		s.brackets = append(s.brackets, text[0])
	case ")", "]", "}":
		if len(s.brackets) == 0 {
			return s.errorf(loc, "unmatched %q", text)
		}
		open := s.brackets[len(s.brackets)-1]
		if closerFor(open) != text[0] {
			return s.errorf(loc, "closing %q does not match open %q", text, string(open))
		}
		s.brackets = s.brackets[:len(s.brackets)-1]
	}
	return &Token{Type: OP, Text: text, Source: loc}
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameCont(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}

// isStringPrefix reports whether text is a valid string literal prefix
// (some combination of r, b, u, f in either case).
func isStringPrefix(text string) bool {
	if len(text) == 0 || len(text) > 2 {
		return false
	}
	for _, c := range text {
		switch c {
		case 'r', 'b', 'u', 'f', 'R', 'B', 'U', 'F':
		default:
			return false
		}
	}
	return true
}
