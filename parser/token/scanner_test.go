// Copyright © 2025 The pyvet authors

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll tokenizes src completely, failing the test on ERROR tokens.
func scanAll(t *testing.T, src string) []*Token {
	t.Helper()
	s := NewScanner("test.py", []byte(src))
	var toks []*Token
	for {
		tok := s.Scan()
		require.NotEqual(t, ERROR, tok.Type, "scan error: %s", tok.Text)
		if tok.Type == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// scanUntilError tokenizes src until an ERROR token appears.
func scanUntilError(t *testing.T, src string) *Token {
	t.Helper()
	s := NewScanner("test.py", []byte(src))
	for {
		tok := s.Scan()
		switch tok.Type {
		case ERROR:
			return tok
		case EOF:
			t.Fatalf("no error scanning %q", src)
		}
	}
}

func texts(toks []*Token) []string {
	var out []string
	for _, tok := range toks {
		out = append(out, tok.Text)
	}
	return out
}

func TestScan_Simple(t *testing.T) {
	toks := scanAll(t, "x = 1\n")
	require.Len(t, toks, 4)
	assert.Equal(t, NAME, toks[0].Type)
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, OP, toks[1].Type)
	assert.Equal(t, NUMBER, toks[2].Type)
	assert.Equal(t, NEWLINE, toks[3].Type)
}

func TestScan_CommentsSkipped(t *testing.T) {
	toks := scanAll(t, "x = 1  # the answer\ny = 2\n")
	assert.Equal(t, []string{"x", "=", "1", "\n", "y", "=", "2", "\n"}, texts(toks))
}

func TestScan_NewlineSuppressedInBrackets(t *testing.T) {
	toks := scanAll(t, "foo(a,\n    b)\n")
	assert.Equal(t, []string{"foo", "(", "a", ",", "b", ")", "\n"}, texts(toks))
}

func TestScan_BackslashContinuation(t *testing.T) {
	toks := scanAll(t, "x = 1 + \\\n    2\n")
	assert.Equal(t, []string{"x", "=", "1", "+", "2", "\n"}, texts(toks))
}

func TestScan_Strings(t *testing.T) {
	toks := scanAll(t, `s = 'it''s'`+"\n")
	require.Len(t, toks, 5)
	assert.Equal(t, STRING, toks[2].Type)
	assert.Equal(t, "'it'", toks[2].Text)
	assert.Equal(t, STRING, toks[3].Type)
}

func TestScan_TripleQuotedString(t *testing.T) {
	toks := scanAll(t, "s = \"\"\"line one\nline two\"\"\"\n")
	require.Len(t, toks, 4)
	assert.Equal(t, STRING, toks[2].Type)
	assert.Equal(t, "\"\"\"line one\nline two\"\"\"", toks[2].Text)
}

func TestScan_PrefixedStrings(t *testing.T) {
	for _, src := range []string{`r'\d+'`, `b"bytes"`, `f"hi {name}"`, `rb'raw'`} {
		toks := scanAll(t, src+"\n")
		require.Len(t, toks, 2, "source %q", src)
		assert.Equal(t, STRING, toks[0].Type, "source %q", src)
		assert.Equal(t, src, toks[0].Text, "source %q", src)
	}
}

func TestScan_StringEscapes(t *testing.T) {
	toks := scanAll(t, `s = 'a\'b'`+"\n")
	require.Len(t, toks, 4)
	assert.Equal(t, `'a\'b'`, toks[2].Text)
}

func TestScan_Numbers(t *testing.T) {
	for _, src := range []string{"42", "3.14", "0x1f", "1_000", "1e-5", "2j", ".5"} {
		toks := scanAll(t, src+"\n")
		require.Len(t, toks, 2, "source %q", src)
		assert.Equal(t, NUMBER, toks[0].Type, "source %q", src)
		assert.Equal(t, src, toks[0].Text, "source %q", src)
	}
}

func TestScan_MultiCharOperators(t *testing.T) {
	toks := scanAll(t, "a **= b // c != d := e -> f\n")
	assert.Equal(t, []string{"a", "**=", "b", "//", "c", "!=", "d", ":=", "e", "->", "f", "\n"}, texts(toks))
}

func TestScan_Location(t *testing.T) {
	toks := scanAll(t, "x = 1\ny = 2\n")
	require.Len(t, toks, 8)
	assert.Equal(t, 1, toks[0].Source.Line)
	assert.Equal(t, 1, toks[0].Source.Col)
	assert.Equal(t, 2, toks[4].Source.Line)
	assert.Equal(t, 1, toks[4].Source.Col)
	assert.Equal(t, 2, toks[6].Source.Line)
	assert.Equal(t, 5, toks[6].Source.Col)
}

func TestScan_EOFRepeats(t *testing.T) {
	s := NewScanner("test.py", []byte(""))
	assert.Equal(t, EOF, s.Scan().Type)
	assert.Equal(t, EOF, s.Scan().Type)
}

func TestScan_Errors(t *testing.T) {
	tok := scanUntilError(t, "s = 'unterminated\n")
	assert.Contains(t, tok.Text, "unterminated string")

	tok = scanUntilError(t, "x = (1\n")
	assert.Contains(t, tok.Text, "unclosed")

	tok = scanUntilError(t, "x = 1)\n")
	assert.Contains(t, tok.Text, "unmatched")

	tok = scanUntilError(t, "x = (1]\n")
	assert.Contains(t, tok.Text, "does not match")

	tok = scanUntilError(t, "x = 1 ? 2\n")
	assert.Contains(t, tok.Text, "unexpected character")
}

func TestLocation_String(t *testing.T) {
	loc := &Location{File: "a.py", Line: 3, Col: 7}
	assert.Equal(t, "a.py:3:7", loc.String())
}
