// Copyright © 2025 The pyvet authors

// Package pyparse parses Python source into a pyast tree.
//
// The parser is statement-oriented: the scanner folds physical lines into
// logical lines, and each logical line is classified and mined for the
// facts the checker needs — function definitions with parameter names and
// default expressions, and identifier occurrences tagged with a
// load/store role. Block structure is not modeled; the checker correlates
// names back to lines textually and never needs it.
package pyparse

import (
	"errors"
	"fmt"

	"github.com/luthersystems/pyvet/parser/exprparser"
	"github.com/luthersystems/pyvet/parser/token"
	"github.com/luthersystems/pyvet/pyast"
)

// Parse parses src and returns the module tree. Lexical errors,
// unbalanced brackets, and malformed definition headers are fatal for the
// whole file.
func Parse(file string, src []byte) (*pyast.Node, error) {
	s := token.NewScanner(file, src)
	var toks []*token.Token
	for {
		tok := s.Scan()
		if tok.Type == token.ERROR {
			return nil, &token.LocationError{Err: errors.New(tok.Text), Source: tok.Source}
		}
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}

	p := &parser{file: file}
	module := &pyast.Node{Kind: pyast.KindModule, Line: 1}
	for _, logical := range splitOn(toks, token.NEWLINE, "\n") {
		for _, stmt := range splitOn(logical, token.OP, ";") {
			node, err := p.parseStmt(stmt)
			if err != nil {
				return nil, err
			}
			if node != nil {
				module.Children = append(module.Children, node)
			}
		}
	}
	return module, nil
}

type parser struct {
	file string
}

// splitOn partitions toks on every token of the given type and text,
// dropping the separators and any empty runs.
func splitOn(toks []*token.Token, typ token.Type, text string) [][]*token.Token {
	var out [][]*token.Token
	start := 0
	depth := 0
	for i, t := range toks {
		if t.Type == token.OP {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
		}
		if t.Type == typ && t.Text == text && depth == 0 {
			if i > start {
				out = append(out, toks[start:i])
			}
			start = i + 1
		}
	}
	if start < len(toks) {
		out = append(out, toks[start:])
	}
	return out
}

func (p *parser) parseStmt(toks []*token.Token) (*pyast.Node, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	first := toks[0]
	if first.Type == token.NAME {
		switch first.Text {
		case "def":
			return p.parseDef(toks)
		case "class":
			return p.parseClass(toks)
		case "async":
			return p.parseStmt(toks[1:])
		case "for":
			return p.parseFor(toks)
		case "with":
			return p.parseWith(toks)
		case "if", "elif", "while", "else", "try", "finally", "except":
			return p.parseCompound(toks)
		case "import", "from", "global", "nonlocal", "pass", "break", "continue", "del":
			// No identifier in these statements is an ast-level name
			// occurrence the checker cares about.
			return nil, nil
		}
	}
	return p.parseSimple(toks)
}

func (p *parser) errorf(at *token.Token, format string, args ...interface{}) error {
	return &token.LocationError{Err: fmt.Errorf(format, args...), Source: at.Source}
}

// parseDef parses a function definition header and any inline body after
// the colon. Parameters following a bare "*" or "*args" are keyword-only
// and are not collected; "*"/"**" parameters themselves are never
// collected.
func (p *parser) parseDef(toks []*token.Token) (*pyast.Node, error) {
	if len(toks) < 2 || toks[1].Type != token.NAME || isKeyword(toks[1].Text) {
		return nil, p.errorf(toks[0], "invalid function definition")
	}
	if len(toks) < 3 || !isOp(toks[2], "(") {
		return nil, p.errorf(toks[1], "expected '(' after function name %s", toks[1].Text)
	}
	fn := &pyast.Node{Kind: pyast.KindFunctionDef, Name: toks[1].Text, Line: toks[0].Source.Line}

	closeParen := matchingClose(toks, 2)
	if closeParen < 0 {
		return nil, p.errorf(toks[2], "unclosed parameter list")
	}

	seenStar := false
	for _, seg := range splitOn(toks[3:closeParen], token.OP, ",") {
		if isOp(seg[0], "*") || isOp(seg[0], "**") {
			// vararg, kwarg, or bare keyword-only marker
			seenStar = true
			continue
		}
		if isOp(seg[0], "/") {
			// positional-only marker
			continue
		}
		if seg[0].Type != token.NAME {
			return nil, p.errorf(seg[0], "invalid parameter")
		}
		param := pyast.Param{Name: seg[0].Text, Line: seg[0].Source.Line}

		rest := seg[1:]
		if len(rest) > 0 && isOp(rest[0], ":") {
			// annotated parameter: names in the annotation are loads
			annEnd := indexOp(rest, "=")
			if annEnd < 0 {
				annEnd = len(rest)
			}
			p.scanExpr(rest[1:annEnd], fn)
			rest = rest[annEnd:]
		}
		if len(rest) > 0 && isOp(rest[0], "=") {
			if len(rest) < 2 {
				return nil, p.errorf(rest[0], "missing default value for parameter %s", param.Name)
			}
			param.Default = p.parseDefault(rest[1:])
		}
		if !seenStar {
			fn.Params = append(fn.Params, param)
		}
	}

	// Trailer: optional "-> annotation", then the colon, then an optional
	// inline body.
	trailer := toks[closeParen+1:]
	colon := indexOp(trailer, ":")
	if colon < 0 {
		return nil, p.errorf(toks[closeParen], "expected ':' in function definition")
	}
	p.scanExpr(trailer[:colon], fn)
	if colon+1 < len(trailer) {
		body, err := p.parseStmt(trailer[colon+1:])
		if err != nil {
			return nil, err
		}
		if body != nil {
			fn.Children = append(fn.Children, body)
		}
	}
	return fn, nil
}

// parseDefault parses a default-argument expression. Expressions outside
// the exprparser grammar degrade to an opaque constant node; only
// list/set/dict shapes need to parse exactly.
func (p *parser) parseDefault(toks []*token.Token) *pyast.Node {
	raw := rawText(toks)
	node, err := exprparser.Parse([]byte(raw))
	if err != nil {
		return &pyast.Node{Kind: pyast.KindConst, Value: raw, Line: toks[0].Source.Line}
	}
	node.Line = toks[0].Source.Line
	return node
}

func (p *parser) parseClass(toks []*token.Token) (*pyast.Node, error) {
	if len(toks) < 2 || toks[1].Type != token.NAME || isKeyword(toks[1].Text) {
		return nil, p.errorf(toks[0], "invalid class definition")
	}
	cls := &pyast.Node{Kind: pyast.KindClassDef, Name: toks[1].Text, Line: toks[0].Source.Line}
	rest := toks[2:]
	colon := indexOp(rest, ":")
	if colon < 0 {
		return nil, p.errorf(toks[1], "expected ':' in class definition")
	}
	p.scanExpr(rest[:colon], cls)
	if colon+1 < len(rest) {
		body, err := p.parseStmt(rest[colon+1:])
		if err != nil {
			return nil, err
		}
		if body != nil {
			cls.Children = append(cls.Children, body)
		}
	}
	return cls, nil
}

func (p *parser) parseFor(toks []*token.Token) (*pyast.Node, error) {
	node := &pyast.Node{Kind: pyast.KindFor, Line: toks[0].Source.Line}
	in := indexName(toks, "in")
	if in < 0 {
		return nil, p.errorf(toks[0], "expected 'in' in for statement")
	}
	p.scanTarget(toks[1:in], node)
	rest := toks[in+1:]
	colon := indexOp(rest, ":")
	if colon < 0 {
		colon = len(rest)
	}
	p.scanExpr(rest[:colon], node)
	if colon+1 < len(rest) {
		body, err := p.parseStmt(rest[colon+1:])
		if err != nil {
			return nil, err
		}
		if body != nil {
			node.Children = append(node.Children, body)
		}
	}
	return node, nil
}

func (p *parser) parseWith(toks []*token.Token) (*pyast.Node, error) {
	node := &pyast.Node{Kind: pyast.KindWith, Line: toks[0].Source.Line}
	rest := toks[1:]
	colon := indexOp(rest, ":")
	if colon < 0 {
		colon = len(rest)
	}
	for _, item := range splitOn(rest[:colon], token.OP, ",") {
		as := indexName(item, "as")
		if as < 0 {
			p.scanExpr(item, node)
			continue
		}
		p.scanExpr(item[:as], node)
		p.scanTarget(item[as+1:], node)
	}
	if colon+1 < len(rest) {
		body, err := p.parseStmt(rest[colon+1:])
		if err != nil {
			return nil, err
		}
		if body != nil {
			node.Children = append(node.Children, body)
		}
	}
	return node, nil
}

// parseCompound handles headed statements (if/elif/while/else/try/
// finally/except): the head is scanned for name occurrences and an
// inline body after the colon is parsed recursively. The bound name of
// "except ... as e" is not an ast-level name occurrence and is skipped.
func (p *parser) parseCompound(toks []*token.Token) (*pyast.Node, error) {
	node := &pyast.Node{Kind: pyast.KindExprStmt, Line: toks[0].Source.Line}
	rest := toks[1:]
	colon := indexOp(rest, ":")
	if colon < 0 {
		colon = len(rest)
	}
	head := rest[:colon]
	if toks[0].Text == "except" {
		if as := indexName(head, "as"); as >= 0 {
			head = head[:as]
		}
	}
	p.scanExpr(head, node)
	if colon+1 < len(rest) {
		body, err := p.parseStmt(rest[colon+1:])
		if err != nil {
			return nil, err
		}
		if body != nil {
			node.Children = append(node.Children, body)
		}
	}
	return node, nil
}

// parseSimple handles assignment and bare-expression statements.
func (p *parser) parseSimple(toks []*token.Token) (*pyast.Node, error) {
	eqs := topLevelIndexes(toks, "=")
	// "=" after a top-level lambda introduces a lambda parameter default,
	// not another assignment target.
	if lam := indexName(toks, "lambda"); lam >= 0 {
		n := 0
		for _, eq := range eqs {
			if eq < lam {
				n++
			}
		}
		eqs = eqs[:n]
	}
	if len(eqs) > 0 {
		node := &pyast.Node{Kind: pyast.KindAssign, Line: toks[0].Source.Line}
		start := 0
		for _, eq := range eqs {
			target := toks[start:eq]
			// annotated target: "x: T = value" binds x; annotation
			// names are loads
			if colon := indexOp(target, ":"); colon >= 0 {
				p.scanExpr(target[colon+1:], node)
				target = target[:colon]
			}
			p.scanTarget(target, node)
			start = eq + 1
		}
		p.scanExpr(toks[start:], node)
		return node, nil
	}

	if aug := topLevelAugAssign(toks); aug >= 0 {
		node := &pyast.Node{Kind: pyast.KindAssign, Line: toks[0].Source.Line}
		target := toks[:aug]
		if len(target) == 1 && target[0].Type == token.NAME && !isKeyword(target[0].Text) {
			node.Children = append(node.Children, nameNode(target[0], pyast.CtxStore))
		} else {
			// attribute or subscript target: the base identifier reads
			p.scanExpr(target, node)
		}
		p.scanExpr(toks[aug+1:], node)
		return node, nil
	}

	// annotation without value: "x: T" still binds x
	if len(toks) >= 2 && toks[0].Type == token.NAME && !isKeyword(toks[0].Text) && isOp(toks[1], ":") {
		node := &pyast.Node{Kind: pyast.KindAssign, Line: toks[0].Source.Line}
		node.Children = append(node.Children, nameNode(toks[0], pyast.CtxStore))
		p.scanExpr(toks[2:], node)
		return node, nil
	}

	node := &pyast.Node{Kind: pyast.KindExprStmt, Line: toks[0].Source.Line}
	p.scanExpr(toks, node)
	return node, nil
}

// scanTarget records identifier occurrences in an assignment target.
// Bare names (including names inside tuple/list unpacking displays) bind;
// bases of attribute, subscript, and call trailers read. A bracket that
// opens a subscript or argument list switches its contents back to
// expression scanning.
func (p *parser) scanTarget(toks []*token.Token, out *pyast.Node) {
	display := []bool{} // true at depths that are unpacking displays
	inExpr := 0         // depth entries that are subscript/argument lists
	for i, t := range toks {
		if t.Type == token.OP {
			switch t.Text {
			case "(", "[", "{":
				open := i == 0 || !isTrailerBase(toks[i-1])
				display = append(display, open)
				if !open {
					inExpr++
				}
			case ")", "]", "}":
				if n := len(display); n > 0 {
					if !display[n-1] {
						inExpr--
					}
					display = display[:n-1]
				}
			}
			continue
		}
		if t.Type != token.NAME || isKeyword(t.Text) || isConstName(t.Text) {
			continue
		}
		if i > 0 && isOp(toks[i-1], ".") {
			continue // attribute name, not an identifier occurrence
		}
		if inExpr > 0 {
			out.Children = append(out.Children, nameNode(t, pyast.CtxLoad))
			continue
		}
		if i+1 < len(toks) && (isOp(toks[i+1], ".") || isOp(toks[i+1], "[") || isOp(toks[i+1], "(")) {
			out.Children = append(out.Children, nameNode(t, pyast.CtxLoad))
			continue
		}
		out.Children = append(out.Children, nameNode(t, pyast.CtxStore))
	}
}

// scanExpr records identifier occurrences in expression position. Almost
// everything is a load; the exceptions are walrus targets and
// comprehension targets, which bind. Attribute names, keyword-argument
// names, constants, and lambda parameters are not identifier occurrences
// at all.
func (p *parser) scanExpr(toks []*token.Token, out *pyast.Node) {
	depth := 0
	compTarget := false // between a comprehension "for" and its "in"
	lambdaParams := -1  // depth at which a lambda parameter list began
	for i, t := range toks {
		if t.Type == token.OP {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ":":
				if lambdaParams == depth {
					lambdaParams = -1
				}
			}
			continue
		}
		if t.Type != token.NAME {
			continue
		}
		if isKeyword(t.Text) {
			switch t.Text {
			case "for":
				if depth > 0 {
					compTarget = true
				}
			case "in":
				compTarget = false
			case "lambda":
				lambdaParams = depth
			}
			continue
		}
		if isConstName(t.Text) {
			continue
		}
		if lambdaParams >= 0 {
			continue // lambda parameters are not name occurrences
		}
		if i > 0 && isOp(toks[i-1], ".") {
			continue // attribute name
		}
		if i+1 < len(toks) && isOp(toks[i+1], "=") && depth > 0 {
			continue // keyword argument name
		}
		if compTarget {
			out.Children = append(out.Children, nameNode(t, pyast.CtxStore))
			continue
		}
		if i+1 < len(toks) && isOp(toks[i+1], ":=") {
			out.Children = append(out.Children, nameNode(t, pyast.CtxStore))
			continue
		}
		out.Children = append(out.Children, nameNode(t, pyast.CtxLoad))
	}
}

func nameNode(t *token.Token, ctx pyast.Ctx) *pyast.Node {
	return &pyast.Node{Kind: pyast.KindName, Name: t.Text, Ctx: ctx, Line: t.Source.Line}
}

// rawText reconstructs the exact source span covered by toks.
func rawText(toks []*token.Token) string {
	if len(toks) == 0 {
		return ""
	}
	var b []byte
	end := 0
	for i, t := range toks {
		if i > 0 && t.Source.Pos > end {
			b = append(b, ' ')
		}
		b = append(b, t.Text...)
		end = t.End()
	}
	return string(b)
}

// matchingClose returns the index of the close bracket matching the open
// bracket at index open, or -1.
func matchingClose(toks []*token.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		if toks[i].Type != token.OP {
			continue
		}
		switch toks[i].Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexOp returns the index of the first top-level OP token with the
// given text, or -1.
func indexOp(toks []*token.Token, text string) int {
	depth := 0
	for i, t := range toks {
		if t.Type != token.OP {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		if depth == 0 && t.Text == text {
			return i
		}
	}
	return -1
}

// indexName returns the index of the first top-level NAME token with the
// given text, or -1.
func indexName(toks []*token.Token, text string) int {
	depth := 0
	for i, t := range toks {
		if t.Type == token.OP {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			continue
		}
		if depth == 0 && t.Type == token.NAME && t.Text == text {
			return i
		}
	}
	return -1
}

func topLevelIndexes(toks []*token.Token, op string) []int {
	var out []int
	depth := 0
	for i, t := range toks {
		if t.Type != token.OP {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		if depth == 0 && t.Text == op {
			out = append(out, i)
		}
	}
	return out
}

var augOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "//=": true,
	"%=": true, "**=": true, ">>=": true, "<<=": true,
	"&=": true, "|=": true, "^=": true, "@=": true,
}

func topLevelAugAssign(toks []*token.Token) int {
	depth := 0
	for i, t := range toks {
		if t.Type != token.OP {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		if depth == 0 && augOps[t.Text] {
			return i
		}
	}
	return -1
}

func isOp(t *token.Token, text string) bool {
	return t.Type == token.OP && t.Text == text
}

// isTrailerBase reports whether a token can directly precede a subscript
// or call bracket (making that bracket a trailer rather than a display).
func isTrailerBase(t *token.Token) bool {
	switch t.Type {
	case token.NAME:
		return !isKeyword(t.Text)
	case token.NUMBER, token.STRING:
		return true
	case token.OP:
		return t.Text == ")" || t.Text == "]"
	}
	return false
}

var keywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true,
	"await": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true,
	"try": true, "while": true, "with": true, "yield": true,
}

// isKeyword reports reserved words. True/False/None are constants, not
// keywords, and are classified by isConstName.
func isKeyword(name string) bool {
	return keywords[name]
}

func isConstName(name string) bool {
	switch name {
	case "True", "False", "None":
		return true
	}
	return false
}
