// Copyright © 2025 The pyvet authors

/*
Package exprparser parses the default-argument expression sub-language.

	expr   := <call> | <term> | <list> | <dict> | <set> | <tuple>
	call   := <name> '(' <callitem> (',' <callitem>)* ')'
	list   := '[' <expr> (',' <expr>)* ']'
	dict   := '{' <pair> (',' <pair>)* '}'
	set    := '{' <expr> (',' <expr>)* '}'
	tuple  := '(' <expr> (',' <expr>)* ')'
	pair   := <expr> ':' <expr>
	term   := <string> | <number> | <name>

Only the shapes the mutable-default rule distinguishes need to parse
exactly; anything outside the grammar is rejected and the caller falls
back to an opaque constant node.
*/
package exprparser

import (
	"fmt"

	parsec "github.com/prataprc/goparsec"

	"github.com/luthersystems/pyvet/pyast"
)

// Parse parses a single default-argument expression. The returned node has
// no line information; the caller attributes it to the enclosing
// definition.
func Parse(text []byte) (*pyast.Node, error) {
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	if root == nil {
		return nil, fmt.Errorf("unsupported expression: %s", clip(text))
	}
	node, ok := root.(*pyast.Node)
	if !ok {
		return nil, fmt.Errorf("unsupported expression: %s", clip(text))
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, fmt.Errorf("unexpected text after expression: %s", clip(text))
	}
	return node, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("[", "OPENB")
	closeB := parsec.Atom("]", "CLOSEB")
	openC := parsec.Atom("{", "OPENC")
	closeC := parsec.Atom("}", "CLOSEC")
	comma := parsec.Atom(",", "COMMA")
	colon := parsec.Atom(":", "COLON")
	eq := parsec.Atom("=", "EQ")
	star := parsec.Token(`\*{1,2}`, "STAR")

	str1 := parsec.Token(`[rRbBuUfF]{0,2}'(?:[^'\\\n]|\\.)*'`, "STRING")
	str2 := parsec.Token(`[rRbBuUfF]{0,2}"(?:[^"\\\n]|\\.)*"`, "STRING")
	number := parsec.Token(`[+-]?[0-9][0-9a-fA-FxXoObB_]*(?:\.[0-9_]*)?(?:[eE][+-]?[0-9]+)?[jJ]?`, "NUMBER")
	name := parsec.Token(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`, "NAME")

	term := parsec.OrdChoice(astTerm, str1, str2, number, name)

	var expr parsec.Parser // forward declaration allows for recursive parsing
	items := parsec.Kleene(nil, &expr, comma)
	pair := parsec.And(astPair, &expr, colon, &expr)
	pairs := parsec.Kleene(nil, pair, comma)
	kwarg := parsec.And(astLast, name, eq, &expr)
	starred := parsec.And(astLast, star, &expr)
	callItem := parsec.OrdChoice(astFirst, kwarg, starred, &expr)
	callItems := parsec.Kleene(nil, callItem, comma)

	call := parsec.And(astCall, name, openP, callItems, closeP)
	list := parsec.And(astCollection(pyast.KindList), openB, items, closeB)
	dict := parsec.And(astCollection(pyast.KindDict), openC, pairs, closeC)
	set := parsec.And(astCollection(pyast.KindSet), openC, items, closeC)
	tuple := parsec.And(astCollection(pyast.KindTuple), openP, items, closeP)

	expr = parsec.OrdChoice(astFirst, call, term, list, dict, set, tuple)
	return expr
}

func astFirst(ns []parsec.ParsecNode) parsec.ParsecNode {
	ns = flatten(ns)
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

func astLast(ns []parsec.ParsecNode) parsec.ParsecNode {
	ns = flatten(ns)
	if len(ns) == 0 {
		return nil
	}
	return ns[len(ns)-1]
}

func astTerm(ns []parsec.ParsecNode) parsec.ParsecNode {
	ns = flatten(ns)
	if len(ns) == 0 {
		return nil
	}
	term, ok := ns[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	switch term.GetName() {
	case "NUMBER":
		return &pyast.Node{Kind: pyast.KindNum, Value: term.GetValue()}
	case "STRING":
		return &pyast.Node{Kind: pyast.KindStr, Value: term.GetValue()}
	case "NAME":
		switch term.GetValue() {
		case "True", "False", "None":
			return &pyast.Node{Kind: pyast.KindConst, Value: term.GetValue()}
		}
		return &pyast.Node{Kind: pyast.KindName, Name: term.GetValue(), Ctx: pyast.CtxLoad}
	}
	return nil
}

// astPair folds a key:value pair into a two-element tuple node.
func astPair(ns []parsec.ParsecNode) parsec.ParsecNode {
	var kv []*pyast.Node
	for _, n := range flatten(ns) {
		if node, ok := n.(*pyast.Node); ok {
			kv = append(kv, node)
		}
	}
	if len(kv) != 2 {
		return nil
	}
	return &pyast.Node{Kind: pyast.KindTuple, Children: kv}
}

func astCall(ns []parsec.ParsecNode) parsec.ParsecNode {
	ns = flatten(ns)
	if len(ns) == 0 {
		return nil
	}
	callee, ok := ns[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	node := &pyast.Node{Kind: pyast.KindCall, Name: callee.GetValue()}
	for _, n := range ns[1:] {
		if child, ok := n.(*pyast.Node); ok {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func astCollection(kind pyast.Kind) parsec.Nodify {
	return func(ns []parsec.ParsecNode) parsec.ParsecNode {
		node := &pyast.Node{Kind: kind}
		for _, n := range flatten(ns) {
			if child, ok := n.(*pyast.Node); ok {
				node.Children = append(node.Children, child)
			}
		}
		return node
	}
}

// flatten expands nested []ParsecNode values produced by Kleene and
// OrdChoice combinators into a single level.
func flatten(ns []parsec.ParsecNode) []parsec.ParsecNode {
	var out []parsec.ParsecNode
	for _, n := range ns {
		switch n := n.(type) {
		case []parsec.ParsecNode:
			out = append(out, flatten(n)...)
		case parsec.MaybeNone:
		default:
			out = append(out, n)
		}
	}
	return out
}

func clip(text []byte) string {
	if len(text) > 32 {
		return string(text[:32]) + "..."
	}
	return string(text)
}
