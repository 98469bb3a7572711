// Copyright © 2025 The pyvet authors

// Package pyast defines the syntax tree produced by parsing Python source.
//
// The tree is a small tagged variant rather than a faithful model of the
// full Python grammar: it carries exactly the shapes the checker consumes
// (function definitions with parameters and default expressions, and
// identifier occurrences tagged with a load/store role).
package pyast

// Kind discriminates Node variants.
type Kind uint

const (
	KindInvalid Kind = iota
	KindModule
	KindFunctionDef
	KindClassDef
	KindAssign
	KindFor
	KindWith
	KindExprStmt
	KindName
	KindCall
	KindList
	KindTuple
	KindSet
	KindDict
	KindNum
	KindStr
	KindConst

	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		KindInvalid:     "invalid",
		KindModule:      "module",
		KindFunctionDef: "function-def",
		KindClassDef:    "class-def",
		KindAssign:      "assign",
		KindFor:         "for",
		KindWith:        "with",
		KindExprStmt:    "expr-stmt",
		KindName:        "name",
		KindCall:        "call",
		KindList:        "list",
		KindTuple:       "tuple",
		KindSet:         "set",
		KindDict:        "dict",
		KindNum:         "num",
		KindStr:         "str",
		KindConst:       "const",
	}
	if k >= numKinds {
		return kindStrings[KindInvalid]
	}
	return kindStrings[k]
}

// Ctx is the syntactic role of an identifier occurrence.
type Ctx uint

const (
	// CtxLoad marks an identifier that is read.
	CtxLoad Ctx = iota
	// CtxStore marks an identifier that is bound (assignment target, for
	// target, with-as target, comprehension target, walrus target).
	CtxStore
)

func (c Ctx) String() string {
	if c == CtxStore {
		return "store"
	}
	return "load"
}

// Param is one declared parameter of a function definition.
type Param struct {
	// Name is the parameter identifier.
	Name string

	// Default is the parsed default expression, nil when the parameter
	// has none.
	Default *Node

	// Line is the 1-based source line the parameter appears on.
	Line int
}

// Node is a single syntax tree node.
type Node struct {
	Kind Kind

	// Name holds the identifier for KindName, the declared name for
	// KindFunctionDef and KindClassDef, and the callee for KindCall.
	Name string

	// Value holds raw literal text for KindNum, KindStr, and KindConst.
	Value string

	// Ctx is meaningful only for KindName.
	Ctx Ctx

	// Params is meaningful only for KindFunctionDef.
	Params []Param

	Children []*Node

	// Line is the 1-based source line.
	Line int
}

// Walk calls fn for every node in the tree, depth-first, including the
// default expressions of function parameters.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for i := range n.Params {
		Walk(n.Params[i].Default, fn)
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Functions returns every function definition node in the tree in
// traversal order.
func Functions(root *Node) []*Node {
	var defs []*Node
	Walk(root, func(n *Node) {
		if n.Kind == KindFunctionDef {
			defs = append(defs, n)
		}
	})
	return defs
}

// Names returns every identifier occurrence in the tree in traversal order.
func Names(root *Node) []*Node {
	var names []*Node
	Walk(root, func(n *Node) {
		if n.Kind == KindName {
			names = append(names, n)
		}
	})
	return names
}
