// Copyright © 2025 The pyvet authors

package pyparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/pyvet/pyast"
)

func parseSource(t *testing.T, src string) *pyast.Node {
	t.Helper()
	root, err := Parse("test.py", []byte(src))
	require.NoError(t, err)
	return root
}

// storeNames returns bound identifiers in traversal order.
func storeNames(root *pyast.Node) []string {
	var names []string
	for _, n := range pyast.Names(root) {
		if n.Ctx == pyast.CtxStore {
			names = append(names, n.Name)
		}
	}
	return names
}

// loadNames returns read identifiers in traversal order.
func loadNames(root *pyast.Node) []string {
	var names []string
	for _, n := range pyast.Names(root) {
		if n.Ctx == pyast.CtxLoad {
			names = append(names, n.Name)
		}
	}
	return names
}

func TestParse_FunctionDef(t *testing.T) {
	root := parseSource(t, "def greet(name, greeting='hi'):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	fn := fns[0]
	assert.Equal(t, "greet", fn.Name)
	assert.Equal(t, 1, fn.Line)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "name", fn.Params[0].Name)
	assert.Nil(t, fn.Params[0].Default)
	assert.Equal(t, "greeting", fn.Params[1].Name)
	require.NotNil(t, fn.Params[1].Default)
	assert.Equal(t, pyast.KindStr, fn.Params[1].Default.Kind)
}

func TestParse_AsyncDef(t *testing.T) {
	root := parseSource(t, "async def fetch(url):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	assert.Equal(t, "fetch", fns[0].Name)
	require.Len(t, fns[0].Params, 1)
	assert.Equal(t, "url", fns[0].Params[0].Name)
}

func TestParse_DefaultShapes(t *testing.T) {
	root := parseSource(t, "def f(a=[], b={}, c={1}, d=(), e=list(), g=None):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	params := fns[0].Params
	require.Len(t, params, 6)
	assert.Equal(t, pyast.KindList, params[0].Default.Kind)
	assert.Equal(t, pyast.KindDict, params[1].Default.Kind)
	assert.Equal(t, pyast.KindSet, params[2].Default.Kind)
	assert.Equal(t, pyast.KindTuple, params[3].Default.Kind)
	assert.Equal(t, pyast.KindCall, params[4].Default.Kind)
	assert.Equal(t, "list", params[4].Default.Name)
	assert.Equal(t, pyast.KindConst, params[5].Default.Kind)
}

func TestParse_StarParamsNotCollected(t *testing.T) {
	root := parseSource(t, "def f(a, *args, kw_only=1, **kwargs):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	require.Len(t, fns[0].Params, 1)
	assert.Equal(t, "a", fns[0].Params[0].Name)
}

func TestParse_PositionalOnlyMarker(t *testing.T) {
	root := parseSource(t, "def f(a, /, b):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	require.Len(t, fns[0].Params, 2)
	assert.Equal(t, "a", fns[0].Params[0].Name)
	assert.Equal(t, "b", fns[0].Params[1].Name)
}

func TestParse_AnnotatedParams(t *testing.T) {
	root := parseSource(t, "def f(a: int, b: MyType = 1):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	params := fns[0].Params
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, "b", params[1].Name)
	require.NotNil(t, params[1].Default)
	// annotation identifiers read
	assert.Contains(t, loadNames(root), "MyType")
	assert.Empty(t, storeNames(root))
}

func TestParse_MultilineHeader(t *testing.T) {
	root := parseSource(t, "def f(\n    first,\n    second=[],\n):\n    pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	require.Len(t, fns[0].Params, 2)
	assert.Equal(t, pyast.KindList, fns[0].Params[1].Default.Kind)
}

func TestParse_NestedDefs(t *testing.T) {
	root := parseSource(t, "def outer(a):\n    def inner(b=[]):\n        pass\n")
	fns := pyast.Functions(root)
	require.Len(t, fns, 2)
	assert.Equal(t, "outer", fns[0].Name)
	assert.Equal(t, "inner", fns[1].Name)
}

func TestParse_ClassDef(t *testing.T) {
	root := parseSource(t, "class Greeter(Base):\n    def greet(self):\n        pass\n")
	require.Len(t, root.Children, 2)
	assert.Equal(t, pyast.KindClassDef, root.Children[0].Kind)
	assert.Equal(t, "Greeter", root.Children[0].Name)
	// the base class reads
	assert.Contains(t, loadNames(root), "Base")
	fns := pyast.Functions(root)
	require.Len(t, fns, 1)
	assert.Equal(t, "greet", fns[0].Name)
}

func TestParse_AssignTargets(t *testing.T) {
	assert.Equal(t, []string{"x"}, storeNames(parseSource(t, "x = 1\n")))
	assert.Equal(t, []string{"a", "b"}, storeNames(parseSource(t, "a, b = 1, 2\n")))
	assert.Equal(t, []string{"a", "b"}, storeNames(parseSource(t, "a = b = 1\n")))
	assert.Equal(t, []string{"a", "b"}, storeNames(parseSource(t, "(a, b) = pair\n")))
	assert.Equal(t, []string{"x"}, storeNames(parseSource(t, "x += 1\n")))
	assert.Equal(t, []string{"x"}, storeNames(parseSource(t, "x: int = 1\n")))
	assert.Equal(t, []string{"x"}, storeNames(parseSource(t, "x: int\n")))
}

func TestParse_AttributeAndSubscriptTargetsRead(t *testing.T) {
	root := parseSource(t, "self.name = value\n")
	assert.Empty(t, storeNames(root))
	assert.Equal(t, []string{"self", "value"}, loadNames(root))

	root = parseSource(t, "table[key] = value\n")
	assert.Empty(t, storeNames(root))
	assert.Equal(t, []string{"table", "key", "value"}, loadNames(root))
}

func TestParse_ForAndWithTargets(t *testing.T) {
	root := parseSource(t, "for item in items:\n    pass\n")
	assert.Equal(t, []string{"item"}, storeNames(root))
	assert.Equal(t, []string{"items"}, loadNames(root))

	root = parseSource(t, "for k, v in d.items():\n    pass\n")
	assert.Equal(t, []string{"k", "v"}, storeNames(root))

	root = parseSource(t, "with open(path) as fh:\n    pass\n")
	assert.Equal(t, []string{"fh"}, storeNames(root))
	assert.Equal(t, []string{"open", "path"}, loadNames(root))
}

func TestParse_ComprehensionTarget(t *testing.T) {
	root := parseSource(t, "squares = [n * n for n in nums]\n")
	assert.Equal(t, []string{"squares", "n"}, storeNames(root))
	assert.Contains(t, loadNames(root), "nums")
}

func TestParse_WalrusTarget(t *testing.T) {
	root := parseSource(t, "if (chunk := read()):\n    pass\n")
	assert.Equal(t, []string{"chunk"}, storeNames(root))
	assert.Contains(t, loadNames(root), "read")
}

func TestParse_LambdaParamsSkipped(t *testing.T) {
	root := parseSource(t, "f = lambda x, y=1: 0\n")
	assert.Equal(t, []string{"f"}, storeNames(root))
	assert.Empty(t, loadNames(root))
}

func TestParse_KeywordArgumentsSkipped(t *testing.T) {
	root := parseSource(t, "connect(host=addr, port=80)\n")
	assert.Empty(t, storeNames(root))
	assert.Equal(t, []string{"connect", "addr"}, loadNames(root))
}

func TestParse_ConstantsSkipped(t *testing.T) {
	root := parseSource(t, "x = True or None\n")
	assert.Equal(t, []string{"x"}, storeNames(root))
	assert.Empty(t, loadNames(root))
}

func TestParse_ImportsIgnored(t *testing.T) {
	root := parseSource(t, "import os\nfrom sys import path\n")
	assert.Empty(t, pyast.Names(root))
}

func TestParse_SemicolonSeparatedStatements(t *testing.T) {
	root := parseSource(t, "a = 1; b = 2\n")
	assert.Equal(t, []string{"a", "b"}, storeNames(root))
}

func TestParse_ExceptAsSkipped(t *testing.T) {
	root := parseSource(t, "try:\n    pass\nexcept ValueError as err:\n    pass\n")
	assert.Empty(t, storeNames(root))
	assert.Equal(t, []string{"ValueError"}, loadNames(root))
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{
		"x = (1\n",
		"s = 'unterminated\n",
		"def f(:\n",
		"def (a):\n",
		"class :\n",
	} {
		_, err := Parse("test.py", []byte(src))
		assert.Error(t, err, "source %q", src)
	}
}

func TestParse_ErrorHasLocation(t *testing.T) {
	_, err := Parse("bad.py", []byte("x = 1\ns = 'oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.py:2")
}

func TestParse_EmptySource(t *testing.T) {
	root := parseSource(t, "")
	assert.Equal(t, pyast.KindModule, root.Kind)
	assert.Empty(t, root.Children)
}
