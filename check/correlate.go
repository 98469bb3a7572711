// Copyright © 2025 The pyvet authors

package check

import (
	"regexp"
	"strings"

	"github.com/luthersystems/pyvet/pyast"
)

// snakeCasePrefix is the naming test shared by the argument and variable
// rules: up to two leading underscores, lowercase letter groups separated
// by single underscores, up to two trailing underscores. The match is a
// prefix match, so a name passes as soon as it starts with an optionally
// underscored lowercase letter — "bAd" passes, "Bad" does not.
var snakeCasePrefix = regexp.MustCompile(`^(_{0,2})?[a-z]+(_[a-z]*)*(_{0,2})?`)

// candidateSet is an ordered working list of names still awaiting a line
// match for one tree rule. Each name is consumed the first time it
// occurs, so a declaration produces at most one diagnostic per file.
type candidateSet struct {
	names []string
}

func newCandidateSet(names []string) *candidateSet {
	return &candidateSet{names: names}
}

// consume removes and returns the first candidate occurring as a
// substring of line. At most one candidate is consumed per call; a second
// candidate on the same line stays in the set until a later line contains
// it.
func (s *candidateSet) consume(line string) (string, bool) {
	for i, name := range s.names {
		if strings.Contains(line, name) {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return name, true
		}
	}
	return "", false
}

// argumentNames derives the S010 candidate set: declared parameter names
// failing the snake_case test, in tree-traversal order, deduplicated.
func argumentNames(root *pyast.Node) []string {
	var names []string
	seen := make(map[string]bool)
	for _, fn := range pyast.Functions(root) {
		for _, param := range fn.Params {
			if snakeCasePrefix.MatchString(param.Name) || seen[param.Name] {
				continue
			}
			seen[param.Name] = true
			names = append(names, param.Name)
		}
	}
	return names
}

// variableNames derives the S011 candidate set: identifiers bound in a
// store role failing the snake_case test, in tree-traversal order,
// deduplicated.
func variableNames(root *pyast.Node) []string {
	var names []string
	seen := make(map[string]bool)
	for _, n := range pyast.Names(root) {
		if n.Ctx != pyast.CtxStore {
			continue
		}
		if snakeCasePrefix.MatchString(n.Name) || seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		names = append(names, n.Name)
	}
	return names
}

// mutableDefaultFunctions derives the S012 candidate set: names of
// functions declaring at least one mutable default argument, in
// tree-traversal order, deduplicated.
func mutableDefaultFunctions(root *pyast.Node) []string {
	var names []string
	seen := make(map[string]bool)
	for _, fn := range pyast.Functions(root) {
		for _, param := range fn.Params {
			if param.Default == nil || !isMutableExpr(param.Default) {
				continue
			}
			if !seen[fn.Name] {
				seen[fn.Name] = true
				names = append(names, fn.Name)
			}
			break
		}
	}
	return names
}

// isMutableExpr reports whether a default expression constructs a mutable
// container: a list, set, or dict display, or a call to one of the bare
// constructor names.
func isMutableExpr(n *pyast.Node) bool {
	switch n.Kind {
	case pyast.KindList, pyast.KindSet, pyast.KindDict:
		return true
	case pyast.KindCall:
		switch n.Name {
		case "list", "set", "dict":
			return true
		}
	}
	return false
}
