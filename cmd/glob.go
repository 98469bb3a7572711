// Copyright © 2025 The pyvet authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// testFileName matches the files checked in directory mode: "test_"
// followed by digits, with the Python extension.
var testFileName = regexp.MustCompile(`^test_[0-9]*\.py$`)

// resolveFiles expands arguments into the list of files to check. A file
// argument passes through unchanged; a directory argument expands to its
// matching test files in lexicographic order.
func resolveFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := findTestFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
		out = append(out, files...)
	}
	return out, nil
}

func findTestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if testFileName.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}
