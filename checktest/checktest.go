// Copyright © 2025 The pyvet authors

// Package checktest provides a golden-file test harness for the checker.
// Each fixture is a Python source file with a sibling ".golden" file
// holding the expected diagnostic output, one diagnostic per line.
// Running the tests with -update rewrites the golden files from current
// checker output.
package checktest

import (
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/luthersystems/pyvet/check"
)

var update = flag.Bool("update", false, "rewrite golden files from checker output")

// Runner runs golden-file tests against checker fixtures.
type Runner struct {
	// Codes selects the rules to run. When empty every rule runs.
	Codes []check.Code
}

// RunDir runs one subtest per Python fixture found in dir.
func (r *Runner) RunDir(t *testing.T, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unable to read fixture directory %v: %v", dir, err)
	}
	ran := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".py") {
			continue
		}
		ran++
		t.Run(name, func(t *testing.T) {
			r.RunFile(t, filepath.Join(dir, name))
		})
	}
	if ran == 0 {
		t.Fatalf("no fixtures in %v", dir)
	}
}

// RunFile checks one fixture against its golden file. A parse or read
// failure becomes the expected output itself, prefixed "error: ", so
// fixtures can pin failure modes too.
func (r *Runner) RunFile(t *testing.T, path string) {
	checker := check.New(r.Codes...)
	got := format(checker.CheckFile(path))

	golden := path + ".golden"
	if *update {
		if err := os.WriteFile(golden, []byte(got), 0o644); err != nil { //nolint:gosec // test fixture
			t.Fatalf("unable to update golden file %v: %v", golden, err)
		}
		return
	}
	want, err := os.ReadFile(golden) //nolint:gosec // test fixture
	if err != nil {
		t.Fatalf("unable to read golden file %v: %v (run with -update to create)", golden, err)
	}
	if got != string(want) {
		t.Errorf("output mismatch for %v\n--- want ---\n%s--- got ---\n%s", path, want, got)
	}
}

// format renders a checker result in golden-file form. Diagnostics print
// in checker output order, which is already deterministic.
func format(diags []check.Diagnostic, err error) string {
	if err != nil {
		return "error: " + filepath.ToSlash(err.Error()) + "\n"
	}
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(filepath.ToSlash(d.String()))
		b.WriteByte('\n')
	}
	return b.String()
}

// Fixtures returns the Python fixture paths in dir sorted by name. It is
// a convenience for tests that iterate fixtures themselves.
func Fixtures(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unable to read fixture directory %v: %v", dir, err)
	}
	var out []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".py") {
			out = append(out, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(out)
	return out
}
