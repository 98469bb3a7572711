// Copyright © 2025 The pyvet authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o600))
}

func TestTestFileName(t *testing.T) {
	for _, name := range []string{"test_1.py", "test_42.py", "test_.py"} {
		assert.True(t, testFileName.MatchString(name), "expected %q to match", name)
	}
	for _, name := range []string{
		"test_1.pyc", "mytest_1.py", "test_a.py", "test1.py", "test_1_py",
	} {
		assert.False(t, testFileName.MatchString(name), "expected %q not to match", name)
	}
}

func TestResolveFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "test_2.py")
	writeFile(t, dir, "test_1.py")
	writeFile(t, dir, "other.py")
	writeFile(t, dir, "test_abc.py")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "test_3.py"), 0o700))

	files, err := resolveFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "test_1.py"),
		filepath.Join(dir, "test_2.py"),
	}, files)
}

func TestResolveFiles_FilePassesThrough(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "anything.py")
	path := filepath.Join(dir, "anything.py")

	files, err := resolveFiles([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestResolveFiles_Missing(t *testing.T) {
	_, err := resolveFiles([]string{"no/such/path"})
	require.Error(t, err)
}

func TestResolveFiles_MixedArgs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "test_1.py")
	writeFile(t, dir, "standalone.py")
	standalone := filepath.Join(dir, "standalone.py")

	files, err := resolveFiles([]string{standalone, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{standalone, filepath.Join(dir, "test_1.py")}, files)
}
