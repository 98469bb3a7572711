// Copyright © 2025 The pyvet authors

package checktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGolden(t *testing.T) {
	r := &Runner{}
	r.RunDir(t, "testdata")
}

func TestFixtures(t *testing.T) {
	paths := Fixtures(t, "testdata")
	assert.Contains(t, paths, "testdata/example_1.py")
	assert.Contains(t, paths, "testdata/example_2.py")
	assert.Contains(t, paths, "testdata/broken_1.py")
}
