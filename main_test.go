package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileRefusesToClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, saveFile(path, false, []byte("first\n")))

	err := saveFile(path, false, []byte("second\n"))
	assert.ErrorIs(t, err, os.ErrExist)

	// The original contents survive a refused write.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))
}

func TestSaveFileOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.md")
	require.NoError(t, saveFile(path, false, []byte("first\n")))
	require.NoError(t, saveFile(path, true, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}
