package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTTY_Buffer(t *testing.T) {
	// Given: a bytes buffer
	buf := &bytes.Buffer{}

	// Then: it is not a TTY
	assert.False(t, IsTTY(buf))
}

func TestIsTTY_Nil(t *testing.T) {
	assert.False(t, IsTTY(nil))
}

func TestIsTTY_RegularFile(t *testing.T) {
	// Given: a regular file
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// Then: it is not a TTY
	assert.False(t, IsTTY(f))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.True(t, DetectNoColor())

	require.NoError(t, os.Unsetenv("NO_COLOR"))
	assert.False(t, DetectNoColor())
}

func TestUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	require.NoError(t, os.Unsetenv("NO_COLOR"))

	// Non-terminal output never gets colour
	assert.False(t, UseColor(&bytes.Buffer{}, false))

	// Explicitly disabled
	assert.False(t, UseColor(os.Stdout, true))

	// NO_COLOR set
	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(os.Stdout, false))
}
