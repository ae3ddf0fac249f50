package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoColorStyles_RenderPlain(t *testing.T) {
	// When: getting no color styles
	styles := NoColorStyles()

	// Then: rendering returns the text unchanged
	assert.Equal(t, "OK    ", styles.OK.Render("OK    "))
	assert.Equal(t, "WARN  ", styles.Warning.Render("WARN  "))
	assert.Equal(t, "ERROR ", styles.Error.Render("ERROR "))
	assert.Equal(t, "header", styles.Header.Render("header"))
	assert.Equal(t, "dim", styles.Dim.Render("dim"))
}

func TestGetStyles_WithNoColor(t *testing.T) {
	// When: getting styles with noColor=true
	styles := GetStyles(true)

	// Then: returns no-color styles (plain rendering)
	text := styles.OK.Render("test")
	assert.Equal(t, "test", text)
}

func TestGetStyles_WithColor(t *testing.T) {
	// When: getting styles with noColor=false
	styles := GetStyles(false)

	// Then: returns colored styles
	// Note: exact ANSI codes depend on terminal, but text should be present
	text := styles.Error.Render("test")
	assert.Contains(t, text, "test")
}
