package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpCreate, "CREATE"},
		{OpModify, "MODIFY"},
		{OpDelete, "DELETE"},
		{OpRename, "RENAME"},
		{OpConfigChange, "CONFIG_CHANGE"},
		{Operation(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 500*time.Millisecond, opts.DebounceWindow)
	assert.Equal(t, 2*time.Second, opts.PollInterval)
	assert.Equal(t, 16, opts.EventBufferSize)
	assert.Equal(t, []string{".git", "node_modules"}, opts.IgnoreDirs)
	assert.NoError(t, opts.Validate())
}

func TestOptions_WithDefaults(t *testing.T) {
	// Given: options with only a custom window
	opts := Options{DebounceWindow: 50 * time.Millisecond}.WithDefaults()

	// Then: zero values are filled, the custom value is kept
	assert.Equal(t, 50*time.Millisecond, opts.DebounceWindow)
	assert.Equal(t, 2*time.Second, opts.PollInterval)
	assert.Equal(t, 16, opts.EventBufferSize)
	assert.Equal(t, []string{".git", "node_modules"}, opts.IgnoreDirs)
	assert.NotNil(t, opts.Logger)
}

func TestOptions_WithDefaults_KeepsEmptyIgnoreList(t *testing.T) {
	opts := Options{IgnoreDirs: []string{}}.WithDefaults()

	assert.Empty(t, opts.IgnoreDirs)
}

func TestOptions_Validate(t *testing.T) {
	assert.Error(t, Options{DebounceWindow: -time.Second}.Validate())
	assert.Error(t, Options{PollInterval: -time.Second}.Validate())
	assert.Error(t, Options{EventBufferSize: -1}.Validate())
	assert.NoError(t, Options{}.Validate())
}
