package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsQuietWithNoJITAndSearchesWorkingDirectory(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.JITEnable)
	assert.False(t, cfg.ValidateTypes)
	assert.False(t, cfg.ProfileTypeInfer)
	assert.Equal(t, []string{"."}, cfg.SearchPath)
}
