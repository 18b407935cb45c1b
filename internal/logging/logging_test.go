package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoteldesk.log")

	logger, err := New(false, path)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewDevelopment(t *testing.T) {
	logger, err := New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
