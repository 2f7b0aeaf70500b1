package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/faithmatch-backend/internal/logging"
)

func TestNewJSONWritesLevelFiltered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := logging.New(logging.Options{Level: "warn", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "dropped")
	assert.Contains(t, string(content), `"msg":"kept"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud"})
	require.Error(t, err)
}

func TestNewEmptyLevelDefaultsToInfo(t *testing.T) {
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{filepath.Join(t.TempDir(), "c.log")}})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
}
