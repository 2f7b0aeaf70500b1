package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIDefaults(t *testing.T) {
	v := viper.New()
	setCLIDefaults(v)

	cfg := CLIFromViper(v)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "session.yaml", filepath.Base(cfg.SessionFile))
}

func TestLoadCLIEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faithctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://file:9000/\ntimeout: 5s\n"), 0o600))
	t.Setenv("FAITHCTL_SESSION_FILE", filepath.Join(dir, "s.yaml"))

	cfg, err := LoadCLI(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file:9000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(dir, "s.yaml"), cfg.SessionFile)

	t.Setenv("FAITHCTL_API_URL", "http://env:8080")
	cfg, err = LoadCLI(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:8080", cfg.APIURL)
}

func TestLoadCLIMissingFile(t *testing.T) {
	_, err := LoadCLI(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCLIValidate(t *testing.T) {
	v := viper.New()
	setCLIDefaults(v)
	v.Set("timeout", "0s")
	assert.ErrorContains(t, CLIFromViper(v).Validate(), "timeout")
}
