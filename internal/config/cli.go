package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CLIConfig configures faithctl.
type CLIConfig struct {
	APIURL      string
	SessionFile string
	DeviceInfo  string
	LogLevel    string
	Timeout     time.Duration
}

// LoadCLI reads FAITHCTL_* environment variables and, when path is not
// empty, a YAML config file with lower-case keys (api_url, session_file,
// device_info, log_level, timeout).
func LoadCLI(path string) (*CLIConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("FAITHCTL")
	v.AutomaticEnv()
	setCLIDefaults(v)

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := CLIFromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setCLIDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("session_file", defaultSessionFile())
	v.SetDefault("device_info", "faithctl")
	v.SetDefault("log_level", "warn")
	v.SetDefault("timeout", 30*time.Second)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "faithctl", "session.yaml")
}

func CLIFromViper(v *viper.Viper) *CLIConfig {
	return &CLIConfig{
		APIURL:      strings.TrimRight(v.GetString("api_url"), "/"),
		SessionFile: v.GetString("session_file"),
		DeviceInfo:  v.GetString("device_info"),
		LogLevel:    v.GetString("log_level"),
		Timeout:     v.GetDuration("timeout"),
	}
}

func (c *CLIConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API URL is required")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("session file path is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
