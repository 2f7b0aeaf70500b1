package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Google       GoogleConfig
	Storage      StorageConfig
	Logging      LoggingConfig
	Discovery    DiscoveryConfig
	Swipe        SwipeConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	SessionTTLHours int
}

type GoogleConfig struct {
	ClientID string
}

type StorageConfig struct {
	Type          string
	Path          string
	PublicBaseURL string
	MaxPhotoBytes int64
}

type LoggingConfig struct {
	Level  string
	Format string
}

type DiscoveryConfig struct {
	Limit    int
	CacheTTL time.Duration
}

type SwipeConfig struct {
	LockTTL time.Duration
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := FromViper(v)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("JWT_SESSION_TTL_HOURS", 24*7)
	v.SetDefault("STORAGE_TYPE", "local")
	v.SetDefault("STORAGE_PATH", "./uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "http://localhost:8080/media")
	v.SetDefault("STORAGE_MAX_PHOTO_BYTES", 10<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DISCOVERY_LIMIT", 50)
	v.SetDefault("DISCOVERY_CACHE_TTL", 30*time.Second)
	v.SetDefault("SWIPE_LOCK_TTL", 10*time.Second)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    v.GetString("JWT_ACCESS_SECRET"),
			SessionTTLHours: v.GetInt("JWT_SESSION_TTL_HOURS"),
		},
		Google: GoogleConfig{
			ClientID: v.GetString("GOOGLE_CLIENT_ID"),
		},
		Storage: StorageConfig{
			Type:          v.GetString("STORAGE_TYPE"),
			Path:          v.GetString("STORAGE_PATH"),
			PublicBaseURL: strings.TrimRight(v.GetString("STORAGE_PUBLIC_URL"), "/"),
			MaxPhotoBytes: v.GetInt64("STORAGE_MAX_PHOTO_BYTES"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Discovery: DiscoveryConfig{
			Limit:    v.GetInt("DISCOVERY_LIMIT"),
			CacheTTL: v.GetDuration("DISCOVERY_CACHE_TTL"),
		},
		Swipe: SwipeConfig{
			LockTTL: v.GetDuration("SWIPE_LOCK_TTL"),
		},
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.JWT.SessionTTLHours <= 0 {
		return fmt.Errorf("JWT session TTL must be positive")
	}
	if c.Google.ClientID == "" {
		return fmt.Errorf("Google client ID is required")
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.Storage.MaxPhotoBytes <= 0 {
		return fmt.Errorf("storage max photo bytes must be positive")
	}
	if c.Swipe.LockTTL <= 0 {
		return fmt.Errorf("swipe lock TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs with production settings.
func (c *ServerConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Enabled reports whether a Redis host is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
