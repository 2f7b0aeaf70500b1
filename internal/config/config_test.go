package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_HOST", "localhost")
	v.Set("DB_USER", "faith")
	v.Set("DB_NAME", "faithmatch")
	v.Set("JWT_ACCESS_SECRET", "0123456789abcdef0123456789abcdef")
	v.Set("GOOGLE_CLIENT_ID", "client.apps.googleusercontent.com")
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(validViper())

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 30*time.Second, cfg.Discovery.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Swipe.LockTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "host=localhost port=5432 user=faith password= dbname=faithmatch sslmode=disable", cfg.Database.GetDSN())
}

func TestStoragePublicURLTrimmed(t *testing.T) {
	v := validViper()
	v.Set("STORAGE_PUBLIC_URL", "https://cdn.example.com/media/")

	cfg := FromViper(v)
	assert.Equal(t, "https://cdn.example.com/media", cfg.Storage.PublicBaseURL)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *viper.Viper)
		want   string
	}{
		{"missing db host", func(v *viper.Viper) { v.Set("DB_HOST", "") }, "database host"},
		{"short jwt secret", func(v *viper.Viper) { v.Set("JWT_ACCESS_SECRET", "short") }, "at least 32"},
		{"missing google client", func(v *viper.Viper) { v.Set("GOOGLE_CLIENT_ID", "") }, "Google client ID"},
		{"unknown storage", func(v *viper.Viper) { v.Set("STORAGE_TYPE", "s3") }, "unsupported storage"},
		{"zero lock ttl", func(v *viper.Viper) { v.Set("SWIPE_LOCK_TTL", "0s") }, "lock TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validViper()
			tt.mutate(v)
			err := FromViper(v).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRedisAddr(t *testing.T) {
	v := validViper()
	v.Set("REDIS_HOST", "cache")

	cfg := FromViper(v)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.GetAddr())
}
