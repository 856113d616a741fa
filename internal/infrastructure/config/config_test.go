package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"INV_APP_NAME":          os.Getenv("INV_APP_NAME"),
		"INV_APP_ENV":           os.Getenv("INV_APP_ENV"),
		"INV_APP_PORT":          os.Getenv("INV_APP_PORT"),
		"INV_DATABASE_HOST":     os.Getenv("INV_DATABASE_HOST"),
		"INV_DATABASE_PORT":     os.Getenv("INV_DATABASE_PORT"),
		"INV_DATABASE_USER":     os.Getenv("INV_DATABASE_USER"),
		"INV_DATABASE_PASSWORD": os.Getenv("INV_DATABASE_PASSWORD"),
		"INV_DATABASE_DBNAME":   os.Getenv("INV_DATABASE_DBNAME"),
		"INV_DATABASE_SSLMODE":  os.Getenv("INV_DATABASE_SSLMODE"),
		"INV_QUEUE_DRIVER":      os.Getenv("INV_QUEUE_DRIVER"),
		"INV_QUEUE_WORKERS":     os.Getenv("INV_QUEUE_WORKERS"),
		"INV_JWT_SECRET":        os.Getenv("INV_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "inventory-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "inventory", cfg.Database.DBName)
		assert.Equal(t, "redis", cfg.Queue.Driver)
		assert.Equal(t, "inventory:tasks", cfg.Queue.Name)
		assert.Equal(t, 4, cfg.Queue.Workers)
	})

	t.Run("loads values from environment variables with INV prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("INV_APP_NAME", "test-app")
		os.Setenv("INV_APP_PORT", "9000")
		os.Setenv("INV_DATABASE_HOST", "testdb.local")
		os.Setenv("INV_DATABASE_PORT", "5433")
		os.Setenv("INV_QUEUE_DRIVER", "memory")
		os.Setenv("INV_QUEUE_WORKERS", "8")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "memory", cfg.Queue.Driver)
		assert.Equal(t, 8, cfg.Queue.Workers)
	})

	t.Run("rejects unknown queue driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("INV_QUEUE_DRIVER", "rabbitmq")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("INV_APP_ENV", "production")
		os.Setenv("INV_DATABASE_PASSWORD", "secret")
		os.Setenv("INV_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("INV_APP_ENV", "production")
		os.Setenv("INV_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("INV_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "inventory",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
