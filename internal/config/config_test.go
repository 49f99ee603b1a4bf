package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "app")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "app.db", cfg.DB.DSN())
	require.Equal(t, "", cfg.RedisAddr())
	require.Equal(t, 10, cfg.DB.MaxOpenConns)
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Driver: "mysql", User: "u", Password: "p", Host: "h", Port: "3306", Name: "n"}
	require.Equal(t, "u:p@tcp(h:3306)/n?charset=utf8mb4&parseTime=True&loc=UTC", c.DSN())

	c.URL = "postgres://override"
	require.Equal(t, "postgres://override", c.DSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := Config{Redis: RedisConfig{Host: "redis", Port: "6380"}}
	require.Equal(t, "redis:6380", cfg.RedisAddr())
}
