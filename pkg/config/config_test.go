package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "restopos-api", cfg.App.Name)
	assert.Equal(t, "restopos", cfg.DB.DBName)
	assert.Equal(t, 0.16, cfg.POS.DefaultTaxRate)
	assert.Equal(t, 50.0, cfg.POS.CashDiffThreshold)
	assert.Empty(t, cfg.Redis.Addr, "sin REDIS_ADDR el caché queda desactivado")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("POS_DEFAULT_TAX_RATE", "0.08")
	t.Setenv("DB_NAME", "restopos_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.08, cfg.POS.DefaultTaxRate)
	assert.Equal(t, "restopos_test", cfg.DB.DBName)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{
		Host: "localhost", Port: 5432,
		User: "postgres", Password: "p@ss:word/1",
		DBName: "restopos", SSLMode: "disable",
	}
	dsn := c.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.NotContains(t, dsn, "p@ss:word/1", "la contraseña debe ir URL-encoded")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgresql://u:p@host:5432/db?sslmode=require", Host: "ignored"}
	assert.Equal(t, "postgresql://u:p@host:5432/db?sslmode=require", c.ConnectionString())
}

func TestHTTPAddr(t *testing.T) {
	c := HTTPConfig{Host: "0.0.0.0", Port: 8080}
	assert.Equal(t, "0.0.0.0:8080", c.Addr())
}
