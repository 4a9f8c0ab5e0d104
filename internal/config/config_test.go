package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 9090

[database]
host = "db"
port = 5432
user = "rental"
password = "secret"
dbname = "rental"

[auth]
jwt_secret = "jwt-secret"

[pricing]
tax_rate = 0.18
advance_rate = 0.30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "INR", cfg.Pricing.Currency)
	assert.Equal(t, "IN", cfg.Pricing.PhoneLocale)
	assert.Equal(t, "https://api.razorpay.com/v1", cfg.Razorpay.BaseURL)
	assert.Equal(t, 24, cfg.Scheduler.ReminderWindowHours)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RENTAL_DATABASE_PASSWORD", "from-env")
	t.Setenv("RENTAL_RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RENTAL_PRICING_ADVANCE_RATE", "0.5")

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "rzp_test_key", cfg.Razorpay.KeyID)
	assert.InDelta(t, 0.5, cfg.Pricing.AdvanceRate, 1e-9)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("RENTAL_DATABASE_USER", "rental")
	t.Setenv("RENTAL_DATABASE_DBNAME", "rental")
	t.Setenv("RENTAL_AUTH_JWT_SECRET", "s")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	cfg.Auth.JWTSecret = ""
	cfg.Pricing.TaxRate = 1.5
	err = cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "jwt_secret")
	assert.Contains(t, err.Error(), "tax_rate")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", d.DSN())
}
