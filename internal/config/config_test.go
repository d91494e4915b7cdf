package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
user = "smc"
dbname = "smc_bookings"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 4, cfg.Scheduler.Workers)
	assert.Equal(t, 10*time.Second, cfg.Scheduler.LookupTimeout())
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.Interval())
	assert.Equal(t, "+27", cfg.SMS.CountryCode)
	assert.Equal(t, domain.DefaultAverageBookingValue, cfg.Health.AverageBookingValue)

	assert.Equal(t, domain.DefaultDecayModel(), cfg.Health.DecayModel())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("SMS_AUTH_TOKEN", "token-from-env")

	path := writeConfig(t, `
[database]
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "token-from-env", cfg.SMS.AuthToken)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.True(t, errors.Is(err, ErrReadConfig))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "thresholds not descending",
			content: `
[health]
excellent_threshold = 60
good_threshold = 80
`,
		},
		{
			name: "exponential base out of range",
			content: `
[health]
exponential_base = 1.5
`,
		},
		{
			name: "empty notify window",
			content: `
[health]
notify_window_start = 25
notify_window_end = 20
`,
		},
		{
			name: "negative workers",
			content: `
[scheduler]
workers = -2
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "n", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", c.DSN())
}
