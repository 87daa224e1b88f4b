package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 9090

[database]
host = "db"
dbname = "bookings"
user = "svc"
password = "secret"

[playground_service]
url = "http://catalogue:8081"

[booking]
timezone = "Asia/Dhaka"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.RequestTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "playground-booking", cfg.Metrics.ServiceName)
	assert.Equal(t, "host=db port=5432 user=svc password=secret dbname=bookings sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Dhaka", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PLAYGROUND_SERVER_HTTP_PORT", "7070")
	t.Setenv("PLAYGROUND_DATABASE_PASSWORD", "from-env")
	t.Setenv("PLAYGROUND_EVENTS_ENABLED", "true")
	t.Setenv("PLAYGROUND_EVENTS_URL", "amqp://mq:5672/")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "amqp://mq:5672/", cfg.Events.URL)
	assert.Equal(t, "playground.bookings", cfg.Events.Exchange)
}

func TestLoad_MissingPlaygroundServiceURL(t *testing.T) {
	_, err := Load(writeConfig(t, "[database]\nhost = \"db\"\ndbname = \"x\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_UnknownTimezone(t *testing.T) {
	t.Setenv("PLAYGROUND_BOOKING_TIMEZONE", "Mars/Olympus")

	_, err := Load(writeConfig(t, testConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
