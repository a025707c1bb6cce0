package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TARJETA_TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TARJETA_TEST_KEY_NOT_SET",
			defaultValue: "default",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}
			assert.Equal(t, tt.expected, getEnv(tt.key, tt.defaultValue))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2s")
	assert.Equal(t, 2*time.Second, getEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "notaduration")
	assert.Equal(t, 3*time.Second, getEnvDuration("TEST_DURATION", 3*time.Second))

	assert.Equal(t, 4*time.Second, getEnvDuration("TEST_DURATION_UNSET", 4*time.Second))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("TEST_INT", 7))

	t.Setenv("TEST_INT", "notanint")
	assert.Equal(t, 8, getEnvInt("TEST_INT", 8))

	assert.Equal(t, 9, getEnvInt("TEST_INT_UNSET", 9))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "FLIP_DELAY", "FLIP_POLL_INTERVAL", "DATA_PRIMARY", "DATA_SEED", "BOT_OWNER_ID", "GIN_MODE", "ENV"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverCSV, cfg.StoreDriver)
	assert.Equal(t, "data/to_learn_spanish.csv", cfg.PrimaryPath)
	assert.Equal(t, "data/spanish_words.csv", cfg.SeedPath)
	assert.Equal(t, 3*time.Second, cfg.FlipDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.FlipPollInterval)
	assert.Equal(t, "development", cfg.Env())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "postgres without password", env: map[string]string{"STORE_DRIVER": "postgres", "DB_PASSWORD": ""}},
		{name: "negative flip delay", env: map[string]string{"STORE_DRIVER": "csv", "FLIP_DELAY": "-1s"}},
		{name: "bad owner id", env: map[string]string{"STORE_DRIVER": "csv", "BOT_OWNER_ID": "me"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("BOT_OWNER_ID", "12345")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "production", cfg.Env())
	assert.Equal(t, int64(12345), cfg.BotOwnerID)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
			SSLMode:  "disable",
		},
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, cfg.DSN())
}
