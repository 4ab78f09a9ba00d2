package config

import (
	"os"
	"path/filepath"
	"testing"

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
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	n, err := getEnvInt("TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	t.Setenv("TEST_INT", "many")
	_, err = getEnvInt("TEST_INT", 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_INT")
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "STORAGE_DRIVER", "STORAGE_FILE", "DB_HOST", "DB_PORT",
		"DB_NAME", "DB_USER", "DB_PASSWORD", "MIGRATIONS_PATH", "SPEECH_BACKEND",
		"ESPEAK_BINARY", "SPEECH_WPM", "SOURCE_LANG", "TARGET_LANG", "SOURCE_VOICE",
		"TARGET_VOICE", "SPEECH_RATE", "RELAY_URL", "RELAY_TIMEOUT_SEC", "PORT",
		"JWT_SECRET", "CORS_ORIGINS", "BOT_TOKEN", "DRILL_REPEAT", "LOG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSqlite3, cfg.Storage.Driver)
	assert.Equal(t, "wordreader.db", cfg.Storage.File)
	assert.Equal(t, "es-ES", cfg.Speech.SourceLang)
	assert.Equal(t, "en-GB", cfg.Speech.TargetLang)
	assert.Equal(t, 1.0, cfg.Speech.Rate)
	assert.Equal(t, "https://formspree.io/f/YOUR_FORM_ID", cfg.Relay.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1, cfg.Drill.Repeat)
	assert.Error(t, cfg.RequireBotToken())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SPEECH_RATE", "1.5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("BOT_TOKEN", "test_token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 1.5, cfg.Speech.Rate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.NoError(t, cfg.RequireBotToken())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "wordreader.toml")
	content := `
[storage]
driver = "memory"

[speech]
source_lang = "fr-FR"
rate = 2.0

[drill]
repeat = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DRILL_REPEAT", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "fr-FR", cfg.Speech.SourceLang)
	assert.Equal(t, "en-GB", cfg.Speech.TargetLang)
	assert.Equal(t, 2.0, cfg.Speech.Rate)
	// environment wins over the file
	assert.Equal(t, 4, cfg.Drill.Repeat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown driver",
			env:     map[string]string{"STORAGE_DRIVER": "mongo"},
			wantErr: "STORAGE_DRIVER",
		},
		{
			name:    "postgres without password",
			env:     map[string]string{"STORAGE_DRIVER": "postgres"},
			wantErr: "DB_PASSWORD",
		},
		{
			name:    "rate out of range",
			env:     map[string]string{"SPEECH_RATE": "11"},
			wantErr: "SPEECH_RATE",
		},
		{
			name:    "rate not a number",
			env:     map[string]string{"SPEECH_RATE": "fast"},
			wantErr: "SPEECH_RATE",
		},
		{
			name:    "repeat below one",
			env:     map[string]string{"DRILL_REPEAT": "0"},
			wantErr: "DRILL_REPEAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
