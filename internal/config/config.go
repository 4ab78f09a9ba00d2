package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverSqlite3  = "sqlite3"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Speech  SpeechConfig  `toml:"speech"`
	Relay   RelayConfig   `toml:"relay"`
	Server  ServerConfig  `toml:"server"`
	Bot     BotConfig     `toml:"bot"`
	Drill   DrillConfig   `toml:"drill"`
}

// StorageConfig selects and configures the key-value storage
type StorageConfig struct {
	Driver string `toml:"driver"`
	// Path of the database file when driver is sqlite3
	File           string `toml:"file"`
	Host           string `toml:"host"`
	Port           string `toml:"port"`
	Name           string `toml:"name"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	MigrationsPath string `toml:"migrations_path"`
}

// SpeechConfig holds speech backend settings
type SpeechConfig struct {
	Backend        string  `toml:"backend"`
	BinaryPath     string  `toml:"binary_path"`
	WordsPerMinute int     `toml:"words_per_minute"`
	SourceLang     string  `toml:"source_lang"`
	TargetLang     string  `toml:"target_lang"`
	SourceVoice    string  `toml:"source_voice"`
	TargetVoice    string  `toml:"target_voice"`
	Rate           float64 `toml:"rate"`
}

// RelayConfig points at the remote form relay receiving session records
type RelayConfig struct {
	URL        string `toml:"url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port        int      `toml:"port"`
	JWTSecret   string   `toml:"jwt_secret"`
	CORSOrigins []string `toml:"cors_origins"`
}

// BotConfig holds Telegram settings
type BotConfig struct {
	Token string `toml:"token"`
}

// DrillConfig holds playback defaults and terminal UI settings
type DrillConfig struct {
	Repeat  int    `toml:"repeat"`
	LogFile string `toml:"log_file"`
}

func defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:         DriverSqlite3,
			File:           "wordreader.db",
			Host:           "localhost",
			Port:           "5432",
			Name:           "wordreader",
			User:           "wordreader",
			MigrationsPath: "file://migrations",
		},
		Speech: SpeechConfig{
			Backend:        "espeak",
			BinaryPath:     "espeak-ng",
			WordsPerMinute: 175,
			SourceLang:     "es-ES",
			TargetLang:     "en-GB",
			Rate:           1,
		},
		Relay: RelayConfig{
			URL:        "https://formspree.io/f/YOUR_FORM_ID",
			TimeoutSec: 10,
		},
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Drill: DrillConfig{
			Repeat:  1,
			LogFile: "drill.log",
		},
	}
}

// Load reads configuration from an optional TOML file (CONFIG_FILE) and
// environment variables, which take precedence
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.File = getEnv("STORAGE_FILE", cfg.Storage.File)
	cfg.Storage.Host = getEnv("DB_HOST", cfg.Storage.Host)
	cfg.Storage.Port = getEnv("DB_PORT", cfg.Storage.Port)
	cfg.Storage.Name = getEnv("DB_NAME", cfg.Storage.Name)
	cfg.Storage.User = getEnv("DB_USER", cfg.Storage.User)
	cfg.Storage.Password = getEnv("DB_PASSWORD", cfg.Storage.Password)
	cfg.Storage.MigrationsPath = getEnv("MIGRATIONS_PATH", cfg.Storage.MigrationsPath)

	cfg.Speech.Backend = getEnv("SPEECH_BACKEND", cfg.Speech.Backend)
	cfg.Speech.BinaryPath = getEnv("ESPEAK_BINARY", cfg.Speech.BinaryPath)
	cfg.Speech.SourceLang = getEnv("SOURCE_LANG", cfg.Speech.SourceLang)
	cfg.Speech.TargetLang = getEnv("TARGET_LANG", cfg.Speech.TargetLang)
	cfg.Speech.SourceVoice = getEnv("SOURCE_VOICE", cfg.Speech.SourceVoice)
	cfg.Speech.TargetVoice = getEnv("TARGET_VOICE", cfg.Speech.TargetVoice)

	cfg.Relay.URL = getEnv("RELAY_URL", cfg.Relay.URL)
	cfg.Server.JWTSecret = getEnv("JWT_SECRET", cfg.Server.JWTSecret)
	cfg.Bot.Token = getEnv("BOT_TOKEN", cfg.Bot.Token)
	cfg.Drill.LogFile = getEnv("LOG_FILE", cfg.Drill.LogFile)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}

	var err error
	if cfg.Speech.WordsPerMinute, err = getEnvInt("SPEECH_WPM", cfg.Speech.WordsPerMinute); err != nil {
		return nil, err
	}
	if cfg.Speech.Rate, err = getEnvFloat("SPEECH_RATE", cfg.Speech.Rate); err != nil {
		return nil, err
	}
	if cfg.Relay.TimeoutSec, err = getEnvInt("RELAY_TIMEOUT_SEC", cfg.Relay.TimeoutSec); err != nil {
		return nil, err
	}
	if cfg.Server.Port, err = getEnvInt("PORT", cfg.Server.Port); err != nil {
		return nil, err
	}
	if cfg.Drill.Repeat, err = getEnvInt("DRILL_REPEAT", cfg.Drill.Repeat); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the settings every binary depends on
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSqlite3:
		if c.Storage.File == "" {
			return fmt.Errorf("STORAGE_FILE is required for the sqlite3 driver")
		}
	case DriverPostgres:
		if c.Storage.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of %s, %s, %s (got %q)",
			DriverSqlite3, DriverPostgres, DriverMemory, c.Storage.Driver)
	}

	if c.Speech.Rate <= 0 || c.Speech.Rate > 10 {
		return fmt.Errorf("SPEECH_RATE must be in (0, 10] (got %v)", c.Speech.Rate)
	}
	if c.Speech.WordsPerMinute <= 0 {
		return fmt.Errorf("SPEECH_WPM must be positive (got %d)", c.Speech.WordsPerMinute)
	}
	if c.Drill.Repeat < 1 {
		return fmt.Errorf("DRILL_REPEAT must be at least 1 (got %d)", c.Drill.Repeat)
	}
	if c.Relay.TimeoutSec <= 0 {
		return fmt.Errorf("RELAY_TIMEOUT_SEC must be positive (got %d)", c.Relay.TimeoutSec)
	}

	return nil
}

// RequireBotToken reports a missing Telegram token
func (c *Config) RequireBotToken() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Storage.Host,
		c.Storage.Port,
		c.Storage.User,
		c.Storage.Password,
		c.Storage.Name,
	)
}

// SpeechOptions flattens the speech settings into the map consumed by
// backend factories
func (c *Config) SpeechOptions() map[string]string {
	return map[string]string{
		"binary_path":      c.Speech.BinaryPath,
		"words_per_minute": strconv.Itoa(c.Speech.WordsPerMinute),
		"source_lang":      c.Speech.SourceLang,
		"target_lang":      c.Speech.TargetLang,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
