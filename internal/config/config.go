package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the immutable run configuration. It is constructed once at
// startup and passed by value into the planner and exporter; nothing reads
// these knobs from globals afterwards.
//
// Values are layered: built-in defaults, then the optional TOML config file,
// then SPLITTER_* environment variables (a .env file is honored by the
// entrypoint), then CLI flags.
//
// Environment variables:
//   - SPLITTER_CONFIG: path of the TOML config file (default: ./splitter.toml)
//   - SPLITTER_OUTPUT_DIR: output directory (default: output)
//   - SPLITTER_QUALITY: mp3 bitrate in kbps, one of 128/192/256/320 (default: 320)
//   - SPLITTER_KEEP_ORIGINAL: also write the complete source as original.mp3
//   - SPLITTER_WORKERS: parallel export workers (default: number of CPUs)
//   - SPLITTER_HISTORY_DB: run history database path (empty disables)
//   - SPLITTER_LOG_LEVEL: debug/info/warn/error (default: info)
//   - SPLITTER_LOG_FILE: also append logs to this file
type Config struct {
	OutputDir    string
	QualityKbps  int
	KeepOriginal bool
	Workers      int
	HistoryDB    string
	LogLevel     string
}

// Qualities the mp3 encoder accepts.
var validQualities = map[int]bool{
	128: true,
	192: true,
	256: true,
	320: true,
}

// ConfigError reports an invalid configuration value. It is always raised
// before any network activity.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Overrides carries the CLI flag values layered on last. Zero values mean
// "not set" (KeepOriginal can only be switched on by a flag, matching the
// flag's store-true shape).
type Overrides struct {
	OutputDir    string
	Quality      int
	KeepOriginal bool
}

// fileConfig mirrors the optional splitter.toml. Pointer fields distinguish
// "absent" from a zero value.
type fileConfig struct {
	OutputDir    *string `toml:"output_dir"`
	Quality      *int    `toml:"quality"`
	KeepOriginal *bool   `toml:"keep_original"`
	Workers      *int    `toml:"workers"`
	HistoryDB    *string `toml:"history_db"`
	LogLevel     *string `toml:"log_level"`
}

// New builds the validated Config for one run.
func New(overrides Overrides) (Config, error) {
	cfg := Config{
		OutputDir:    "output",
		QualityKbps:  320,
		KeepOriginal: false,
		Workers:      0,
		HistoryDB:    defaultHistoryPath(),
		LogLevel:     "info",
	}

	if err := applyFile(&cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	if overrides.OutputDir != "" {
		cfg.OutputDir = overrides.OutputDir
	}
	if overrides.Quality != 0 {
		cfg.QualityKbps = overrides.Quality
	}
	if overrides.KeepOriginal {
		cfg.KeepOriginal = true
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !validQualities[c.QualityKbps] {
		return &ConfigError{
			Field:  "quality",
			Reason: fmt.Sprintf("%d kbps is not supported; choose 128, 192, 256 or 320", c.QualityKbps),
		}
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return &ConfigError{Field: "output-dir", Reason: "must not be empty"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: "must not be negative"}
	}
	return nil
}

func applyFile(cfg *Config) error {
	path := getEnvString("SPLITTER_CONFIG", "splitter.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Field: "config file", Reason: err.Error()}
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return &ConfigError{Field: "config file", Reason: fmt.Sprintf("%s: %v", path, err)}
	}

	if fc.OutputDir != nil {
		cfg.OutputDir = *fc.OutputDir
	}
	if fc.Quality != nil {
		cfg.QualityKbps = *fc.Quality
	}
	if fc.KeepOriginal != nil {
		cfg.KeepOriginal = *fc.KeepOriginal
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.HistoryDB != nil {
		cfg.HistoryDB = *fc.HistoryDB
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.OutputDir = getEnvString("SPLITTER_OUTPUT_DIR", cfg.OutputDir)
	cfg.QualityKbps = getEnvInt("SPLITTER_QUALITY", cfg.QualityKbps)
	cfg.KeepOriginal = getEnvBool("SPLITTER_KEEP_ORIGINAL", cfg.KeepOriginal)
	cfg.Workers = getEnvInt("SPLITTER_WORKERS", cfg.Workers)
	cfg.LogLevel = getEnvString("SPLITTER_LOG_LEVEL", cfg.LogLevel)
	if v, ok := os.LookupEnv("SPLITTER_HISTORY_DB"); ok {
		cfg.HistoryDB = v
	}
}

// defaultHistoryPath puts the run history under the user cache dir; an empty
// path disables history.
func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "yt-audio-splitter", "history.db")
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
