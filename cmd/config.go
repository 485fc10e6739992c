package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults used when neither the environment nor the .env file sets a value.
const (
	DefaultHTTPPort        = "8080"
	DefaultArchiveSchedule = "*/10 * * * * *"
	DefaultPickerSchedule  = "*/2 * * * * *"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// ArchiveEnabled turns on the postgres order archive. Without it the
	// service runs entirely in memory.
	ArchiveEnabled  bool
	ArchiveSchedule string

	PickerCount    int
	PickerSchedule string
	SeedOrders     int

	LogLevel slog.Level
}

// LoadConfig reads the configuration from the environment, falling back to
// envFile and then to the defaults. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	fileVars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	env := envReader{file: fileVars}
	config := Config{
		HTTPPort:        env.str("HTTP_PORT", DefaultHTTPPort),
		DBHost:          env.str("DB_HOST", "localhost"),
		DBPort:          env.str("DB_PORT", "5432"),
		DBUser:          env.str("DB_USER", "postgres"),
		DBPassword:      env.str("DB_PASSWORD", ""),
		DBName:          env.str("DB_NAME", "fulfilment"),
		DBSslMode:       env.str("DB_SSLMODE", "disable"),
		ArchiveEnabled:  env.boolean("ARCHIVE_ENABLED", false),
		ArchiveSchedule: env.str("ARCHIVE_SCHEDULE", DefaultArchiveSchedule),
		PickerCount:     env.integer("PICKER_COUNT", 0),
		PickerSchedule:  env.str("PICKER_SCHEDULE", DefaultPickerSchedule),
		SeedOrders:      env.integer("SEED_ORDERS", 0),
		LogLevel:        env.level("LOG_LEVEL", slog.LevelInfo),
	}

	if err = errors.Join(env.errs...); err != nil {
		return Config{}, err
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks values that parsed but make no sense.
func (c Config) Validate() error {
	var errs []error
	if c.PickerCount < 0 {
		errs = append(errs, fmt.Errorf("PICKER_COUNT must not be negative, got %d", c.PickerCount))
	}
	if c.SeedOrders < 0 {
		errs = append(errs, fmt.Errorf("SEED_ORDERS must not be negative, got %d", c.SeedOrders))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT must not be empty"))
	}
	return errors.Join(errs...)
}

// DSN is the lib/pq connection string for the archive database.
func (c Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBSslMode)
	if c.DBPassword != "" {
		dsn += " password=" + c.DBPassword
	}
	return dsn
}

// envReader looks a key up in the process environment first, then in the
// .env file. An empty variable counts as unset. Parse failures are collected so every bad key is reported at once.
type envReader struct {
	file map[string]string
	errs []error
}

func (r *envReader) lookup(key string) (string, bool) {
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	v, ok := r.file[key]
	return v, ok
}

func (r *envReader) str(key, fallback string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (r *envReader) boolean(key string, fallback bool) bool {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func (r *envReader) level(key string, fallback slog.Level) slog.Level {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return level
}
