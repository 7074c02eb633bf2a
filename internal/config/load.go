package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TASKER"

// defaults for every optional key. Keys without a default must be provided.
var defaults = map[string]any{
	"server.port":                         3000,
	"server.log_level":                    "info",
	"server.allowed_origin":               "http://localhost:5173",
	"database.auto_migrate":               true,
	"auth.token_lifetime_minutes":         60,
	"auth.refresh_token_lifetime_minutes": 10080,
	"auth.bcrypt_cost":                    10,
	"auth.cookie_secure":                  false,
	"auth.revocation_purge_schedule":      "@every 1h",
}

// legacyEnv lists the unprefixed variable names understood for each key in
// addition to the TASKER_ form, which always wins.
var legacyEnv = map[string][]string{
	"server.port":           {"PORT"},
	"server.allowed_origin": {"ORIGIN"},
	"database.url":          {"DATABASE_URL"},
	"auth.jwt_secret":       {"SECRET_KEY"},
}

// keys is every configuration key bound to the environment.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.allowed_origin",
	"database.url",
	"database.auto_migrate",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.refresh_token_lifetime_minutes",
	"auth.bcrypt_cost",
	"auth.cookie_secure",
	"auth.revocation_purge_schedule",
}

// Load configuration from a local .env file, an optional config.yaml in the
// working directory and environment variables, in increasing precedence.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	replacer := strings.NewReplacer(".", "_")
	for _, key := range keys {
		names := []string{EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))}
		names = append(names, legacyEnv[key]...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := newValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// newValidator returns a validator that also understands the "dsn" tag.
func newValidator() *validator.Validate {
	validate := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("dsn", func(fl validator.FieldLevel) bool {
		return isPostgresDSN(fl.Field().String())
	})
	return validate
}

// isPostgresDSN reports whether pgx can parse s, either as a postgres:// URL
// or as a libpq key/value string. Nothing is dialed.
func isPostgresDSN(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := pgconn.ParseConfig(s)
	return err == nil
}
