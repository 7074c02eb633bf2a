// Package config loads and validates application settings. Values come from
// built-in defaults, an optional config.yaml, a local .env file and
// TASKER_-prefixed environment variables, with a few unprefixed names kept
// for compatibility with older deployments (PORT, ORIGIN, DATABASE_URL,
// SECRET_KEY).
package config
