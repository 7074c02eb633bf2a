// Package logger provides structured logging functionality for the application.
//
// It builds JSON log/slog loggers with a configurable level and carries
// request-scoped loggers through context.Context.
package logger
