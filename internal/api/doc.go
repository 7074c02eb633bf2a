// Package api holds the HTTP handlers for authentication, categories and
// tasks. Handlers decode and validate requests, call the services in
// internal/service, and write JSON responses.
//
// Every handler failure goes through HandleAPIError, which maps the error to
// a status code and error kind, logs the redacted cause, and writes the
// standard envelope {"message", "error", "trace_id"}.
package api
