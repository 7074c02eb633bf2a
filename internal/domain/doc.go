// Package domain contains the core business entities of the task manager:
// users, the categories they own, and their tasks. Entities validate
// themselves; validation failures are *ValidationError values whose messages
// are safe to return to API clients.
package domain
