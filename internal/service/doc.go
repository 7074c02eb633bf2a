// Package service contains the application use cases: registering and
// authenticating users, and ownership-scoped management of categories and
// tasks.
//
// Services receive their store and auth dependencies through constructor
// injection and depend only on the interfaces in internal/store and
// internal/service/auth, never on a concrete database.
//
// Expected conditions are reported as sentinel errors (ErrInvalidCredentials,
// store.ErrNotFound and friends, *domain.ValidationError values), which the
// API layer maps to status codes. Anything unexpected is wrapped in a
// ServiceError naming the failing operation.
package service
