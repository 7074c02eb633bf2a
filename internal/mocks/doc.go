// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Memory is an in-memory database whose views (Users, Categories, Tasks,
// Revocations) satisfy the store interfaces with the same ownership,
// uniqueness and cascade rules the Postgres schema enforces. It backs the
// service and end-to-end router tests.
//
// The function-field mocks (MockJWTService, MockPasswordHasher) and the
// testify-based TestifyMockUserStore are for tests that need to force a
// specific failure.
//
// Usage:
//
//	db := mocks.NewMemory()
//	svc := service.NewCategoryService(db.Categories(), logger)
package mocks
