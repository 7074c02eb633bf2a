// Package testdb connects integration tests to a real PostgreSQL database.
//
// Tests using it carry the "integration" build tag and are skipped unless
// TASKER_TEST_DATABASE_URL is set. The schema is migrated once per test
// binary with the embedded goose migrations, and each test runs inside a
// transaction that is rolled back when it finishes, so tests never see each
// other's rows.
package testdb
