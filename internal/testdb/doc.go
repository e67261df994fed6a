// Package testdb provides utilities for database integration tests: locating
// the test database, applying the embedded migrations once and isolating each
// test in a rolled-back transaction.
//
// Integration tests are opt-in. They run only when DATABASE_URL (or
// ZEN_TEST_DB_URL) points at a disposable PostgreSQL database and the
// integration build tag is set:
//
//	DATABASE_URL=postgres://... go test -tags=integration ./...
package testdb
