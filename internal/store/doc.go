// Package store declares the persistence contracts for members and their
// readings, the errors stores return, and the transaction helper services
// use to group writes. Implementations live in internal/platform/postgres.
package store
