// Package store declares the persistence contracts for users and plantings.
// Services depend on these interfaces; internal/platform/postgres provides
// the PostgreSQL implementations.
package store
