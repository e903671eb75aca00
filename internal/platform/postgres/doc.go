// Package postgres contains the PostgreSQL implementations of the
// persistence interfaces declared in internal/store. The stores operate
// over database/sql (pgx stdlib driver) and translate driver error codes
// into the store package's sentinel errors.
package postgres
