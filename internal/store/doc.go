// Package store defines the persistence interfaces consumed by the service
// and worker layers, together with shared helpers (DBTX, transactions) and
// the sentinel errors implementations must return. Concrete PostgreSQL
// implementations live in internal/platform/postgres.
package store
