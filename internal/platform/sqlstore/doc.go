// Package sqlstore provides database/sql implementations of the store
// interfaces. The same stores run against PostgreSQL (through the pgx
// stdlib driver) and SQLite (through modernc.org/sqlite); the Dialect
// chosen at Open time selects placeholder syntax, locking and migrations.
package sqlstore
