package sqlstore

import (
	"fmt"
	"strings"
)

// Dialect identifies the SQL backend behind a connection.
type Dialect string

// Supported dialects.
const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// driverName returns the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	default:
		return "pgx"
	}
}

// Rebind rewrites $N placeholders into the dialect's native form.
// Queries in this package are written with $N; SQLite receives ?N.
func (d Dialect) Rebind(query string) string {
	if d != DialectSQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

// ParseURL splits a database URL into its dialect and a driver DSN.
//
// Accepted forms:
//
//	postgres://... or postgresql://...   PostgreSQL via pgx
//	sqlite://path/to/board.db            SQLite file
//	sqlite::memory:                      private in-memory SQLite database
//	file:...                             SQLite URI, passed through
func ParseURL(url string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	case url == "sqlite::memory:":
		return DialectSQLite, withPragmas(":memory:"), nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite URL %q has no path", url)
		}
		return DialectSQLite, withPragmas("file:" + path), nil
	case strings.HasPrefix(url, "file:"):
		return DialectSQLite, withPragmas(url), nil
	default:
		return "", "", fmt.Errorf("unsupported database URL scheme: %q", schemeOf(url))
	}
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

func schemeOf(url string) string {
	if i := strings.Index(url, ":"); i > 0 {
		return url[:i]
	}
	return url
}
