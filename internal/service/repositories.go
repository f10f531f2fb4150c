package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/board-api/internal/store"
)

// Repositories groups the stores a unit of work needs.
type Repositories struct {
	Columns store.ColumnStore
	Tasks   store.TaskStore
}

// TxRunner runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// SQLTxRunner implements TxRunner with store.RunInTransaction.
type SQLTxRunner struct {
	db    *sql.DB
	repos Repositories
}

// NewSQLTxRunner creates a TxRunner for db whose transactions use repos.
func NewSQLTxRunner(db *sql.DB, repos Repositories) *SQLTxRunner {
	if db == nil {
		panic("db cannot be nil")
	}
	return &SQLTxRunner{db: db, repos: repos}
}

// RunInTx implements TxRunner.
func (r *SQLTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, Repositories{
			Columns: r.repos.Columns.WithTx(tx),
			Tasks:   r.repos.Tasks.WithTx(tx),
		})
	})
}
