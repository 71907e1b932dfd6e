package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines the interface for repositories that can manage
// database transactions.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
