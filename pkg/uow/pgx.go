package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts database transactions. Both *pgxpool.Pool and *pgx.Conn
// satisfy it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithinTx runs fn inside a database transaction with a fresh unit of work in
// scope. The unit's commit hooks fire only after the database transaction has
// committed, so a hook never observes state that was rolled back.
//
// fn receives a context carrying the unit of work; code inside can register
// hooks via FromContext without knowing about the transaction boundaries.
func WithinTx(ctx context.Context, db TxBeginner, fn func(ctx context.Context, tx pgx.Tx) error) error {
	u := New()
	ctx = WithContext(ctx, u)

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		u.Rollback()
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		u.Rollback()
		return err
	}

	return u.Commit(ctx)
}
