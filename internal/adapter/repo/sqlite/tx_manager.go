package sqliterepo

import (
	"context"
	"fmt"
)

type TxManager struct {
	db *DB
}

func NewTxManager(db *DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if v := ctx.Value(txKey); v != nil {
		return fn(ctx)
	}
	tx, err := t.db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
