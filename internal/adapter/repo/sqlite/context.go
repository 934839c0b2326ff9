package sqliterepo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func getExtFromCtx(ctx context.Context, base *sqlx.DB) sqlx.ExtContext {
	if v := ctx.Value(txKey); v != nil {
		if tx, ok := v.(*sqlx.Tx); ok && tx != nil {
			return tx
		}
	}
	return base
}
