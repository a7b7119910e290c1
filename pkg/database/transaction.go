package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxStarter: *pgxpool.Pool và *pgx.Conn đều thỏa mãn
type TxStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type TxFunc func(pgx.Tx) error

// Read-modify-write (SELECT ... FOR UPDATE) chạy ở read committed là đủ,
// row lock giữ tới khi commit/rollback.
var defaultTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// WithTransaction chạy fn trong một transaction.
// fn lỗi hoặc panic -> rollback; ngược lại commit.
func WithTransaction(ctx context.Context, db TxStarter, fn TxFunc) error {
	// lỗi của fn trả về nguyên vẹn để caller còn errors.Is được
	return pgx.BeginTxFunc(ctx, db, defaultTxOptions, fn)
}

// WithTransactionResult giống WithTransaction nhưng trả về giá trị từ fn
func WithTransactionResult[T any](ctx context.Context, db TxStarter, fn func(pgx.Tx) (T, error)) (T, error) {
	var out T
	err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
		v, err := fn(tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
