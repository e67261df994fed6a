package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/zen-api/internal/platform/logger"
)

// TxFn is work that runs inside a transaction. Returning nil commits.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a transaction with the driver's default
// options. See RunInTransactionWithOptions.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return RunInTransactionWithOptions(ctx, db, nil, fn)
}

// RunInTransactionWithOptions begins a transaction with opts, runs fn and
// commits when fn returns nil. Any error from fn rolls the transaction back
// and is returned unchanged, so callers can still match sentinel errors. A
// panic in fn rolls back and is re-raised.
func RunInTransactionWithOptions(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) (err error) {
	log := logger.FromContext(ctx)
	if opts != nil {
		log = log.With(slog.String("isolation", opts.Isolation.String()))
	}

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("failed to roll back transaction", slog.String("rollback_error", rbErr.Error()))
			if p == nil && err != nil {
				err = fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
			}
		}
		if p != nil {
			log.Error("rolled back transaction after panic", slog.Any("panic", p))
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		log.Debug("rolling back transaction", slog.String("error", err.Error()))
		return err
	}

	if err = tx.Commit(); err != nil {
		// A failed commit leaves nothing to roll back.
		committed = true
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
