package testutil

import (
	"context"
	"database/sql"
	"slices"
	"sync/atomic"

	"github.com/alexanderramin/vocnav/internal/db"
)

// FailingUoW runs transactions on a real store but makes any write whose
// arguments include FailKey return Err. The surrounding transaction then
// rolls back like a real mid-batch failure.
type FailingUoW struct {
	FailKey string
	Err     error

	inner  db.UnitOfWork
	writes atomic.Int32
}

func NewFailingUoW(database *sql.DB, failKey string, err error) *FailingUoW {
	return &FailingUoW{FailKey: failKey, Err: err, inner: db.NewSQLiteUnitOfWork(database)}
}

// Writes reports how many writes were attempted, failed ones included.
func (u *FailingUoW) Writes() int32 { return u.writes.Load() }

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, failingTx{DBTX: tx, owner: u})
	})
}

type failingTx struct {
	db.DBTX
	owner *FailingUoW
}

func (f failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.owner.writes.Add(1)
	if slices.Contains(args, any(f.owner.FailKey)) {
		return nil, f.owner.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
