package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// KVEntry is one stored key with its raw value.
type KVEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]KVEntry, error)
	Clear(ctx context.Context) error
}
