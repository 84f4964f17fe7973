// Package storage exposes the local key-value store to components as a
// synchronous API that never fails. Errors are logged and reads that fail
// look like absent keys.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/db"
	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/repository"
)

// Store is the capability the core components persist through.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Adapter implements Store over the SQLite kv repository.
type Adapter struct {
	repo repository.KVRepo
	uow  db.UnitOfWork
	log  *zap.Logger
}

// NewAdapter wraps an open database.
func NewAdapter(database *sql.DB, log *zap.Logger) *Adapter {
	return &Adapter{
		repo: repository.NewSQLiteKVRepo(database),
		uow:  db.NewSQLiteUnitOfWork(database),
		log:  logging.OrNop(log).Named("Storage"),
	}
}

// NewAdapterWith builds an adapter from explicit collaborators.
func NewAdapterWith(repo repository.KVRepo, uow db.UnitOfWork, log *zap.Logger) *Adapter {
	return &Adapter{repo: repo, uow: uow, log: logging.OrNop(log).Named("Storage")}
}

func (a *Adapter) Get(key string) (string, bool) {
	v, err := a.repo.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			a.log.Warn("read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

func (a *Adapter) Set(key, value string) {
	if err := a.repo.Set(context.Background(), key, value); err != nil {
		a.log.Error("write failed", zap.String("key", key), zap.Error(err))
	}
}

func (a *Adapter) Remove(key string) {
	if err := a.repo.Delete(context.Background(), key); err != nil {
		a.log.Error("remove failed", zap.String("key", key), zap.Error(err))
	}
}

// SetMany writes every pair in one transaction. Either all keys change or
// none do.
func (a *Adapter) SetMany(values map[string]string) {
	err := a.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteKVRepo(tx)
		for k, v := range values {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		a.log.Error("batch write failed", zap.Int("keys", len(values)), zap.Error(err))
	}
}

// Clear removes every stored key.
func (a *Adapter) Clear() {
	err := a.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKVRepo(tx).Clear(ctx)
	})
	if err != nil {
		a.log.Error("clear failed", zap.Error(err))
	}
}

// Keys lists the stored keys in order.
func (a *Adapter) Keys() []string {
	entries, err := a.repo.List(context.Background())
	if err != nil {
		a.log.Warn("list failed", zap.Error(err))
		return nil
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// GetJSON decodes the value under key into v. It reports false when the key
// is absent or the value does not decode; a decode failure is logged.
func GetJSON(s Store, log *zap.Logger, key string, v any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logging.OrNop(log).Warn("malformed stored value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, log *zap.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logging.OrNop(log).Error("encoding value", zap.String("key", key), zap.Error(err))
		return
	}
	s.Set(key, string(raw))
}

// GetBool reads a "true"/"false" flag, returning def when absent or unparsable.
func GetBool(s Store, key string, def bool) bool {
	raw, ok := s.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

func SetBool(s Store, key string, v bool) {
	s.Set(key, strconv.FormatBool(v))
}
