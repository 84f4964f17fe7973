package remote

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	listPlanQuery = `SELECT item_id, type, checklist FROM user_plans WHERE user_id = $1 ORDER BY position`
	upsertItemQuery = `
        INSERT INTO user_plans (user_id, item_id, type, checklist)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, item_id) DO UPDATE SET
            type = EXCLUDED.type,
            checklist = EXCLUDED.checklist,
            updated_at = NOW()`
	deleteItemQuery      = `DELETE FROM user_plans WHERE user_id = $1 AND item_id = $2`
	updateChecklistQuery = `UPDATE user_plans SET checklist = $3, updated_at = NOW() WHERE user_id = $1 AND item_id = $2`
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	pgxscan.Querier
}

// Postgres stores plans in the user_plans table.
type Postgres struct {
	db     Querier
	logger *zap.Logger
}

func NewPostgres(db Querier, logger *zap.Logger) *Postgres {
	return &Postgres{db: db, logger: logging.OrNop(logger).Named("PostgresPlans")}
}

// ConnectPostgres opens a pool for dsn and verifies it with a ping.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: pinging postgres: %v", ErrUnavailable, err)
	}
	return pool, nil
}

// MigratePostgres applies the embedded schema migrations.
func MigratePostgres(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{MigrationsTable: "vocnav_schema_migrations"})
	if err != nil {
		return fmt.Errorf("creating migrate driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

type planRow struct {
	ItemID    string          `db:"item_id"`
	Type      string          `db:"type"`
	Checklist json.RawMessage `db:"checklist"`
}

func (p *Postgres) GetUserPlan(ctx context.Context, userID string) ([]domain.PlanItem, error) {
	var rows []planRow
	if err := pgxscan.Select(ctx, p.db, &rows, listPlanQuery, userID); err != nil {
		return nil, fmt.Errorf("listing plan for %s: %w", userID, err)
	}

	items := make([]domain.PlanItem, 0, len(rows))
	for _, r := range rows {
		item := domain.PlanItem{ID: r.ItemID, Type: domain.ItemType(r.Type), Checklist: []domain.ChecklistItem{}}
		if len(r.Checklist) > 0 {
			if err := json.Unmarshal(r.Checklist, &item.Checklist); err != nil {
				p.logger.Warn("skipping unreadable checklist", zap.String("user_id", userID), zap.String("item_id", r.ItemID), zap.Error(err))
				item.Checklist = []domain.ChecklistItem{}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Postgres) UpsertPlanItem(ctx context.Context, userID string, item domain.PlanItem) error {
	checklist, err := encodeChecklist(item.Checklist)
	if err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, upsertItemQuery, userID, item.ID, string(item.Type), checklist); err != nil {
		return fmt.Errorf("upserting plan item %s: %w", item.ID, err)
	}
	return nil
}

func (p *Postgres) DeletePlanItem(ctx context.Context, userID, itemID string) error {
	if _, err := p.db.Exec(ctx, deleteItemQuery, userID, itemID); err != nil {
		return fmt.Errorf("deleting plan item %s: %w", itemID, err)
	}
	return nil
}

func (p *Postgres) UpdateChecklist(ctx context.Context, userID, itemID string, checklist []domain.ChecklistItem) error {
	raw, err := encodeChecklist(checklist)
	if err != nil {
		return err
	}
	tag, err := p.db.Exec(ctx, updateChecklistQuery, userID, itemID, raw)
	if err != nil {
		return fmt.Errorf("updating checklist of %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		p.logger.Debug("checklist update matched no row", zap.String("user_id", userID), zap.String("item_id", itemID))
	}
	return nil
}

func encodeChecklist(c []domain.ChecklistItem) (string, error) {
	if c == nil {
		c = []domain.ChecklistItem{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding checklist: %w", err)
	}
	return string(raw), nil
}
