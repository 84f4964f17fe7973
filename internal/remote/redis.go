package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
)

// Redis keeps each user's plan in a hash of item JSON plus a sorted set that
// records insertion order.
type Redis struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

func NewRedis(client redis.UniversalClient, logger *zap.Logger) *Redis {
	return &Redis{client: client, prefix: "vocnav", logger: logging.OrNop(logger).Named("RedisPlans")}
}

// ConnectRedis builds a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: pinging redis: %v", ErrUnavailable, err)
	}
	return client, nil
}

func (r *Redis) itemsKey(userID string) string { return fmt.Sprintf("%s:plan:%s:items", r.prefix, userID) }
func (r *Redis) orderKey(userID string) string { return fmt.Sprintf("%s:plan:%s:order", r.prefix, userID) }
func (r *Redis) seqKey() string                { return r.prefix + ":plan:seq" }

func (r *Redis) GetUserPlan(ctx context.Context, userID string) ([]domain.PlanItem, error) {
	ids, err := r.client.ZRange(ctx, r.orderKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading plan order for %s: %w", userID, err)
	}
	items := make([]domain.PlanItem, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	values, err := r.client.HMGet(ctx, r.itemsKey(userID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading plan items for %s: %w", userID, err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			r.logger.Warn("order entry without item", zap.String("user_id", userID), zap.String("item_id", ids[i]))
			continue
		}
		var item domain.PlanItem
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			r.logger.Warn("skipping unreadable item", zap.String("user_id", userID), zap.String("item_id", ids[i]), zap.Error(err))
			continue
		}
		if item.Checklist == nil {
			item.Checklist = []domain.ChecklistItem{}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Redis) UpsertPlanItem(ctx context.Context, userID string, item domain.PlanItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding plan item %s: %w", item.ID, err)
	}
	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("allocating plan position: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.itemsKey(userID), item.ID, raw)
		// NX keeps the first insertion position on repeated upserts.
		pipe.ZAddNX(ctx, r.orderKey(userID), redis.Z{Score: float64(seq), Member: item.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("upserting plan item %s: %w", item.ID, err)
	}
	return nil
}

func (r *Redis) DeletePlanItem(ctx context.Context, userID, itemID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.itemsKey(userID), itemID)
		pipe.ZRem(ctx, r.orderKey(userID), itemID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting plan item %s: %w", itemID, err)
	}
	return nil
}

func (r *Redis) UpdateChecklist(ctx context.Context, userID, itemID string, checklist []domain.ChecklistItem) error {
	raw, err := r.client.HGet(ctx, r.itemsKey(userID), itemID).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading plan item %s: %w", itemID, err)
	}
	var item domain.PlanItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return fmt.Errorf("decoding plan item %s: %w", itemID, err)
	}
	item.Checklist = domain.CloneChecklist(checklist)
	encoded, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding plan item %s: %w", itemID, err)
	}
	if err := r.client.HSet(ctx, r.itemsKey(userID), itemID, encoded).Err(); err != nil {
		return fmt.Errorf("updating checklist of %s: %w", itemID, err)
	}
	return nil
}
