package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"task-api/internal/models"
)

const listKey = "tasks:list"

// TaskCache stores the serialized task list in Redis.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// GetList returns the cached list, or a nil slice on miss.
func (c *TaskCache) GetList(ctx context.Context) ([]models.Task, error) {
	b, err := c.rdb.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	err = json.Unmarshal(b, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *TaskCache) SetList(ctx context.Context, tasks []models.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey, b, c.ttl).Err()
}

func (c *TaskCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, listKey).Err()
}
