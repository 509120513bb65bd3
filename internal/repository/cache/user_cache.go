package cache

import (
	"context"
	"encoding/json"
	"time"

	"personal-notes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const userKeyPrefix = "user:profile:"

// UserCache is a cache-aside layer for user profile reads. A miss or a Redis
// failure falls through to the database; writes invalidate.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUserCache(rdb *redis.Client) *UserCache {
	return &UserCache{
		rdb: rdb,
		ttl: 5 * time.Minute,
	}
}

func (c *UserCache) Get(ctx context.Context, id uuid.UUID) (*entity.User, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, userKeyPrefix+id.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (c *UserCache) Set(ctx context.Context, user *entity.User) {
	if c.rdb == nil || user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	// Best effort; the DB remains the source of truth
	c.rdb.Set(ctx, userKeyPrefix+user.Id.String(), raw, c.ttl)
}

func (c *UserCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, userKeyPrefix+id.String())
}
