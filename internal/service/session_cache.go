package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionTTL      = 30 * time.Minute
	sessionMaxTurns = 20
)

// SessionCache keeps a user's recent tutor turns in redis so multi-turn
// context survives across requests without the client resending it. Entries
// expire after sessionTTL of inactivity and are capped at sessionMaxTurns.
type SessionCache struct {
	rdb *redis.Client
}

func NewSessionCache(rdb *redis.Client) *SessionCache {
	return &SessionCache{rdb: rdb}
}

func (c *SessionCache) key(userID uint) string {
	return fmt.Sprintf("tutor:session:%d", userID)
}

// Append pushes turns onto the user's session, trims to the cap, and
// refreshes the TTL.
func (c *SessionCache) Append(ctx context.Context, userID uint, turns ...ChatMessage) error {
	key := c.key(userID)

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -sessionMaxTurns, -1)
	pipe.Expire(ctx, key, sessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns the cached turns oldest first.
func (c *SessionCache) Recent(ctx context.Context, userID uint) ([]ChatMessage, error) {
	raw, err := c.rdb.LRange(ctx, c.key(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]ChatMessage, 0, len(raw))
	for _, item := range raw {
		var turn ChatMessage
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (c *SessionCache) Clear(ctx context.Context, userID uint) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}
