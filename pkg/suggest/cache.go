package suggest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"arnavsurve/nara-othello/server/pkg/types"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "othello:suggest:"

// Cache remembers successful suggestions per (player, board) in Redis.
// Redis trouble is logged and skipped; it never fails a call.
type Cache struct {
	next   Suggester
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(next Suggester, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) Suggest(ctx context.Context, boardState, player string) (*types.MoveSuggestion, error) {
	key := cacheKey(boardState, player)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached types.MoveSuggestion
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.logger.Debug("move suggestion cache hit", zap.String("key", key))
			return &cached, nil
		}
		c.logger.Warn("discarding unreadable cached suggestion", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("suggestion cache read failed", zap.Error(err))
	}

	suggestion, err := c.next.Suggest(ctx, boardState, player)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(suggestion)
	if err != nil {
		return suggestion, nil
	}
	if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("suggestion cache write failed", zap.Error(err))
	}

	return suggestion, nil
}

func cacheKey(boardState, player string) string {
	sum := sha256.Sum256([]byte(player + "\n" + boardState))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
