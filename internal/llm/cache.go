// In file: internal/llm/cache.go
package llm

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahul-ks/vedic-assistant/internal/version"
)

const (
	toolChoiceCachePrefix = "toolchoice"
	toolChoiceCacheTTL    = 24 * time.Hour
)

// ToolChoiceCache stores the raw tagged completion text the model produced for
// a given conversation, keyed by a versioned hash. A hit skips the completion
// call but never skips dispatch: annotations and toolCallIds are always minted
// fresh, so the uniqueness invariant holds even for replayed choices.
//
// Every Redis problem degrades to a cache miss. The cache is an optimization,
// not a dependency.
type ToolChoiceCache struct {
	rdb *redis.Client
}

// NewToolChoiceCache wraps a Redis client. A nil client yields a disabled
// cache whose Get always misses, which keeps the orchestrator free of
// nil checks.
func NewToolChoiceCache(rdb *redis.Client) *ToolChoiceCache {
	return &ToolChoiceCache{rdb: rdb}
}

// Get looks up a cached completion for the given model and conversation input.
func (c *ToolChoiceCache) Get(ctx context.Context, modelID, input string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	key := version.GenerateVersionedCacheKey(toolChoiceCachePrefix, modelID+"::"+input)
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	} else if err != nil {
		log.Printf("Redis GET error for tool-choice cache: %v", err)
		return "", false
	}
	return val, true
}

// Set stores a completion for later turns with the same conversation input.
func (c *ToolChoiceCache) Set(ctx context.Context, modelID, input, completion string) {
	if c == nil || c.rdb == nil {
		return
	}
	key := version.GenerateVersionedCacheKey(toolChoiceCachePrefix, modelID+"::"+input)
	if err := c.rdb.Set(ctx, key, completion, toolChoiceCacheTTL).Err(); err != nil {
		log.Printf("Redis SET error for tool-choice cache: %v", err)
	}
}
