package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/middleware"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
// A backing-store failure degrades to a miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL. Best-effort: store failures
// are logged, never surfaced.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if client == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache marshal failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := client.Set(ctx, key, b, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache set failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Aside tries Redis first, on miss it calls fetch (which must write into dest),
// then stores the result with ttl.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	SetJSON(ctx, key, dest, ttl)
	return nil
}
