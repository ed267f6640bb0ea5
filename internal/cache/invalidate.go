package cache

import (
	"context"
	"log/slog"

	"github.com/SumitDutta007/Social-Media-Backend/internal/middleware"
)

// InvalidatePattern removes all cached pages matching the glob pattern.
// Best-effort: a failure is logged, never surfaced, since a write must not be
// blocked by the cache. A stale entry is still a correctness defect, so
// failures are visible in both logs and the Redis error counter.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}

	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation scan failed",
			slog.String("pattern", pattern), slog.String("error", err.Error()))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation delete failed",
			slog.String("pattern", pattern), slog.String("error", err.Error()))
	}
}

// InvalidateKey removes a single cached page.
func InvalidateKey(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

// InvalidatePostPages clears every page a post write could stale: the generic
// post listings (single post, timelines, search) plus the author's profile feed.
func InvalidatePostPages(ctx context.Context, authorUsername string) {
	InvalidatePattern(ctx, PostsPattern)
	if authorUsername != "" {
		InvalidatePattern(ctx, ProfilePattern(authorUsername))
	}
}

// InvalidateTimelines clears cached timeline pages after a follow-graph change.
func InvalidateTimelines(ctx context.Context) {
	InvalidatePattern(ctx, TimelinePattern)
}

// InvalidateUserPages clears cached user lookups and searches.
func InvalidateUserPages(ctx context.Context) {
	InvalidatePattern(ctx, UsersPattern)
}
