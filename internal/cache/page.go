package cache

import (
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Page returns read-through cache middleware for a GET endpoint. On a hit the
// stored response body is returned verbatim, bypassing the handler; on a miss
// the handler runs and a 200-status JSON body is stored with the given TTL.
func Page(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := PageKey(c.Path(), queryValues(c))
		route := c.Route().Path
		ctx := c.UserContext()

		body, err := client.Get(ctx, key).Bytes()
		if err == nil {
			middleware.CacheHits.WithLabelValues(route).Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}
		if !errors.Is(err, redis.Nil) {
			middleware.Logger.WarnContext(ctx, "page cache read failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		middleware.CacheMisses.WithLabelValues(route).Inc()

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			stored := append([]byte(nil), c.Response().Body()...)
			if setErr := client.Set(ctx, key, stored, ttl).Err(); setErr != nil {
				middleware.Logger.WarnContext(ctx, "page cache write failed",
					slog.String("key", key), slog.String("error", setErr.Error()))
			}
		}
		return nil
	}
}

func queryValues(c *fiber.Ctx) url.Values {
	vals := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		vals.Add(string(k), string(v))
	})
	return vals
}
