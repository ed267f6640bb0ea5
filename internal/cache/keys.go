package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Cacheable read endpoints get type-specific TTLs.
const (
	PostTTL     = 300 * time.Second
	TimelineTTL = 120 * time.Second
	ProfileTTL  = 180 * time.Second
	SearchTTL   = 300 * time.Second
)

const pagePrefix = "page:"

// Key patterns invalidated by writes. Pattern-based (approximate)
// invalidation is the documented behavior: a write clears the superset of
// pages whose data set it could have changed.
const (
	PostsPattern    = pagePrefix + "/api/posts*"
	TimelinePattern = pagePrefix + "/api/posts/timeline*"
	UsersPattern    = pagePrefix + "/api/users*"
)

// PageKey derives the canonical cache key for a read request from its path
// and query. Query parameters are sorted so equivalent requests share a key.
func PageKey(path string, query url.Values) string {
	if len(query) == 0 {
		return pagePrefix + path
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(pagePrefix)
	b.WriteString(path)
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		vals := append([]string(nil), query[k]...)
		sort.Strings(vals)
		for j, v := range vals {
			if j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}

// PostPageKey is the canonical key of the single-post page.
func PostPageKey(postID uint) string {
	return fmt.Sprintf("%s/api/posts/%d", pagePrefix, postID)
}

// ProfilePattern matches the cached profile feed pages of one user.
func ProfilePattern(username string) string {
	return fmt.Sprintf("%s/api/posts/profile/%s*", pagePrefix, username)
}
