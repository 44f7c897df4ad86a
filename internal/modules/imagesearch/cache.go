// README: TTL cache and request coalescing in front of an image searcher.
package imagesearch

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a resolved image URL is reused across sessions.
const DefaultCacheTTL = 6 * time.Hour

type Searcher interface {
	Search(ctx context.Context, term string) (string, error)
}

// CachedSearcher memoizes successful lookups and collapses concurrent
// lookups of the same term into one upstream call. Failures are not cached.
type CachedSearcher struct {
	next  Searcher
	cache *gocache.Cache
	group singleflight.Group
}

func NewCachedSearcher(next Searcher, ttl time.Duration) *CachedSearcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSearcher{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedSearcher) Search(ctx context.Context, term string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(term))
	if v, ok := c.cache.Get(key); ok {
		return v.(string), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		url, err := c.next.Search(ctx, term)
		if err != nil {
			return "", err
		}
		if url != "" {
			c.cache.SetDefault(key, url)
		}
		return url, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the number of cached terms.
func (c *CachedSearcher) Len() int {
	return c.cache.ItemCount()
}
