package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"wareeth/internal/app"
	"wareeth/internal/domain"
)

const (
	categoriesKey = "wareeth:questions:categories"
	statsKey      = "wareeth:questions:statistics"
)

// CatalogCache fronts a question catalog and caches the pool-wide reads
// (categories, statistics) as JSON values in Redis. Sampling always goes
// to the backing catalog; the random ordering must not be cached.
type CatalogCache struct {
	client  *redis.Client
	catalog app.QuestionCatalog
	ttl     time.Duration
	sf      singleflight.Group
	rnd     *rand.Rand
}

func NewCatalogCache(client *redis.Client, catalog app.QuestionCatalog, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client:  client,
		catalog: catalog,
		ttl:     ttl,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) Sample(ctx context.Context, count int, difficulty, category string) ([]domain.Question, error) {
	return c.catalog.Sample(ctx, count, difficulty, category)
}

// Add writes through and drops the cached reads.
func (c *CatalogCache) Add(ctx context.Context, q domain.Question) (int64, error) {
	id, err := c.catalog.Add(ctx, q)
	if err != nil {
		return 0, err
	}
	_ = c.client.Del(ctx, categoriesKey, statsKey).Err()
	return id, nil
}

func (c *CatalogCache) Categories(ctx context.Context) ([]string, error) {
	var cached []string
	if ok, _ := c.lookup(ctx, categoriesKey, &cached); ok {
		return cached, nil
	}

	result, err, _ := c.sf.Do(categoriesKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		var cached []string
		if ok, _ := c.lookup(ctx, categoriesKey, &cached); ok {
			return cached, nil
		}
		categories, err := c.catalog.Categories(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, categoriesKey, categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (c *CatalogCache) Statistics(ctx context.Context) (domain.QuestionStatistics, error) {
	var cached domain.QuestionStatistics
	if ok, _ := c.lookup(ctx, statsKey, &cached); ok {
		return cached, nil
	}

	result, err, _ := c.sf.Do(statsKey, func() (interface{}, error) {
		var cached domain.QuestionStatistics
		if ok, _ := c.lookup(ctx, statsKey, &cached); ok {
			return cached, nil
		}
		stats, err := c.catalog.Statistics(ctx)
		if err != nil {
			return domain.QuestionStatistics{}, err
		}
		c.store(ctx, statsKey, stats)
		return stats, nil
	})
	if err != nil {
		return domain.QuestionStatistics{}, err
	}
	return result.(domain.QuestionStatistics), nil
}

func (c *CatalogCache) lookup(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// store is best-effort; a cache write failure only costs the next reader
// a catalog hit.
func (c *CatalogCache) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
