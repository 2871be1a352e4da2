package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"wareeth/internal/app"
	"wareeth/internal/domain"
)

// CatalogCache fronts a question catalog and caches the pool-wide reads
// (categories, statistics) with a TTL to avoid repeated store hits.
// Sampling always goes to the backing catalog.
type CatalogCache struct {
	catalog app.QuestionCatalog
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group
	rnd     *rand.Rand

	mu            sync.RWMutex
	categories    []string
	categoriesExp time.Time
	stats         domain.QuestionStatistics
	statsExp      time.Time
}

func NewCatalogCache(catalog app.QuestionCatalog, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		catalog: catalog,
		ttl:     ttl,
		clock:   time.Now,
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
	c.mu.Lock()
	c.categoriesExp = time.Time{}
	c.statsExp = time.Time{}
	c.mu.Unlock()
	return id, nil
}

func (c *CatalogCache) Categories(ctx context.Context) ([]string, error) {
	now := c.clock()

	c.mu.RLock()
	if c.categoriesExp.After(now) {
		cached := c.categories
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("categories", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.categoriesExp.After(now) {
			cached := c.categories
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		categories, err := c.catalog.Categories(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.categories = categories
		c.categoriesExp = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (c *CatalogCache) Statistics(ctx context.Context) (domain.QuestionStatistics, error) {
	now := c.clock()

	c.mu.RLock()
	if c.statsExp.After(now) {
		cached := c.stats
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("statistics", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.statsExp.After(now) {
			cached := c.stats
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		stats, err := c.catalog.Statistics(ctx)
		if err != nil {
			return domain.QuestionStatistics{}, err
		}
		c.mu.Lock()
		c.stats = stats
		c.statsExp = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return stats, nil
	})
	if err != nil {
		return domain.QuestionStatistics{}, err
	}
	return result.(domain.QuestionStatistics), nil
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
