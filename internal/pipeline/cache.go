package pipeline

import (
	"container/list"
	"context"
	"sync"

	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/observability"
)

// CachedSimulator wraps a Runner with an in-memory LRU cache keyed by report ID.
// Cached reports keep the GeneratedAt of the run that produced them.
type CachedSimulator struct {
	inner    Runner
	settings domain.SimulationSettings
	cache    *lruCache
	metrics  *observability.Metrics
}

// NewCachedSimulator creates a cache decorator around a runner. The settings
// must match the ones the runner applies, since they are part of the key.
func NewCachedSimulator(inner Runner, settings domain.SimulationSettings, maxEntries int, metrics *observability.Metrics) *CachedSimulator {
	return &CachedSimulator{
		inner:    inner,
		settings: settings,
		cache:    newLRUCache(maxEntries),
		metrics:  metrics,
	}
}

func (c *CachedSimulator) Simulate(ctx context.Context, p domain.ImpactParameters) (domain.ImpactReport, error) {
	key := domain.ReportID(p, c.settings)
	if report, ok := c.cache.get(key); ok {
		c.metrics.ReportCache.WithLabelValues("hit").Inc()
		return report, nil
	}
	c.metrics.ReportCache.WithLabelValues("miss").Inc()

	report, err := c.inner.Simulate(ctx, p)
	if err != nil {
		return report, err
	}
	c.cache.put(key, report)
	return report, nil
}

// Add seeds the cache with an already computed report.
func (c *CachedSimulator) Add(report domain.ImpactReport) {
	c.cache.put(report.ID, report)
}

// lruCache holds reports by ID, evicting the least recently used once full.
// The list front is the most recent entry.
type lruCache struct {
	maxEntries int

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element
}

type cachedReport struct {
	id     string
	report domain.ImpactReport
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
	}
}

func (c *lruCache) get(id string) (domain.ImpactReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id]
	if !ok {
		return domain.ImpactReport{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cachedReport).report, true
}

func (c *lruCache) put(id string, report domain.ImpactReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[id]; ok {
		el.Value.(*cachedReport).report = report
		c.order.MoveToFront(el)
		return
	}

	c.items[id] = c.order.PushFront(&cachedReport{id: id, report: report})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cachedReport).id)
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
