package predict

import (
	"sync"

	"github.com/ostapenko/lategoal/internal/pkg/models"
	"github.com/ostapenko/lategoal/internal/pkg/storage"
)

// PatternCache memoizes pattern lookups (including negative ones) for the
// duration of a single prediction run. Create one per run and discard it:
// the underlying rows are wholesale-replaced by the aggregation batch, so a
// cache must never outlive one aggregation cycle.
type PatternCache struct {
	mu      sync.RWMutex
	entries map[storage.PatternKey]*models.IntervalPattern
}

func NewPatternCache() *PatternCache {
	return &PatternCache{entries: make(map[storage.PatternKey]*models.IntervalPattern)}
}

func (c *PatternCache) get(key storage.PatternKey) (*models.IntervalPattern, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[key]
	return p, ok
}

func (c *PatternCache) put(key storage.PatternKey, p *models.IntervalPattern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = p
}
