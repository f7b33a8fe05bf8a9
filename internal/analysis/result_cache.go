package analysis

import (
	"sync"
	"time"

	"solverpro/internal/models"
)

// ResultCache keeps successful analyses for a while so a submission can
// reference one by request id. Entries live in memory with a TTL.
type ResultCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type cacheEntry struct {
	analysis  models.AIAnalysis
	expiresAt time.Time
}

// NewResultCache creates a cache and starts its background sweeper.
// Call Close to stop the sweeper.
func NewResultCache(ttl time.Duration) *ResultCache {
	rc := &ResultCache{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	go rc.cleanupLoop(time.Minute)

	return rc
}

// Set stores a copy of analysis under requestID.
func (rc *ResultCache) Set(requestID string, analysis *models.AIAnalysis) {
	if analysis == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache[requestID] = &cacheEntry{
		analysis:  *analysis,
		expiresAt: rc.now().Add(rc.ttl),
	}
}

// Get returns a copy of the cached analysis if present and not expired.
func (rc *ResultCache) Get(requestID string) (*models.AIAnalysis, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	entry, exists := rc.cache[requestID]
	if !exists || rc.now().After(entry.expiresAt) {
		return nil, false
	}

	analysis := entry.analysis
	return &analysis, true
}

// Delete drops an entry once a submission has used it.
func (rc *ResultCache) Delete(requestID string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	delete(rc.cache, requestID)
}

func (rc *ResultCache) Close() {
	rc.once.Do(func() { close(rc.stop) })
}

func (rc *ResultCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rc.cleanup()
		case <-rc.stop:
			return
		}
	}
}

func (rc *ResultCache) cleanup() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	now := rc.now()
	for requestID, entry := range rc.cache {
		if now.After(entry.expiresAt) {
			delete(rc.cache, requestID)
		}
	}
}
