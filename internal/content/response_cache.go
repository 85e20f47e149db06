package content

import (
	"errors"

	"github.com/2beens/portfolio/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// ResponseCache keeps rendered JSON bodies. Content never changes while the
// process runs, so entries never expire; freecache evicts when full.
type ResponseCache struct {
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewResponseCache(sizeMB int, metricsManager *metrics.Manager) *ResponseCache {
	return &ResponseCache{
		cache:          freecache.NewCache(sizeMB * megabyte),
		metricsManager: metricsManager,
	}
}

// GetOrRender returns the cached body for key, rendering and storing it on a miss.
func (c *ResponseCache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	cacheKey := []byte(key)
	if body, err := c.cache.Get(cacheKey); err == nil {
		c.metricsManager.CounterContentCacheHits.Inc()
		return body, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("content cache get [%s]: %s", key, err)
	}

	c.metricsManager.CounterContentCacheMisses.Inc()

	body, err := render()
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(cacheKey, body, 0); err != nil {
		// too large for the cache, serve it anyway
		log.Debugf("content cache set [%s]: %s", key, err)
	}

	return body, nil
}

func (c *ResponseCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
