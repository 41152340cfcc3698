package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// responseCache holds rendered payloads for the aggregate read endpoints.
// Entries expire by time only; writes do not invalidate them.
type responseCache struct {
	lru *expirable.LRU[string, gin.H]
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		lru: expirable.NewLRU[string, gin.H](32, nil, ttl),
	}
}

func (c *responseCache) Get(key string) (gin.H, bool) {
	return c.lru.Get(key)
}

func (c *responseCache) Set(key string, value gin.H) {
	c.lru.Add(key, value)
}
