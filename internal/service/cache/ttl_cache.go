package cache

import (
	"container/list"
	"sync"
	"time"

	"FinGrade/internal/domain/models"
)

type entry struct {
	key string
	r   *models.CompanyResult
	exp time.Time
}

// ResultCache is an in-memory result cache with per-entry TTL and
// oldest-inserted eviction once capacity is reached.
type ResultCache struct {
	mu    sync.Mutex
	m     map[string]*list.Element
	order *list.List // front = oldest inserted
	max   int
}

func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		m:     make(map[string]*list.Element),
		order: list.New(),
		max:   maxEntries,
	}
}

func (c *ResultCache) Get(key string) (*models.CompanyResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.m[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.remove(el)
		return nil, false
	}
	return e.r, true
}

func (c *ResultCache) Set(key string, r *models.CompanyResult, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.m[key]; ok {
		e := el.Value.(*entry)
		e.r = r
		e.exp = exp
		return
	}
	if c.max > 0 && c.order.Len() >= c.max {
		if oldest := c.order.Front(); oldest != nil {
			c.remove(oldest)
		}
	}
	c.m[key] = c.order.PushBack(&entry{key: key, r: r, exp: exp})
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]*list.Element)
	c.order.Init()
}

func (c *ResultCache) remove(el *list.Element) {
	e := el.Value.(*entry)
	delete(c.m, e.key)
	c.order.Remove(el)
}
