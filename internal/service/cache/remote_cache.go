package cache

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"time"

	"FinGrade/internal/domain/models"
	pkgcache "FinGrade/pkg/cache"
)

// RemoteResultCache shares analysis results across instances through a
// pkg/cache backend (Redis, or layered memory over Redis). Lookup failures
// degrade to cache misses; the pipeline recomputes. Results are stored as
// JSON strings so both cache layers handle them uniformly.
type RemoteResultCache struct {
	svc pkgcache.Service
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisResultCache creates a Redis-backed result cache.
func NewRedisResultCache(cfg RedisConfig) (*RemoteResultCache, error) {
	rc, err := pkgcache.NewRedisCache(redisOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	return &RemoteResultCache{svc: rc}, nil
}

// NewLayeredResultCache creates a layered cache with an in-process L1 in
// front of Redis.
func NewLayeredResultCache(cfg RedisConfig, memEntries int) (*RemoteResultCache, error) {
	rc, err := pkgcache.NewRedisCache(redisOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	lc := pkgcache.NewLayeredCache(rc, pkgcache.WithLayeredMemorySize(memEntries))
	return &RemoteResultCache{svc: lc}, nil
}

func redisOptions(cfg RedisConfig) []pkgcache.RedisOption {
	host, portStr, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		host = cfg.Addr
		portStr = "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "fingrade:result"
	}
	return []pkgcache.RedisOption{
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Password),
		pkgcache.WithRedisDB(cfg.DB),
		pkgcache.WithRedisPrefix(prefix),
	}
}

func (r *RemoteResultCache) Get(key string) (*models.CompanyResult, bool) {
	var raw string
	if err := r.svc.Get(context.Background(), key, &raw); err != nil {
		return nil, false
	}
	var result models.CompanyResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (r *RemoteResultCache) Set(key string, result *models.CompanyResult, ttl time.Duration) {
	b, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = r.svc.Set(context.Background(), key, string(b), ttl)
}

// Len reports 0 for remote backends; entry counts are not tracked there.
func (r *RemoteResultCache) Len() int { return 0 }

func (r *RemoteResultCache) Purge() {
	_ = r.svc.DeleteByPattern(context.Background(), "*")
}
