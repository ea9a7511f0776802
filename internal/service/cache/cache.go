// Package cache holds the result cache backends used by the batch engine:
// an in-process TTL cache and remote caches built on pkg/cache.
package cache

import (
	drepo "FinGrade/internal/domain/repository"
)

var (
	_ drepo.ResultCache = (*ResultCache)(nil)
	_ drepo.ResultCache = (*RemoteResultCache)(nil)
)
