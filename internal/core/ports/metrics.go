package ports

// OperationMetrics receives domain-level counters from services. Implementations
// must be safe for concurrent use.
type OperationMetrics interface {
	ObserveOperation(operation string)
	CacheHit(cacheType string)
	CacheMiss(cacheType string)
	CacheInvalidationFailed(cacheType string)
}
