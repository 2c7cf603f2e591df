package models

import "time"

// SystemMetrics is a point-in-time summary of service counters.
type SystemMetrics struct {
	CacheHitRatio          float64   `json:"cache_hit_ratio"`
	CacheHits              uint64    `json:"cache_hits"`
	CacheMisses            uint64    `json:"cache_misses"`
	RequestsTotal          uint64    `json:"requests_total"`
	StoreRequests          uint64    `json:"store_requests"`
	StoreFailures          uint64    `json:"store_failures"`
	AverageStoreDurationMs float64   `json:"avg_store_duration_ms"`
	Goroutines             int       `json:"goroutines"`
	GeneratedAt            time.Time `json:"generated_at"`
}
