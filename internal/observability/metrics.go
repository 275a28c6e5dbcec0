package observability

import (
	"sync"
	"time"
)

type routeKey struct {
	Path   string
	Method string
	Status int
}

type routeStats struct {
	Count         int64
	TotalDuration time.Duration
}

// Metrics keeps in-memory request and error counters per route.
type Metrics struct {
	mu       sync.Mutex
	requests map[routeKey]routeStats
	errors   map[string]int64
}

// RouteSnapshot is one row of the metrics snapshot.
type RouteSnapshot struct {
	Path       string        `json:"path"`
	Method     string        `json:"method"`
	Status     int           `json:"status"`
	Count      int64         `json:"count"`
	AvgLatency time.Duration `json:"avg_latency"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[routeKey]routeStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey{Path: path, Method: method, Status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.requests[key]
	stats.Count++
	stats.TotalDuration += duration
	m.requests[key] = stats
}

// RecordError counts an error response by route and domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+"|"+method+"|"+code]++
}

// Snapshot returns the current counters for the metrics endpoint.
func (m *Metrics) Snapshot() ([]RouteSnapshot, map[string]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make([]RouteSnapshot, 0, len(m.requests))
	for key, stats := range m.requests {
		avg := time.Duration(0)
		if stats.Count > 0 {
			avg = stats.TotalDuration / time.Duration(stats.Count)
		}
		routes = append(routes, RouteSnapshot{
			Path:       key.Path,
			Method:     key.Method,
			Status:     key.Status,
			Count:      stats.Count,
			AvgLatency: avg,
		})
	}

	errors := make(map[string]int64, len(m.errors))
	for key, count := range m.errors {
		errors[key] = count
	}
	return routes, errors
}
