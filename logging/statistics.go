package logging

import (
	"sort"
	"sync"
	"time"
)

// Statistics collects in-memory request statistics for the service
type Statistics struct {
	uniqueVisitors map[string]time.Time // IP -> last visit time
	endpoints      map[string]int       // endpoint -> request count
	totalRequests  int
	errorCount     int
	totalLatency   float64 // milliseconds
	devMode        bool
	startedAt      time.Time
	mutex          sync.RWMutex
}

// EndpointCount is the number of requests one endpoint received
type EndpointCount struct {
	Endpoint string `json:"endpoint"`
	Requests int    `json:"requests"`
}

// NewStatistics creates an empty collector. In dev mode GetStatistics also
// reports per-endpoint counts.
func NewStatistics(devMode bool) *Statistics {
	return &Statistics{
		uniqueVisitors: make(map[string]time.Time),
		endpoints:      make(map[string]int),
		devMode:        devMode,
		startedAt:      time.Now(),
	}
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.uniqueVisitors[ip] = time.Now()
}

// TrackRequest records a finished request
func (s *Statistics) TrackRequest(endpoint string, latency time.Duration, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.totalRequests++
	if endpoint != "" {
		s.endpoints[endpoint]++
	}
	if hasError {
		s.errorCount++
	}
	s.totalLatency += float64(latency.Microseconds()) / 1000
}

// TotalRequests returns the number of tracked requests
func (s *Statistics) TotalRequests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.totalRequests
}

func (s *Statistics) uniqueVisitorsLocked(since time.Duration) int {
	count := 0
	cutoff := time.Now().Add(-since)
	for _, lastVisit := range s.uniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.uniqueVisitorsLocked(24 * time.Hour)
}

func (s *Statistics) errorRateLocked() float64 {
	if s.totalRequests == 0 {
		return 0
	}
	return float64(s.errorCount) / float64(s.totalRequests) * 100
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRateLocked()
}

func (s *Statistics) popularEndpointsLocked(n int) []EndpointCount {
	counts := make([]EndpointCount, 0, len(s.endpoints))
	for endpoint, requests := range s.endpoints {
		counts = append(counts, EndpointCount{Endpoint: endpoint, Requests: requests})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Requests != counts[j].Requests {
			return counts[i].Requests > counts[j].Requests
		}
		return counts[i].Endpoint < counts[j].Endpoint
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// GetPopularEndpoints returns the n most requested endpoints
func (s *Statistics) GetPopularEndpoints(n int) []EndpointCount {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.popularEndpointsLocked(n)
}

// PruneVisitors forgets visitors not seen within maxAge
func (s *Statistics) PruneVisitors(maxAge time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for ip, lastVisit := range s.uniqueVisitors {
		if lastVisit.Before(cutoff) {
			delete(s.uniqueVisitors, ip)
		}
	}
}

// GetStatistics returns a snapshot of the current statistics. Endpoint
// breakdowns are only included in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	averageLatency := 0.0
	if s.totalRequests > 0 {
		averageLatency = s.totalLatency / float64(s.totalRequests)
	}

	result := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsLocked(24 * time.Hour),
		"totalRequests":     s.totalRequests,
		"errorRate":         s.errorRateLocked(),
		"averageLoadTime":   averageLatency,
		"uptimeSeconds":     time.Since(s.startedAt).Seconds(),
	}

	if s.devMode {
		result["popularEndpoints"] = s.popularEndpointsLocked(5)
	}

	return result
}
