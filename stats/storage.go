package stats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats represents usage counters for a specific month
type MonthlyStats struct {
	Analyses          int       `json:"analyses"`
	Generations       int       `json:"generations"`
	ProviderResponses int       `json:"provider_responses"`
	Fallbacks         int       `json:"fallbacks"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Storage handles persistent storage of usage counters. Only counts are kept,
// never the scored or generated content.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
		now:         time.Now,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

// load reads statistics from file
func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := json.Unmarshal(data, &s.stats); err != nil {
		return err
	}

	// a "null" document or null months must not leave nil entries behind
	if s.stats == nil {
		s.stats = make(map[string]*MonthlyStats)
	}
	for month, stats := range s.stats {
		if stats == nil {
			delete(s.stats, month)
		}
	}
	return nil
}

// save writes statistics to file
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write to temporary file first, the rename is atomic
	tempFile, err := os.CreateTemp(filepath.Dir(s.filePath), "stats-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempFile.Name(), s.filePath); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// backgroundWriter handles periodic writes to disk
func (s *Storage) backgroundWriter() {
	defer close(s.stopped)

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveAndLog()
		case <-ticker.C:
			s.saveAndLog()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) saveAndLog() {
	if err := s.save(); err != nil {
		slog.Error("failed to persist usage statistics", "error", err)
	}
}

func (s *Storage) currentMonth() string {
	return s.now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// IncrementStats adds to the counters of the current month
func (s *Storage) IncrementStats(analyses, generations, providerResponses, fallbacks int) {
	month := s.currentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}

	stats.Analyses += analyses
	stats.Generations += generations
	stats.ProviderResponses += providerResponses
	stats.Fallbacks += fallbacks
	stats.LastUpdated = s.now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// RecordAnalysis counts one scoring request
func (s *Storage) RecordAnalysis() {
	s.IncrementStats(1, 0, 0, 0)
}

// RecordGeneration counts one generation and whether the provider answered it
func (s *Storage) RecordGeneration(fromProvider bool) {
	if fromProvider {
		s.IncrementStats(0, 1, 1, 0)
		return
	}
	s.IncrementStats(0, 1, 0, 1)
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := s.currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// Cleanup removes statistics older than retainMonths months, counting the
// current month as one.
func (s *Storage) Cleanup(retainMonths int) {
	if retainMonths < 1 {
		retainMonths = 1
	}

	// first of the month, AddDate would skip short months from the 31st
	now := s.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	keep := make(map[string]bool, retainMonths)
	for i := 0; i < retainMonths; i++ {
		keep[current.AddDate(0, -i, 0).Format("2006-01")] = true
	}

	s.mutex.Lock()
	for key := range s.stats {
		if !keep[key] {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months that have statistics, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Shutdown stops the background writer and flushes the counters to disk
func (s *Storage) Shutdown() error {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
	return s.save()
}
