package stats

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	require.NoError(t, err)

	t.Run("IncrementStats", func(t *testing.T) {
		storage.IncrementStats(1, 2, 3, 4)
		stats := storage.GetCurrentStats()

		assert.Equal(t, 1, stats.Analyses)
		assert.Equal(t, 2, stats.Generations)
		assert.Equal(t, 3, stats.ProviderResponses)
		assert.Equal(t, 4, stats.Fallbacks)
	})

	t.Run("RecordHelpers", func(t *testing.T) {
		storage.RecordAnalysis()
		storage.RecordGeneration(true)
		storage.RecordGeneration(false)
		stats := storage.GetCurrentStats()

		assert.Equal(t, 2, stats.Analyses)
		assert.Equal(t, 4, stats.Generations)
		assert.Equal(t, 4, stats.ProviderResponses)
		assert.Equal(t, 5, stats.Fallbacks)
	})

	t.Run("Persistence", func(t *testing.T) {
		require.NoError(t, storage.save())

		storage2, err := NewStorage(tempDir)
		require.NoError(t, err)
		defer storage2.Shutdown()

		stats := storage2.GetCurrentStats()
		assert.Equal(t, 2, stats.Analyses)
		assert.Equal(t, 5, stats.Fallbacks)
	})

	t.Run("Cleanup", func(t *testing.T) {
		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		oldMonth := firstOfMonth.AddDate(0, -2, 0).Format("2006-01")
		previousMonth := firstOfMonth.AddDate(0, -1, 0).Format("2006-01")
		storage.mutex.Lock()
		storage.stats[oldMonth] = &MonthlyStats{Analyses: 100}
		storage.stats[previousMonth] = &MonthlyStats{Analyses: 50}
		storage.mutex.Unlock()

		storage.Cleanup(2)

		_, oldExists := storage.GetMonthlyStats(oldMonth)
		assert.False(t, oldExists, "old stats should have been cleaned up")
		_, previousExists := storage.GetMonthlyStats(previousMonth)
		assert.True(t, previousExists)
		assert.Equal(t, []string{time.Now().Format("2006-01"), previousMonth}, storage.GetAllMonths())
	})

	t.Run("FileSize", func(t *testing.T) {
		require.NoError(t, storage.save())

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		require.NoError(t, err)
		assert.Less(t, info.Size(), int64(1024))
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					storage.IncrementStats(1, 1, 1, 1)
					storage.GetCurrentStats()
				}
			}()
		}
		wg.Wait()

		stats := storage.GetCurrentStats()
		assert.Equal(t, before.Analyses+1000, stats.Analyses)
		assert.Equal(t, before.Fallbacks+1000, stats.Fallbacks)
	})

	t.Run("Shutdown", func(t *testing.T) {
		storage.RecordAnalysis()
		require.NoError(t, storage.Shutdown())
		require.NoError(t, storage.Shutdown())

		reloaded, err := NewStorage(tempDir)
		require.NoError(t, err)
		defer reloaded.Shutdown()
		assert.Equal(t, storage.GetCurrentStats().Analyses, reloaded.GetCurrentStats().Analyses)
	})
}

func TestNewStorageRejectsCorruptFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "stats.json"), []byte("{not json"), 0644))

	_, err := NewStorage(tempDir)
	assert.Error(t, err)
}

func TestNewStorageToleratesNullEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"null document", "null"},
		{"null month", `{"2026-10": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tempDir, "stats.json"), []byte(tt.content), 0644))

			storage, err := NewStorage(tempDir)
			require.NoError(t, err)
			defer storage.Shutdown()

			storage.now = func() time.Time {
				return time.Date(2026, time.October, 5, 12, 0, 0, 0, time.UTC)
			}

			assert.NotPanics(t, func() {
				storage.RecordAnalysis()
				storage.RecordGeneration(false)
				storage.Cleanup(12)
			})

			stats := storage.GetCurrentStats()
			assert.Equal(t, 1, stats.Analyses)
			assert.Equal(t, 1, stats.Fallbacks)
			assert.Equal(t, []string{"2026-10"}, storage.GetAllMonths())
		})
	}
}

func TestCleanupAtEndOfMonth(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	defer storage.Shutdown()

	storage.now = func() time.Time {
		return time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)
	}
	storage.mutex.Lock()
	storage.stats["2026-03"] = &MonthlyStats{Analyses: 3}
	storage.stats["2026-02"] = &MonthlyStats{Analyses: 2}
	storage.stats["2026-01"] = &MonthlyStats{Analyses: 1}
	storage.mutex.Unlock()

	storage.Cleanup(2)

	assert.Equal(t, []string{"2026-03", "2026-02"}, storage.GetAllMonths())
}
