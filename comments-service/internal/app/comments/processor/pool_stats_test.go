package processor

import (
	"database/sql"
	"sync"
	"testing"

	"commentwidget/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	mu    sync.Mutex
	stats sql.DBStats
	calls int
}

func (f *fakeStats) Stats() sql.DBStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.stats
}

func TestPoolStatsCollector_Collect(t *testing.T) {
	source := &fakeStats{stats: sql.DBStats{Idle: 3, InUse: 2, WaitCount: 7}}
	collector := NewPoolStatsCollector(source, "pool-test")

	collector.Collect()

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.DbConnectionsOpen.WithLabelValues("pool-test", "idle")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.DbConnectionsOpen.WithLabelValues("pool-test", "in_use")))
	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.DbConnectionsWaitTotal.WithLabelValues("pool-test")))
}

func TestPoolStatsCollector_StartCollectsImmediately(t *testing.T) {
	source := &fakeStats{stats: sql.DBStats{Idle: 1}}
	collector := NewPoolStatsCollector(source, "pool-test-start")

	require.NoError(t, collector.Start("@every 1h"))
	defer collector.Stop()

	assert.Len(t, collector.Entries(), 1)
	source.mu.Lock()
	assert.Equal(t, 1, source.calls)
	source.mu.Unlock()
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DbConnectionsOpen.WithLabelValues("pool-test-start", "idle")))
}

func TestPoolStatsCollector_InvalidSchedule(t *testing.T) {
	collector := NewPoolStatsCollector(&fakeStats{}, "pool-test-invalid")

	err := collector.Start("not a schedule")

	assert.Error(t, err)
	assert.Empty(t, collector.Entries())
}
