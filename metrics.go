package cayley

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting search metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    layerSize  prometheus.Histogram
//	    bfsSeconds prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordLayer(layer, size int, duration time.Duration) {
//	    p.layerSize.Observe(float64(size))
//	}
type MetricsCollector interface {
	// RecordLayer is called after each explored layer with its index, its
	// number of states and the time spent producing it.
	RecordLayer(layer, size int, duration time.Duration)

	// RecordBFS is called once per BFS call. vertices is the number of
	// states visited, err is nil if the search returned a result.
	RecordBFS(layers, vertices int, completed bool, duration time.Duration, err error)

	// RecordMemoryRelease is called whenever a reclaim actually ran.
	RecordMemoryRelease(estimatedBytes int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLayer(int, int, time.Duration)            {}
func (NoopMetricsCollector) RecordBFS(int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordMemoryRelease(int64)                      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LayerCount       atomic.Int64
	LayerStates      atomic.Int64
	LayerTotalNanos  atomic.Int64
	MaxLayerSize     atomic.Int64
	BFSCount         atomic.Int64
	BFSCompleted     atomic.Int64
	BFSErrors        atomic.Int64
	BFSTotalNanos    atomic.Int64
	MemoryReleases   atomic.Int64
	ReleasedEstimate atomic.Int64
}

// RecordLayer implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLayer(layer, size int, duration time.Duration) {
	b.LayerCount.Add(1)
	b.LayerStates.Add(int64(size))
	b.LayerTotalNanos.Add(duration.Nanoseconds())
	for {
		cur := b.MaxLayerSize.Load()
		if int64(size) <= cur || b.MaxLayerSize.CompareAndSwap(cur, int64(size)) {
			break
		}
	}
}

// RecordBFS implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBFS(layers, vertices int, completed bool, duration time.Duration, err error) {
	b.BFSCount.Add(1)
	b.BFSTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BFSErrors.Add(1)
		return
	}
	if completed {
		b.BFSCompleted.Add(1)
	}
}

// RecordMemoryRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMemoryRelease(estimatedBytes int64) {
	b.MemoryReleases.Add(1)
	b.ReleasedEstimate.Add(estimatedBytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LayerCount:     b.LayerCount.Load(),
		LayerStates:    b.LayerStates.Load(),
		LayerAvgNanos:  b.getAvgLayerNanos(),
		MaxLayerSize:   b.MaxLayerSize.Load(),
		BFSCount:       b.BFSCount.Load(),
		BFSCompleted:   b.BFSCompleted.Load(),
		BFSErrors:      b.BFSErrors.Load(),
		BFSAvgNanos:    b.getAvgBFSNanos(),
		MemoryReleases: b.MemoryReleases.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLayerNanos() int64 {
	count := b.LayerCount.Load()
	if count == 0 {
		return 0
	}
	return b.LayerTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgBFSNanos() int64 {
	count := b.BFSCount.Load()
	if count == 0 {
		return 0
	}
	return b.BFSTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LayerCount     int64
	LayerStates    int64
	LayerAvgNanos  int64
	MaxLayerSize   int64
	BFSCount       int64
	BFSCompleted   int64
	BFSErrors      int64
	BFSAvgNanos    int64
	MemoryReleases int64
}
