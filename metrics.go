package openms

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIngest is called after each ingestion batch.
	// count is the number of features added, err is nil if successful.
	RecordIngest(count int, duration time.Duration, err error)

	// RecordBuild is called after each tree rebuild.
	// size is the number of indexed features.
	RecordBuild(size int, duration time.Duration)

	// RecordNeighborhood is called after each neighborhood query.
	RecordNeighborhood(duration time.Duration, err error)

	// RecordRegion is called after each region query.
	RecordRegion(duration time.Duration, err error)

	// RecordTransform is called after each transformation application.
	// maps is the number of correction models applied.
	RecordTransform(maps int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIngest(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordBuild(int, time.Duration)            {}
func (NoopMetricsCollector) RecordNeighborhood(time.Duration, error)   {}
func (NoopMetricsCollector) RecordRegion(time.Duration, error)         {}
func (NoopMetricsCollector) RecordTransform(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IngestCount        atomic.Int64
	IngestErrors       atomic.Int64
	IngestFeatures     atomic.Int64
	BuildCount         atomic.Int64
	BuildTotalNanos    atomic.Int64
	NeighborhoodCount  atomic.Int64
	NeighborhoodErrors atomic.Int64
	NeighborhoodNanos  atomic.Int64
	RegionCount        atomic.Int64
	RegionErrors       atomic.Int64
	RegionNanos        atomic.Int64
	TransformCount     atomic.Int64
	TransformErrors    atomic.Int64
}

// RecordIngest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIngest(count int, duration time.Duration, err error) {
	b.IngestCount.Add(1)
	b.IngestFeatures.Add(int64(count))
	if err != nil {
		b.IngestErrors.Add(1)
	}
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(size int, duration time.Duration) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordNeighborhood implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighborhood(duration time.Duration, err error) {
	b.NeighborhoodCount.Add(1)
	b.NeighborhoodNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.NeighborhoodErrors.Add(1)
	}
}

// RecordRegion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRegion(duration time.Duration, err error) {
	b.RegionCount.Add(1)
	b.RegionNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RegionErrors.Add(1)
	}
}

// RecordTransform implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransform(maps int, duration time.Duration, err error) {
	b.TransformCount.Add(1)
	if err != nil {
		b.TransformErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IngestCount:           b.IngestCount.Load(),
		IngestErrors:          b.IngestErrors.Load(),
		IngestFeatures:        b.IngestFeatures.Load(),
		BuildCount:            b.BuildCount.Load(),
		BuildAvgNanos:         avgNanos(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		NeighborhoodCount:     b.NeighborhoodCount.Load(),
		NeighborhoodErrors:    b.NeighborhoodErrors.Load(),
		NeighborhoodAvgNanos:  avgNanos(b.NeighborhoodNanos.Load(), b.NeighborhoodCount.Load()),
		RegionCount:           b.RegionCount.Load(),
		RegionErrors:          b.RegionErrors.Load(),
		RegionAvgNanos:        avgNanos(b.RegionNanos.Load(), b.RegionCount.Load()),
		TransformCount:        b.TransformCount.Load(),
		TransformErrors:       b.TransformErrors.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IngestCount          int64
	IngestErrors         int64
	IngestFeatures       int64
	BuildCount           int64
	BuildAvgNanos        int64
	NeighborhoodCount    int64
	NeighborhoodErrors   int64
	NeighborhoodAvgNanos int64
	RegionCount          int64
	RegionErrors         int64
	RegionAvgNanos       int64
	TransformCount       int64
	TransformErrors      int64
}
