package dictgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter prometheus.Counter
//	    hitCounter    prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordInsert(hit bool, duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record hit state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insertion (copy or zero-copy).
	// hit reports whether an existing record was reused instead of a new
	// one being stored; err is nil if successful.
	RecordInsert(hit bool, duration time.Duration, err error)

	// RecordDup is called after each duplication.
	RecordDup(duration time.Duration, err error)

	// RecordRemove is called after each removal. freed reports whether the
	// refcount reached zero and the record's buffer was released.
	RecordRemove(freed bool, duration time.Duration, err error)

	// RecordLeak is called once per record still referenced at Close,
	// with the record's remaining refcount.
	RecordLeak(refcount uint32)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordDup(time.Duration, error)          {}
func (NoopMetricsCollector) RecordRemove(bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordLeak(uint32)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertHits       atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	DupCount         atomic.Int64
	DupErrors        atomic.Int64
	RemoveCount      atomic.Int64
	RemoveFrees      atomic.Int64
	RemoveErrors     atomic.Int64
	LeakCount        atomic.Int64
	LeakedRefs       atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(hit bool, duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.InsertHits.Add(1)
	}
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordDup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDup(duration time.Duration, err error) {
	b.DupCount.Add(1)
	if err != nil {
		b.DupErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(freed bool, duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if freed {
		b.RemoveFrees.Add(1)
	}
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordLeak implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLeak(refcount uint32) {
	b.LeakCount.Add(1)
	b.LeakedRefs.Add(int64(refcount))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertHits:     b.InsertHits.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: b.getAvgInsertNanos(),
		DupCount:       b.DupCount.Load(),
		DupErrors:      b.DupErrors.Load(),
		RemoveCount:    b.RemoveCount.Load(),
		RemoveFrees:    b.RemoveFrees.Load(),
		RemoveErrors:   b.RemoveErrors.Load(),
		LeakCount:      b.LeakCount.Load(),
		LeakedRefs:     b.LeakedRefs.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertHits     int64
	InsertErrors   int64
	InsertAvgNanos int64
	DupCount       int64
	DupErrors      int64
	RemoveCount    int64
	RemoveFrees    int64
	RemoveErrors   int64
	LeakCount      int64
	LeakedRefs     int64
}
