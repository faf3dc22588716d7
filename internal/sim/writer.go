package sim

import "meshjam-sim/internal/metrics"

// MetricsWriter is an interface to support different output writers.
type MetricsWriter interface {
	WriteMetrics(metrics.Record) error
}

// Optional: writers can also support batch mode.
type batchMetricsWriter interface {
	WriteMetricsBatch([]metrics.Record) error
}

// SnapshotWriter handles per-tick render snapshots.
type SnapshotWriter interface {
	WriteSnapshot(Snapshot) error
}
