package sim

import "meshjam-sim/internal/metrics"

// MultiWriter fans out metrics records and snapshots to multiple writers.
type MultiWriter struct {
	metricsWriters []MetricsWriter
	snapWriters    []SnapshotWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(mws []MetricsWriter, sws []SnapshotWriter) *MultiWriter {
	return &MultiWriter{metricsWriters: mws, snapWriters: sws}
}

// WriteMetrics sends a record to all writers.
func (mw *MultiWriter) WriteMetrics(rec metrics.Record) error {
	for _, w := range mw.metricsWriters {
		if err := w.WriteMetrics(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteMetricsBatch sends multiple records to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteMetricsBatch(recs []metrics.Record) error {
	for _, w := range mw.metricsWriters {
		if bw, ok := w.(batchMetricsWriter); ok {
			if err := bw.WriteMetricsBatch(recs); err != nil {
				return err
			}
			continue
		}
		for _, r := range recs {
			if err := w.WriteMetrics(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSnapshot sends a snapshot to all snapshot writers.
func (mw *MultiWriter) WriteSnapshot(snap Snapshot) error {
	for _, w := range mw.snapWriters {
		if err := w.WriteSnapshot(snap); err != nil {
			return err
		}
	}
	return nil
}
