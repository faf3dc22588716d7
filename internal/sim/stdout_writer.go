// Writer implementation printing metrics to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"meshjam-sim/internal/metrics"
)

// StdoutWriter prints metrics records to STDOUT as JSON lines.
type StdoutWriter struct{}

// WriteMetrics outputs a single record.
func (w *StdoutWriter) WriteMetrics(rec metrics.Record) error {
	data, _ := json.Marshal(rec)
	fmt.Println(string(data))
	return nil
}

// WriteMetricsBatch outputs multiple records.
func (w *StdoutWriter) WriteMetricsBatch(recs []metrics.Record) error {
	for _, r := range recs {
		_ = w.WriteMetrics(r)
	}
	return nil
}
