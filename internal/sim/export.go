package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"meshjam-sim/internal/metrics"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"timestamp", "attack", "pdr", "plr", "throughput",
	"latency_ms", "energy", "avg_link_quality", "jamming_power",
}

// WriteCSV serializes metrics records as CSV in the fixed column order.
func WriteCSV(w io.Writer, records []metrics.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.Attack,
			fmt.Sprintf("%.3f", r.PDR),
			fmt.Sprintf("%.3f", r.PLR),
			fmt.Sprintf("%.2f", r.Throughput),
			fmt.Sprintf("%.2f", r.LatencyMs),
			fmt.Sprintf("%.2f", r.Energy),
			fmt.Sprintf("%.3f", r.AvgLinkQuality),
			fmt.Sprintf("%.3f", r.JammingPower),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV serializes the full metrics history.
func (s *Simulator) ExportCSV(w io.Writer) error {
	return WriteCSV(w, s.MetricsHistory())
}
