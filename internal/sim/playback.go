package sim

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"meshjam-sim/internal/metrics"
)

// ReplayLog replays metrics records from r to writer. A speed >0 accelerates
// playback according to the recorded timestamps; if speed <= 0, no artificial
// delay is inserted.
func ReplayLog(r io.Reader, writer MetricsWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var rec metrics.Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !prev.IsZero() && speed > 0 {
			diff := rec.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.WriteMetrics(rec); err != nil {
			return err
		}
		prev = rec.Timestamp
	}
}

// ReplayLogFile opens a file and replays its metrics records.
func ReplayLogFile(path string, writer MetricsWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
