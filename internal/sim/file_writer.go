package sim

import (
	"encoding/json"
	"os"

	"meshjam-sim/internal/metrics"
)

// FileWriter writes metrics records and optional per-tick snapshots to JSONL
// files.
type FileWriter struct {
	metricsFile *os.File
	snapFile    *os.File
	metricsEnc  *json.Encoder
	snapEnc     *json.Encoder
}

// NewFileWriter creates a FileWriter. snapshotPath may be empty to skip the
// snapshot log.
func NewFileWriter(metricsPath, snapshotPath string) (*FileWriter, error) {
	mf, err := os.Create(metricsPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{metricsFile: mf, metricsEnc: json.NewEncoder(mf)}
	if snapshotPath != "" {
		sf, err := os.Create(snapshotPath)
		if err != nil {
			mf.Close()
			return nil, err
		}
		fw.snapFile = sf
		fw.snapEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// WriteMetrics logs a single metrics record.
func (f *FileWriter) WriteMetrics(rec metrics.Record) error {
	return f.metricsEnc.Encode(rec)
}

// WriteMetricsBatch logs multiple metrics records.
func (f *FileWriter) WriteMetricsBatch(recs []metrics.Record) error {
	for _, r := range recs {
		if err := f.WriteMetrics(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot logs a render snapshot, if enabled.
func (f *FileWriter) WriteSnapshot(snap Snapshot) error {
	if f.snapEnc == nil {
		return nil
	}
	return f.snapEnc.Encode(snap)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.metricsFile != nil {
		if e := f.metricsFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.snapFile != nil {
		if e := f.snapFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
