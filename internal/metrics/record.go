// Metrics record types with greptime tags
package metrics

import (
	"os"
	"time"
)

// Record is one immutable aggregation-window snapshot. Numeric fields are
// rounded at emission; the aggregator's running counters stay unrounded.
type Record struct {
	Timestamp      time.Time `json:"ts"`               // TIME INDEX
	Attack         string    `json:"attack"`           // TAG
	PDR            float64   `json:"pdr"`              // FIELD
	PLR            float64   `json:"plr"`              // FIELD
	Throughput     float64   `json:"throughput"`       // FIELD
	LatencyMs      float64   `json:"latency_ms"`       // FIELD
	Energy         float64   `json:"energy"`           // FIELD
	AvgLinkQuality float64   `json:"avg_link_quality"` // FIELD
	JammingPower   float64   `json:"jamming_power"`    // FIELD
}

// RecordTableName holds the table name used when writing to GreptimeDB.
// It defaults to "mesh_metrics" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var RecordTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "mesh_metrics"
}()

func (Record) TableName() string {
	return RecordTableName
}
