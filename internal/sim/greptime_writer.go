package sim

import (
	"context"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"meshjam-sim/internal/metrics"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes metrics records to GreptimeDB via the ingester
// client. The table is auto-created on first write.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(host, database, tableName string) (*GreptimeDBWriter, error) {
	if tableName == "" {
		tableName = metrics.RecordTableName
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{client: client, table: tableName}, nil
}

// WriteMetrics inserts a single record.
func (w *GreptimeDBWriter) WriteMetrics(rec metrics.Record) error {
	return w.WriteMetricsBatch([]metrics.Record{rec})
}

// WriteMetricsBatch inserts multiple records.
func (w *GreptimeDBWriter) WriteMetricsBatch(recs []metrics.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("attack", types.STRING); err != nil {
		return err
	}
	for _, col := range []string{"pdr", "plr", "throughput", "latency_ms", "energy", "avg_link_quality", "jamming_power"} {
		if err := tbl.AddFieldColumn(col, types.FLOAT64); err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range recs {
		if err := tbl.AddRow(r.Attack, r.PDR, r.PLR, r.Throughput, r.LatencyMs,
			r.Energy, r.AvgLinkQuality, r.JammingPower, r.Timestamp); err != nil {
			return err
		}
	}

	_, err = w.client.Write(context.Background(), tbl)
	return err
}
