package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"meshjam-sim/internal/metrics"
)

func TestReplayLog_ReplaysAllRecordsInOrder(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	base := time.Unix(100, 0)
	for i := 0; i < 3; i++ {
		enc.Encode(metrics.Record{Timestamp: base.Add(time.Duration(i) * 500 * time.Millisecond), Attack: "sweep", Energy: float64(i)})
	}

	w := &MockWriter{}
	if err := ReplayLog(&buf, w, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(w.Records) != 3 {
		t.Fatalf("replayed %d records, want 3", len(w.Records))
	}
	for i, rec := range w.Records {
		if rec.Energy != float64(i) {
			t.Errorf("record %d out of order: %+v", i, rec)
		}
	}
}

func TestReplayLog_BadPayload(t *testing.T) {
	r := strings.NewReader(`{"ts": "2024-01-01T00:00:00Z"}` + "\nnot-json\n")
	if err := ReplayLog(r, &MockWriter{}, 0); err == nil {
		t.Fatal("expected decode error")
	}
}
