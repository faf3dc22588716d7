package metrics

import (
	"math"
	"testing"
	"time"
)

func TestFlush_WaitsForWindow(t *testing.T) {
	a := NewAggregator(500)
	a.AddSent(3)
	if _, ok := a.Flush(400, time.Unix(0, 0), "constant", 0.5, 1); ok {
		t.Fatal("flushed before the window elapsed")
	}
	if _, ok := a.Flush(501, time.Unix(0, 0), "constant", 0.5, 1); !ok {
		t.Fatal("did not flush after the window elapsed")
	}
}

func TestFlush_Ratios(t *testing.T) {
	a := NewAggregator(500)
	a.AddSent(10)
	a.AddDelivered(7, []time.Duration{100 * time.Millisecond, 300 * time.Millisecond})
	a.AddLost(2)

	rec, ok := a.Flush(600, time.Unix(42, 0), "sweep", 0.61234, 0.75)
	if !ok {
		t.Fatal("expected flush")
	}
	if rec.Attack != "sweep" {
		t.Errorf("attack = %q", rec.Attack)
	}
	if math.Abs(rec.PDR-0.7) > 0.001 || math.Abs(rec.PLR-0.2) > 0.001 {
		t.Errorf("pdr/plr = %v/%v, want ~0.7/~0.2", rec.PDR, rec.PLR)
	}
	if rec.PDR < 0 || rec.PDR > 1 || rec.PLR < 0 || rec.PLR > 1 {
		t.Errorf("ratios out of range: %+v", rec)
	}
	if rec.Throughput != 14 { // 7 delivered * (1000/500)
		t.Errorf("throughput = %v, want 14", rec.Throughput)
	}
	if rec.LatencyMs != 200 {
		t.Errorf("latency = %v, want 200", rec.LatencyMs)
	}
	if rec.AvgLinkQuality != 0.612 {
		t.Errorf("avg link quality = %v, want rounded 0.612", rec.AvgLinkQuality)
	}
}

func TestFlush_EmptyWindowDefaults(t *testing.T) {
	a := NewAggregator(500)
	rec, ok := a.Flush(600, time.Unix(0, 0), "none", 0, 0)
	if !ok {
		t.Fatal("expected flush")
	}
	if rec.PDR != 1 || rec.PLR != 0 {
		t.Errorf("empty window pdr/plr = %v/%v, want 1/0", rec.PDR, rec.PLR)
	}
	if rec.Throughput != 0 || rec.LatencyMs != 0 {
		t.Errorf("empty window throughput/latency = %v/%v, want 0/0", rec.Throughput, rec.LatencyMs)
	}
}

func TestFlush_ResetsCountersButNotEnergy(t *testing.T) {
	a := NewAggregator(500)
	a.AddSent(5)
	a.AddDelivered(5, nil)
	a.AccrueEnergy(true)
	a.AccrueEnergy(false)

	rec, _ := a.Flush(600, time.Unix(0, 0), "constant", 0, 1)
	if rec.Energy != 17 {
		t.Errorf("energy = %v, want 17", rec.Energy)
	}

	// Second window: counters are fresh, energy keeps accruing.
	a.AccrueEnergy(false)
	rec, ok := a.Flush(1200, time.Unix(1, 0), "constant", 0, 1)
	if !ok {
		t.Fatal("expected second flush")
	}
	if rec.PDR != 1 || rec.Throughput != 0 {
		t.Errorf("window counters not reset: %+v", rec)
	}
	if rec.Energy != 19 {
		t.Errorf("cumulative energy = %v, want 19", rec.Energy)
	}
}

func TestAccrueEnergy_Rates(t *testing.T) {
	a := NewAggregator(500)
	a.AccrueEnergy(true)
	if a.Energy() != 15 {
		t.Errorf("jamming tick energy = %v, want 15", a.Energy())
	}
	a.AccrueEnergy(false)
	if a.Energy() != 17 {
		t.Errorf("idle tick energy = %v, want 17", a.Energy())
	}
}

func TestRound(t *testing.T) {
	if got := round(0.69993, 3); got != 0.7 {
		t.Errorf("round(0.69993, 3) = %v", got)
	}
	if got := round(123.456, 2); got != 123.46 {
		t.Errorf("round(123.456, 2) = %v", got)
	}
}
