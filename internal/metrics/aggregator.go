package metrics

import (
	"math"
	"time"
)

// Per-tick energy accrual rates, in abstract units.
const (
	energyJamming = 15.0
	energyIdle    = 2.0

	// epsilon guards the ratio denominators when sent > 0.
	epsilon = 1e-4
)

// Aggregator accumulates traffic counters over a fixed wall-time window and
// flushes them into one Record per window. The energy counter is cumulative
// across the whole run and never resets.
type Aggregator struct {
	windowMs float64

	sent      int
	delivered int
	lost      int
	latencies []time.Duration
	energy    float64

	lastFlushMs float64
}

// NewAggregator creates an aggregator with the given window length in
// milliseconds.
func NewAggregator(windowMs float64) *Aggregator {
	return &Aggregator{windowMs: windowMs}
}

// AddSent counts n freshly spawned packets.
func (a *Aggregator) AddSent(n int) { a.sent += n }

// AddDelivered counts delivered packets and their latency samples.
func (a *Aggregator) AddDelivered(n int, latencies []time.Duration) {
	a.delivered += n
	a.latencies = append(a.latencies, latencies...)
}

// AddLost counts lost packets.
func (a *Aggregator) AddLost(n int) { a.lost += n }

// AccrueEnergy adds one tick's worth of energy draw.
func (a *Aggregator) AccrueEnergy(jammingActive bool) {
	if jammingActive {
		a.energy += energyJamming
	} else {
		a.energy += energyIdle
	}
}

// Energy returns the cumulative energy counter.
func (a *Aggregator) Energy() float64 { return a.energy }

// Flush emits a Record when the window has elapsed and resets the window
// counters. avgLinkQuality and jammingPower are the current tick's values.
// Returns false while the window is still open.
func (a *Aggregator) Flush(nowMs float64, now time.Time, attackKind string, avgLinkQuality, jammingPower float64) (Record, bool) {
	if nowMs-a.lastFlushMs <= a.windowMs {
		return Record{}, false
	}

	// Nothing sent: delivery is vacuously perfect, loss vacuously zero.
	pdr, plr := 1.0, 0.0
	if a.sent > 0 {
		denom := float64(a.sent) + epsilon
		pdr = float64(a.delivered) / denom
		plr = float64(a.lost) / denom
	}

	latency := 0.0
	if len(a.latencies) > 0 {
		var total time.Duration
		for _, l := range a.latencies {
			total += l
		}
		latency = float64(total.Milliseconds()) / float64(len(a.latencies))
	}

	rec := Record{
		Timestamp:      now,
		Attack:         attackKind,
		PDR:            round(pdr, 3),
		PLR:            round(plr, 3),
		Throughput:     round(float64(a.delivered)*(1000/a.windowMs), 2),
		LatencyMs:      round(latency, 2),
		Energy:         round(a.energy, 2),
		AvgLinkQuality: round(avgLinkQuality, 3),
		JammingPower:   round(jammingPower, 3),
	}

	a.sent, a.delivered, a.lost = 0, 0, 0
	a.latencies = nil
	a.lastFlushMs = nowMs
	return rec, true
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
