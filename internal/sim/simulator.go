// Simulator orchestrating the sensor network and jamming attack ticks
package sim

import (
	"math/rand"
	"sync"
	"time"

	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/config"
	"meshjam-sim/internal/mesh"
	"meshjam-sim/internal/metrics"
	"meshjam-sim/internal/traffic"
)

// Default simulation parameters, applied when the config leaves them unset.
const (
	defaultNodeCount   = 12
	defaultCommRange   = 150.0
	defaultMaxSpeed    = 2.0
	defaultSendProb    = 0.15
	defaultLossProb    = 0.15
	defaultPacketSpeed = 5.0
	defaultWindowMs    = 500.0
	defaultArenaWidth  = 800.0
	defaultArenaHeight = 600.0
)

// Simulator owns all mutable simulation state. Every mutation happens inside
// tick() under the mutex; external consumers only ever see value-copied
// snapshots and records.
type Simulator struct {
	cfg        *config.SimulationConfig
	writer     MetricsWriter
	snapWriter SnapshotWriter

	nodes   []*mesh.Node
	links   []mesh.Link
	packets []*mesh.Packet

	ctl     *attack.Controller
	traffic *traffic.Engine
	agg     *metrics.Aggregator

	history      []metrics.Record
	lastSnapshot Snapshot
	lastStatus   attack.Status
	avgQuality   float64

	tickInterval time.Duration
	start        time.Time
	now          func() time.Time
	rand         *rand.Rand
	mu           sync.Mutex
}

// NewSimulator initializes nodes from config and wires the component engines.
// Node 0 is the jammer, spawned at the arena center; all other nodes start at
// uniform random positions with uniform random velocities.
func NewSimulator(cfg *config.SimulationConfig, writer MetricsWriter, snapWriter SnapshotWriter, tickInterval time.Duration) *Simulator {
	return newSimulator(cfg, writer, snapWriter, tickInterval,
		rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// newSimulator takes the rng and clock explicitly; every engine draws from
// the same source, so a seeded rng pins the whole simulation.
func newSimulator(cfg *config.SimulationConfig, writer MetricsWriter, snapWriter SnapshotWriter, tickInterval time.Duration, rng *rand.Rand, now func() time.Time) *Simulator {
	normalize(cfg)

	kind, err := attack.ParseKind(cfg.Attack)
	if err != nil {
		kind = attack.KindNone
	}

	s := &Simulator{
		cfg:          cfg,
		writer:       writer,
		snapWriter:   snapWriter,
		ctl:          attack.NewController(kind, cfg.CommRange, rng),
		agg:          metrics.NewAggregator(cfg.WindowMs),
		tickInterval: tickInterval,
		now:          now,
		rand:         rng,
	}
	s.traffic = traffic.NewEngine(cfg.Traffic.SendProbability, cfg.Traffic.LossProbability, cfg.Traffic.PacketSpeed, rng, func() time.Time { return s.now() })
	s.start = now()
	s.lastStatus = attack.Status{Kind: kind}

	for i := 0; i < cfg.NodeCount; i++ {
		n := &mesh.Node{
			ID: i,
			Velocity: mesh.Vec{
				X: rng.Float64()*2*cfg.MaxSpeed - cfg.MaxSpeed,
				Y: rng.Float64()*2*cfg.MaxSpeed - cfg.MaxSpeed,
			},
		}
		if i == 0 {
			n.IsJammer = true
			n.Position = mesh.Vec{X: cfg.Arena.Width / 2, Y: cfg.Arena.Height / 2}
		} else {
			n.Position = mesh.Vec{X: rng.Float64() * cfg.Arena.Width, Y: rng.Float64() * cfg.Arena.Height}
		}
		s.nodes = append(s.nodes, n)
	}
	return s
}

func normalize(cfg *config.SimulationConfig) {
	if cfg.NodeCount < 2 {
		cfg.NodeCount = defaultNodeCount
	}
	if cfg.CommRange <= 0 {
		cfg.CommRange = defaultCommRange
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = defaultMaxSpeed
	}
	if cfg.Traffic.SendProbability <= 0 {
		cfg.Traffic.SendProbability = defaultSendProb
	}
	if cfg.Traffic.LossProbability <= 0 {
		cfg.Traffic.LossProbability = defaultLossProb
	}
	if cfg.Traffic.PacketSpeed <= 0 {
		cfg.Traffic.PacketSpeed = defaultPacketSpeed
	}
	if cfg.WindowMs <= 0 {
		cfg.WindowMs = defaultWindowMs
	}
	if cfg.Arena.Width <= 0 {
		cfg.Arena.Width = defaultArenaWidth
	}
	if cfg.Arena.Height <= 0 {
		cfg.Arena.Height = defaultArenaHeight
	}
}

// elapsedMs is milliseconds of simulation time since start.
func (s *Simulator) elapsedMs() float64 {
	return float64(s.now().Sub(s.start).Milliseconds())
}

func (s *Simulator) jammer() *mesh.Node {
	for _, n := range s.nodes {
		if n.IsJammer {
			return n
		}
	}
	return s.nodes[0]
}

// SetAttack switches the active attack kind. Controller state resets; node
// positions, links, packets, and the metrics log are untouched.
func (s *Simulator) SetAttack(kind attack.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctl.SetKind(kind)
	s.lastStatus = attack.Status{Kind: kind}
}

// AttackKind returns the active attack kind.
func (s *Simulator) AttackKind() attack.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl.Kind()
}

// Status returns the most recent per-tick jamming status.
func (s *Simulator) Status() attack.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// MetricsHistory returns a copy of the full metrics log.
func (s *Simulator) MetricsHistory() []metrics.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]metrics.Record, len(s.history))
	copy(out, s.history)
	return out
}

// RecentMetrics returns a copy of at most n most recent records.
func (s *Simulator) RecentMetrics(n int) []metrics.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	out := make([]metrics.Record, n)
	copy(out, s.history[len(s.history)-n:])
	return out
}

// GetConfig returns the simulation configuration.
func (s *Simulator) GetConfig() *config.SimulationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}
