// Jamming attack strategies and their per-tick evaluation
package attack

import (
	"fmt"
	"math"
	"math/rand"

	"meshjam-sim/internal/mesh"
)

// Kind identifies one jamming strategy. The set is closed; every strategy is
// handled explicitly in Controller.Evaluate.
type Kind string

const (
	KindNone        Kind = "none"
	KindConstant    Kind = "constant"
	KindReactive    Kind = "reactive"
	KindRandom      Kind = "random"
	KindSweep       Kind = "sweep"
	KindIntelligent Kind = "intelligent"
)

// Kinds lists all strategies in display order.
func Kinds() []Kind {
	return []Kind{KindNone, KindConstant, KindReactive, KindRandom, KindSweep, KindIntelligent}
}

// ParseKind converts a config/API string into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown attack kind %q", s)
}

// Tuning constants. The radii are inherited design choices with no physical
// derivation; see DESIGN.md.
const (
	// DetectionRadius is how far the reactive jammer can hear in-flight packets.
	DetectionRadius = 100.0

	intelligentPower     = 0.9
	targetRecomputeTicks = 60

	randomHoldMinMs  = 500.0
	randomHoldSpanMs = 1500.0

	sweepPeriodMs = 500.0
)

// Status is the controller's per-tick output, consumed by the link engine and
// the metrics aggregator.
type Status struct {
	Kind   Kind    `json:"kind"`
	Active bool    `json:"active"`
	Power  float64 `json:"power"`
}

// Controller owns the mutable cross-tick state of the active strategy:
// Random's flip timer, Intelligent's recompute counter. Switching kinds
// resets that state but nothing else in the simulation.
type Controller struct {
	kind      Kind
	commRange float64
	rand      *rand.Rand

	randomActive bool
	nextSwitchMs float64
	tickCount    int
}

// NewController creates a controller for the given strategy.
func NewController(kind Kind, commRange float64, rng *rand.Rand) *Controller {
	return &Controller{kind: kind, commRange: commRange, rand: rng}
}

// Kind returns the active strategy.
func (c *Controller) Kind() Kind {
	return c.kind
}

// SetKind switches the active strategy and resets kind-specific state.
// Node positions, links, and packets are not touched.
func (c *Controller) SetKind(k Kind) {
	c.kind = k
	c.randomActive = false
	c.nextSwitchMs = 0
	c.tickCount = 0
}

// Evaluate runs one tick of the active strategy. It returns the jamming
// status and, for the intelligent strategy, maintains the isTarget flag on
// the current victim node. Every other strategy clears the flag, so a victim
// never outlives the attack that elected it. nowMs is milliseconds since
// simulation start.
func (c *Controller) Evaluate(nodes []*mesh.Node, packets []*mesh.Packet, jammer *mesh.Node, nowMs float64) Status {
	if c.kind != KindIntelligent {
		clearTargets(nodes)
	}
	switch c.kind {
	case KindConstant:
		return Status{Kind: c.kind, Active: true, Power: 1.0}

	case KindRandom:
		if nowMs >= c.nextSwitchMs {
			c.randomActive = c.rand.Float64() < 0.5
			c.nextSwitchMs = nowMs + randomHoldMinMs + c.rand.Float64()*randomHoldSpanMs
		}
		power := 0.0
		if c.randomActive {
			power = 1.0
		}
		return Status{Kind: c.kind, Active: c.randomActive, Power: power}

	case KindReactive:
		// Listen-before-jam: no memory across ticks.
		active := false
		for _, p := range packets {
			if p.Terminal() {
				continue
			}
			if mesh.Distance(p.Position, jammer.Position) <= DetectionRadius {
				active = true
				break
			}
		}
		power := 0.0
		if active {
			power = 1.0
		}
		return Status{Kind: c.kind, Active: active, Power: power}

	case KindSweep:
		power := (math.Sin(nowMs/sweepPeriodMs) + 1) / 2
		return Status{Kind: c.kind, Active: true, Power: power}

	case KindIntelligent:
		// Re-elect the victim only every 60th tick to avoid target flapping.
		if c.tickCount%targetRecomputeTicks == 0 {
			c.electTarget(nodes)
		}
		c.tickCount++
		return Status{Kind: c.kind, Active: true, Power: intelligentPower}

	default: // KindNone
		return Status{Kind: KindNone, Active: false, Power: 0}
	}
}

// electTarget marks the non-jammer node with the most in-range neighbors as
// the victim, clearing the flag everywhere else. Ties keep the first node
// encountered.
func (c *Controller) electTarget(nodes []*mesh.Node) {
	var best *mesh.Node
	bestCount := -1
	for _, n := range nodes {
		if n.IsJammer {
			continue
		}
		count := 0
		for _, m := range nodes {
			if m.ID == n.ID {
				continue
			}
			if mesh.Distance(n.Position, m.Position) < c.commRange {
				count++
			}
		}
		if count > bestCount {
			best = n
			bestCount = count
		}
	}
	for _, n := range nodes {
		n.IsTarget = best != nil && n.ID == best.ID
	}
}

func clearTargets(nodes []*mesh.Node) {
	for _, n := range nodes {
		n.IsTarget = false
	}
}
