// Packet generation, advancement, loss, and delivery
package traffic

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"meshjam-sim/internal/mesh"
	"meshjam-sim/internal/radio"
)

// Thresholds and probabilities for the traffic model. A link must be better
// than minSendQuality to be picked for a new packet; in-flight packets on a
// link at or below weakLinkQuality (or with no link at all) face the loss
// coin each tick. Marginal-but-unjammed links are treated the same as jammed
// ones on purpose; see DESIGN.md.
const (
	minSendQuality  = 0.1
	weakLinkQuality = 0.2
)

// Engine spawns and advances packets. It owns no packet storage; the caller
// passes the live set each tick.
type Engine struct {
	sendProbability float64
	lossProbability float64
	packetSpeed     float64
	rand            *rand.Rand
	now             func() time.Time
}

// NewEngine creates a traffic engine.
func NewEngine(sendProbability, lossProbability, packetSpeed float64, rng *rand.Rand, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		sendProbability: sendProbability,
		lossProbability: lossProbability,
		packetSpeed:     packetSpeed,
		rand:            rng,
		now:             now,
	}
}

// MaybeSpawn rolls the per-tick send probability and, on success, creates one
// packet from a uniformly chosen non-jammer node to a uniformly chosen linked
// neighbor with usable quality. Returns nil when nothing was sent.
func (e *Engine) MaybeSpawn(nodes []*mesh.Node, links []mesh.Link) *mesh.Packet {
	if len(nodes) == 0 || e.rand.Float64() >= e.sendProbability {
		return nil
	}
	src := nodes[e.rand.Intn(len(nodes))]
	if src.IsJammer {
		return nil
	}
	var candidates []int
	for _, l := range links {
		if l.Quality <= minSendQuality {
			continue
		}
		switch src.ID {
		case l.A:
			candidates = append(candidates, l.B)
		case l.B:
			candidates = append(candidates, l.A)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	dest := candidates[e.rand.Intn(len(candidates))]
	return &mesh.Packet{
		ID:        uuid.New().String(),
		Source:    src.ID,
		Dest:      dest,
		Position:  src.Position,
		Progress:  0,
		CreatedAt: e.now(),
	}
}

// Result summarizes one advancement pass.
type Result struct {
	Delivered int
	Lost      int
	Latencies []time.Duration
}

// Advance moves every non-terminal packet toward the current position of its
// destination node. Nodes move, so the route re-targets each tick. A packet
// whose pair has no usable link this tick risks the loss coin; a packet whose
// endpoints no longer resolve is dropped defensively rather than halting the
// run.
func (e *Engine) Advance(packets []*mesh.Packet, nodes []*mesh.Node, links []mesh.Link) Result {
	byID := make(map[int]*mesh.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var res Result
	for _, p := range packets {
		if p.Terminal() {
			continue
		}
		src, okS := byID[p.Source]
		dst, okD := byID[p.Dest]
		if !okS || !okD {
			p.Lost = true
			res.Lost++
			continue
		}

		link, ok := radio.Find(links, p.Source, p.Dest)
		if !ok || link.Quality <= weakLinkQuality {
			if e.rand.Float64() < e.lossProbability {
				p.Lost = true
				res.Lost++
				continue
			}
		}

		dist := mesh.Distance(src.Position, dst.Position)
		if dist == 0 {
			// Coincident endpoints would divide by zero; deliver instantly.
			p.Progress = 1
		} else {
			p.Progress += e.packetSpeed / dist
		}
		if p.Progress >= 1 {
			p.Progress = 1
			p.Position = dst.Position
			p.Delivered = true
			res.Delivered++
			res.Latencies = append(res.Latencies, e.now().Sub(p.CreatedAt))
			continue
		}
		p.Position = mesh.Vec{
			X: src.Position.X + (dst.Position.X-src.Position.X)*p.Progress,
			Y: src.Position.Y + (dst.Position.Y-src.Position.Y)*p.Progress,
		}
	}
	return res
}

// Cull returns the packets still in flight. Terminal packets are kept by the
// caller only for the render snapshot of the tick they ended on.
func Cull(packets []*mesh.Packet) []*mesh.Packet {
	live := packets[:0]
	for _, p := range packets {
		if !p.Terminal() {
			live = append(live, p)
		}
	}
	return live
}
