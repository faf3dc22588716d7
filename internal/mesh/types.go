// Core entity types for the simulated sensor network
package mesh

import (
	"math"
	"time"
)

// Vec is a 2-D position or velocity.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Node holds runtime state for one sensor node. Nodes are created once at
// simulation start and live for the whole run; ids are stable.
type Node struct {
	ID         int     `json:"id"`
	Position   Vec     `json:"position"`
	Velocity   Vec     `json:"velocity"`
	IsJammer   bool    `json:"is_jammer"`
	IsTarget   bool    `json:"is_target"`
	Energy     float64 `json:"energy"`
	QueueDepth int     `json:"queue_depth"`
}

// Link is a derived view over one unordered node pair within communication
// range. The full link set is recomputed from scratch every tick.
type Link struct {
	A       int     `json:"a"`
	B       int     `json:"b"`
	Quality float64 `json:"quality"`
}

// Packet is one in-flight transmission. Delivered and Lost are mutually
// exclusive; a packet with either flag set leaves the live set after the tick
// it became terminal.
type Packet struct {
	ID        string    `json:"id"`
	Source    int       `json:"source"`
	Dest      int       `json:"dest"`
	Position  Vec       `json:"position"`
	Progress  float64   `json:"progress"`
	Delivered bool      `json:"delivered"`
	Lost      bool      `json:"lost"`
	CreatedAt time.Time `json:"created_at"`
}

// Terminal reports whether the packet finished, either way.
func (p *Packet) Terminal() bool {
	return p.Delivered || p.Lost
}
