package sim

import (
	"time"

	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/mesh"
)

// Snapshot is a read-only, value-copied view of one tick, consumed by
// rendering and export collaborators. Packets that terminated this tick are
// still included.
type Snapshot struct {
	Nodes     []mesh.Node   `json:"nodes"`
	Links     []mesh.Link   `json:"links"`
	Packets   []mesh.Packet `json:"packets"`
	Attack    attack.Status `json:"attack"`
	Timestamp time.Time     `json:"ts"`
}

func (s *Simulator) buildSnapshot(status attack.Status) Snapshot {
	snap := Snapshot{
		Nodes:     make([]mesh.Node, len(s.nodes)),
		Links:     make([]mesh.Link, len(s.links)),
		Packets:   make([]mesh.Packet, len(s.packets)),
		Attack:    status,
		Timestamp: s.now(),
	}
	for i, n := range s.nodes {
		snap.Nodes[i] = *n
	}
	copy(snap.Links, s.links)
	for i, p := range s.packets {
		snap.Packets[i] = *p
	}
	return snap
}

// Snapshot returns the most recent tick's render snapshot.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSnapshot
}
