package sim

import (
	"context"
	"time"

	"meshjam-sim/internal/logging"
	"meshjam-sim/internal/mesh"
	"meshjam-sim/internal/radio"
	"meshjam-sim/internal/traffic"
)

// Run starts the simulation loop and stops when the context is done.
// Stopping halts further ticks; already-emitted records stay in the log.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval, "nodes", len(s.nodes), "attack", s.ctl.Kind())
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// tick runs one full simulation step: move nodes, evaluate the attack,
// recompute links, spawn and advance traffic, accrue metrics, and flush a
// record when the aggregation window elapses.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	nowMs := s.elapsedMs()
	jammer := s.jammer()

	mesh.Advance(s.nodes, s.cfg.Arena.Width, s.cfg.Arena.Height)

	status := s.ctl.Evaluate(s.nodes, s.packets, jammer, nowMs)
	s.lastStatus = status

	s.links = radio.ComputeLinks(s.nodes, status, jammer.Position, s.cfg.CommRange)
	s.avgQuality = radio.AverageQuality(s.links)

	if p := s.traffic.MaybeSpawn(s.nodes, s.links); p != nil {
		s.packets = append(s.packets, p)
		s.agg.AddSent(1)
		if src := s.nodeByID(p.Source); src != nil {
			src.Energy++
		}
	}

	res := s.traffic.Advance(s.packets, s.nodes, s.links)
	s.agg.AddDelivered(res.Delivered, res.Latencies)
	s.agg.AddLost(res.Lost)
	s.agg.AccrueEnergy(status.Active)

	s.updateQueueDepths()

	// Snapshot before culling so terminal packets render one last time.
	s.lastSnapshot = s.buildSnapshot(status)
	if s.snapWriter != nil {
		if err := s.snapWriter.WriteSnapshot(s.lastSnapshot); err != nil {
			log.Error("snapshot write failed", "err", err)
		}
	}
	s.packets = traffic.Cull(s.packets)

	if rec, ok := s.agg.Flush(nowMs, s.now(), string(status.Kind), s.avgQuality, status.Power); ok {
		s.history = append(s.history, rec)
		if s.writer != nil {
			if err := s.writer.WriteMetrics(rec); err != nil {
				log.Error("metrics write failed", "attack", rec.Attack, "err", err)
			}
		}
	}
}

func (s *Simulator) nodeByID(id int) *mesh.Node {
	for _, n := range s.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// updateQueueDepths recounts live packets per source node. Informational
// only; nothing reads it back into the simulation.
func (s *Simulator) updateQueueDepths() {
	counts := make(map[int]int)
	for _, p := range s.packets {
		if !p.Terminal() {
			counts[p.Source]++
		}
	}
	for _, n := range s.nodes {
		n.QueueDepth = counts[n.ID]
	}
}
