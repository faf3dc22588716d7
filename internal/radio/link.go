// Pairwise link quality derivation with jamming interference
package radio

import (
	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/mesh"
)

// Jamming footprint radii. The sweep attack radiates wider than the others;
// both values are inherited design choices kept as constants.
const (
	sweepFootprint   = 150.0
	defaultFootprint = 120.0

	targetMultiplier  = 3.0
	defaultMultiplier = 2.0
)

// ComputeLinks derives the link set for the current tick: one link per
// unordered node pair within commRange, quality degraded by distance and, if
// jamming is active, by proximity of the pair's closer endpoint to the
// jammer. The computation is stateless; identical inputs yield identical
// links.
func ComputeLinks(nodes []*mesh.Node, jam attack.Status, jammerPos mesh.Vec, commRange float64) []mesh.Link {
	var links []mesh.Link
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dist := mesh.Distance(a.Position, b.Position)
			if dist >= commRange {
				continue
			}
			quality := 1 - dist/commRange
			if jam.Active {
				quality -= interference(a, b, jam, jammerPos)
			}
			if quality < 0 {
				quality = 0
			} else if quality > 1 {
				quality = 1
			}
			links = append(links, mesh.Link{A: a.ID, B: b.ID, Quality: quality})
		}
	}
	return links
}

// interference returns the quality penalty for one pair under active jamming.
func interference(a, b *mesh.Node, jam attack.Status, jammerPos mesh.Vec) float64 {
	dj := mesh.Distance(a.Position, jammerPos)
	if d := mesh.Distance(b.Position, jammerPos); d < dj {
		dj = d
	}
	footprint := defaultFootprint
	if jam.Kind == attack.KindSweep {
		footprint = sweepFootprint
	}
	impact := 1 - dj/footprint
	if impact < 0 {
		impact = 0
	}
	multiplier := defaultMultiplier
	if jam.Kind == attack.KindIntelligent && (a.IsTarget || b.IsTarget) {
		multiplier = targetMultiplier
	}
	return impact * jam.Power * multiplier
}

// AverageQuality is the arithmetic mean over the link set, 0 when empty.
func AverageQuality(links []mesh.Link) float64 {
	if len(links) == 0 {
		return 0
	}
	sum := 0.0
	for _, l := range links {
		sum += l.Quality
	}
	return sum / float64(len(links))
}

// Find returns the link between two nodes for the current tick, if any.
func Find(links []mesh.Link, a, b int) (mesh.Link, bool) {
	for _, l := range links {
		if (l.A == a && l.B == b) || (l.A == b && l.B == a) {
			return l, true
		}
	}
	return mesh.Link{}, false
}
