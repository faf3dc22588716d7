package radio

import (
	"math"
	"testing"

	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/mesh"
)

const commRange = 150.0

func pair(d float64) []*mesh.Node {
	return []*mesh.Node{
		{ID: 1, Position: mesh.Vec{X: 0, Y: 0}},
		{ID: 2, Position: mesh.Vec{X: d, Y: 0}},
	}
}

func TestComputeLinks_DistanceDecayWithoutJamming(t *testing.T) {
	jam := attack.Status{Kind: attack.KindNone}
	links := ComputeLinks(pair(75), jam, mesh.Vec{}, commRange)
	if len(links) != 1 {
		t.Fatalf("link count = %d, want 1", len(links))
	}
	want := 1 - 75.0/commRange
	if math.Abs(links[0].Quality-want) > 1e-12 {
		t.Errorf("quality = %v, want %v", links[0].Quality, want)
	}
}

func TestComputeLinks_NoLinkAtOrBeyondRange(t *testing.T) {
	jam := attack.Status{Kind: attack.KindNone}
	for _, d := range []float64{commRange, commRange + 1, 500} {
		if links := ComputeLinks(pair(d), jam, mesh.Vec{}, commRange); len(links) != 0 {
			t.Errorf("distance %v: got %d links, want 0", d, len(links))
		}
	}
}

func TestComputeLinks_JammingDegradesCloserEndpoint(t *testing.T) {
	nodes := pair(75)
	// Jammer sits on top of node 1; the closer endpoint distance is 0, so
	// impact is 1 and the penalty is power * 2.
	jam := attack.Status{Kind: attack.KindConstant, Active: true, Power: 0.2}
	links := ComputeLinks(nodes, jam, nodes[0].Position, commRange)
	want := (1 - 75.0/commRange) - 0.2*2.0
	if math.Abs(links[0].Quality-want) > 1e-12 {
		t.Errorf("quality = %v, want %v", links[0].Quality, want)
	}
}

func TestComputeLinks_QualityClampedToZero(t *testing.T) {
	nodes := pair(100)
	jam := attack.Status{Kind: attack.KindConstant, Active: true, Power: 1.0}
	links := ComputeLinks(nodes, jam, nodes[0].Position, commRange)
	if links[0].Quality != 0 {
		t.Errorf("quality = %v, want clamp to 0", links[0].Quality)
	}
}

func TestComputeLinks_SweepUsesWiderFootprint(t *testing.T) {
	nodes := pair(30)
	jammerPos := mesh.Vec{X: -130, Y: 0} // outside 120, inside 150
	constant := attack.Status{Kind: attack.KindConstant, Active: true, Power: 1.0}
	sweep := attack.Status{Kind: attack.KindSweep, Active: true, Power: 1.0}

	base := ComputeLinks(nodes, attack.Status{Kind: attack.KindNone}, jammerPos, commRange)[0].Quality
	withConstant := ComputeLinks(nodes, constant, jammerPos, commRange)[0].Quality
	withSweep := ComputeLinks(nodes, sweep, jammerPos, commRange)[0].Quality

	if withConstant != base {
		t.Errorf("constant jamming outside its 120 footprint changed quality: %v != %v", withConstant, base)
	}
	if withSweep >= base {
		t.Errorf("sweep jamming inside its 150 footprint had no effect: %v >= %v", withSweep, base)
	}
}

func TestComputeLinks_IntelligentTargetMultiplier(t *testing.T) {
	nodes := pair(75)
	jammerPos := mesh.Vec{X: 60, Y: 0}
	jam := attack.Status{Kind: attack.KindIntelligent, Active: true, Power: 0.1}

	plain := ComputeLinks(nodes, jam, jammerPos, commRange)[0].Quality
	nodes[1].IsTarget = true
	targeted := ComputeLinks(nodes, jam, jammerPos, commRange)[0].Quality

	base := 1 - 75.0/commRange
	if math.Abs((base-plain)*1.5-(base-targeted)) > 1e-12 {
		t.Errorf("target penalty %v is not 1.5x the plain penalty %v", base-targeted, base-plain)
	}
}

func TestComputeLinks_Idempotent(t *testing.T) {
	nodes := []*mesh.Node{
		{ID: 1, Position: mesh.Vec{X: 10, Y: 20}},
		{ID: 2, Position: mesh.Vec{X: 90, Y: 40}},
		{ID: 3, Position: mesh.Vec{X: 60, Y: 140}},
		{ID: 4, Position: mesh.Vec{X: 400, Y: 400}},
	}
	jam := attack.Status{Kind: attack.KindSweep, Active: true, Power: 0.7}
	first := ComputeLinks(nodes, jam, mesh.Vec{X: 50, Y: 50}, commRange)
	second := ComputeLinks(nodes, jam, mesh.Vec{X: 50, Y: 50}, commRange)
	if len(first) != len(second) {
		t.Fatalf("link counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("link %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	for _, l := range first {
		if l.Quality < 0 || l.Quality > 1 {
			t.Errorf("quality %v outside [0,1]", l.Quality)
		}
	}
}

func TestAverageQuality(t *testing.T) {
	if got := AverageQuality(nil); got != 0 {
		t.Errorf("empty average = %v, want 0", got)
	}
	links := []mesh.Link{{Quality: 0.2}, {Quality: 0.8}}
	if got := AverageQuality(links); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("average = %v, want 0.5", got)
	}
}

func TestFind(t *testing.T) {
	links := []mesh.Link{{A: 1, B: 2, Quality: 0.5}}
	if _, ok := Find(links, 2, 1); !ok {
		t.Error("Find is not order-insensitive")
	}
	if _, ok := Find(links, 1, 3); ok {
		t.Error("Find matched a missing pair")
	}
}
