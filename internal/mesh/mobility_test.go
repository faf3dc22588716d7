package mesh

import (
	"math"
	"math/rand"
	"testing"
)

func TestAdvance_MovesByVelocity(t *testing.T) {
	n := &Node{ID: 1, Position: Vec{X: 100, Y: 100}, Velocity: Vec{X: 2, Y: -1.5}}
	Advance([]*Node{n}, 800, 600)
	if n.Position.X != 102 || n.Position.Y != 98.5 {
		t.Errorf("position = %+v, want {102 98.5}", n.Position)
	}
	if n.Velocity.X != 2 || n.Velocity.Y != -1.5 {
		t.Errorf("velocity changed without a wall hit: %+v", n.Velocity)
	}
}

func TestAdvance_BounceNegatesVelocityAfterMove(t *testing.T) {
	n := &Node{ID: 1, Position: Vec{X: 799, Y: 300}, Velocity: Vec{X: 2, Y: 0}}
	Advance([]*Node{n}, 800, 600)
	// Move happens first, so the node ends one step past the wall.
	if n.Position.X != 801 {
		t.Errorf("X = %v, want 801 (no clamping)", n.Position.X)
	}
	if n.Velocity.X != -2 {
		t.Errorf("Vx = %v, want -2", n.Velocity.X)
	}
	// The next tick reflects it back inside.
	Advance([]*Node{n}, 800, 600)
	if n.Position.X != 799 {
		t.Errorf("X after reflection = %v, want 799", n.Position.X)
	}
}

func TestAdvance_NodesStayBounded(t *testing.T) {
	const (
		w, h     = 800.0, 600.0
		maxSpeed = 2.0
	)
	rng := rand.New(rand.NewSource(42))
	var nodes []*Node
	for i := 0; i < 20; i++ {
		nodes = append(nodes, &Node{
			ID:       i,
			Position: Vec{X: rng.Float64() * w, Y: rng.Float64() * h},
			Velocity: Vec{X: rng.Float64()*2*maxSpeed - maxSpeed, Y: rng.Float64()*2*maxSpeed - maxSpeed},
		})
	}
	for tick := 0; tick < 5000; tick++ {
		Advance(nodes, w, h)
		for _, n := range nodes {
			// A bounce can overshoot by at most one velocity step.
			if n.Position.X < -maxSpeed || n.Position.X > w+maxSpeed ||
				n.Position.Y < -maxSpeed || n.Position.Y > h+maxSpeed {
				t.Fatalf("tick %d: node %d escaped arena: %+v", tick, n.ID, n.Position)
			}
		}
	}
}

func TestAdvance_DoesNotTouchIdentityOrEnergy(t *testing.T) {
	n := &Node{ID: 7, Position: Vec{X: 10, Y: 10}, Velocity: Vec{X: 1, Y: 1}, IsJammer: true, Energy: 123}
	Advance([]*Node{n}, 800, 600)
	if n.ID != 7 || !n.IsJammer || n.Energy != 123 {
		t.Errorf("identity fields mutated: %+v", n)
	}
}

func TestDistance(t *testing.T) {
	got := Distance(Vec{X: 0, Y: 0}, Vec{X: 3, Y: 4})
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
