package mesh

// Advance moves every node by its velocity and bounces it off the arena
// walls. The velocity component is negated after the position update, so a
// node that stepped past a wall is reflected on the next tick rather than
// clamped. Ids, jammer flags, and energy are untouched here.
func Advance(nodes []*Node, arenaWidth, arenaHeight float64) {
	for _, n := range nodes {
		n.Position.X += n.Velocity.X
		n.Position.Y += n.Velocity.Y

		if n.Position.X <= 0 || n.Position.X >= arenaWidth {
			n.Velocity.X = -n.Velocity.X
		}
		if n.Position.Y <= 0 || n.Position.Y >= arenaHeight {
			n.Velocity.Y = -n.Velocity.Y
		}
	}
}
