package game

// MoveEpsilon is the displacement below which an axis counts as not moving.
const MoveEpsilon = 1e-6

// SlideResolver resolves horizontal movement against a CollisionWorld,
// keeping the unobstructed component of a blocked displacement.
// Worst case is three capsule queries per call.
type SlideResolver struct {
	World  CollisionWorld
	Radius float64
	Height float64
}

// NewSlideResolver creates a resolver for capsules of the given size.
func NewSlideResolver(world CollisionWorld, radius, height float64) *SlideResolver {
	return &SlideResolver{World: world, Radius: radius, Height: height}
}

// Resolve returns the collision-respecting position after moving by (dx, dz).
// Y is never changed.
func (s *SlideResolver) Resolve(current Vec3, dx, dz float64) Vec3 {
	if abs(dx) < MoveEpsilon && abs(dz) < MoveEpsilon {
		return current
	}

	// Already overlapping: apply the full move so the entity can escape.
	if s.blocked(current) {
		return Vec3{X: current.X + dx, Y: current.Y, Z: current.Z + dz}
	}

	full := Vec3{X: current.X + dx, Y: current.Y, Z: current.Z + dz}
	if !s.blocked(full) {
		return full
	}

	out := current
	if abs(dx) >= MoveEpsilon && !s.blocked(Vec3{X: current.X + dx, Y: current.Y, Z: current.Z}) {
		out.X += dx
	}
	if abs(dz) >= MoveEpsilon && !s.blocked(Vec3{X: current.X, Y: current.Y, Z: current.Z + dz}) {
		out.Z += dz
	}
	return out
}

// blocked reports whether a capsule at pos overlaps geometry.
// Query errors fail open.
func (s *SlideResolver) blocked(pos Vec3) bool {
	if s.World == nil {
		return false
	}
	hits, err := s.World.TestCapsule(Capsule{Center: pos, Radius: s.Radius, Height: s.Height})
	if err != nil {
		return false
	}
	return len(hits) > 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
