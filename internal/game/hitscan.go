package game

import "math"

// FireRequest is a single hit-scan shot.
type FireRequest struct {
	ShooterID   CombatantID
	WeaponID    string
	Origin      Vec3
	Direction   Vec3 // Normalized
	TimestampMs int64
}

// FireResult is the outcome of resolving a FireRequest. It carries no side effects;
// callers apply Damage through the RespawnController.
type FireResult struct {
	Hit      bool
	TargetID CombatantID // Valid only when Hit is true
	Damage   int
	HitPoint Vec3    // Valid only when Hit is true
	Distance float64 // Distance to the hit, or to the blocking geometry when Occluded
	Occluded bool    // A target was in the line of fire but geometry was closer
}

// HitResolver resolves hit-scan fire against target capsules and world occlusion.
type HitResolver struct {
	World    CollisionWorld
	MaxRange float64
}

// NewHitResolver creates a resolver limited to maxRange.
func NewHitResolver(world CollisionWorld, maxRange float64) *HitResolver {
	return &HitResolver{World: world, MaxRange: maxRange}
}

// Resolve casts the request's ray against every candidate capsule; the nearest wins.
// The winner is credited only if no world geometry lies closer along the same ray.
// Equal distances break toward the lower combatant id.
func (h *HitResolver) Resolve(req FireRequest, targets map[CombatantID]Capsule, damage int) FireResult {
	dir := req.Direction.Normalize()
	if dir == (Vec3{}) {
		return FireResult{}
	}

	bestID := CombatantID(0)
	bestT := math.Inf(1)
	found := false
	for id, capsule := range targets {
		if id == req.ShooterID {
			continue
		}
		t, ok := RayCapsule(req.Origin, dir, capsule)
		if !ok || t > h.MaxRange {
			continue
		}
		if t < bestT || (t == bestT && id < bestID) {
			bestT = t
			bestID = id
			found = true
		}
	}
	if !found {
		return FireResult{}
	}

	if h.World != nil {
		if hit, ok, err := h.World.Raycast(req.Origin, dir, bestT); err == nil && ok && hit.Distance < bestT {
			return FireResult{Occluded: true, Distance: hit.Distance}
		}
	}

	return FireResult{
		Hit:      true,
		TargetID: bestID,
		Damage:   damage,
		HitPoint: req.Origin.Add(dir.Scale(bestT)),
		Distance: bestT,
	}
}

// RayCapsule returns the distance along a normalized ray to its first intersection
// with a vertical capsule. A ray starting inside the capsule hits at distance 0.
func RayCapsule(origin, dir Vec3, c Capsule) (float64, bool) {
	half := c.halfSegment()
	a := Vec3{X: c.Center.X, Y: c.Center.Y - half, Z: c.Center.Z}
	b := Vec3{X: c.Center.X, Y: c.Center.Y + half, Z: c.Center.Z}
	r := c.Radius

	if segmentDistance(origin, a, b) <= r {
		return 0, true
	}

	best := math.Inf(1)

	// Cylinder body
	ba := b.Sub(a)
	baba := ba.Dot(ba)
	if baba > 1e-12 {
		oa := origin.Sub(a)
		bard := ba.Dot(dir)
		baoa := ba.Dot(oa)
		rdoa := dir.Dot(oa)
		oaoa := oa.Dot(oa)
		qa := baba - bard*bard
		if qa > 1e-12 {
			qb := baba*rdoa - baoa*bard
			qc := baba*oaoa - baoa*baoa - r*r*baba
			disc := qb*qb - qa*qc
			if disc >= 0 {
				t := (-qb - math.Sqrt(disc)) / qa
				y := baoa + t*bard
				if t >= 0 && y > 0 && y < baba {
					best = t
				}
			}
		}
	}

	// End caps
	for _, center := range [2]Vec3{a, b} {
		if t, ok := raySphere(origin, dir, center, r); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// raySphere returns the nearest non-negative intersection distance with a sphere.
func raySphere(origin, dir, center Vec3, r float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b Vec3) float64 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom < 1e-12 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / denom
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
