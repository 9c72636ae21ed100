package game

import "math"

// Capsule is a vertical cylinder with hemispherical caps.
// Height is the full height including both caps.
type Capsule struct {
	Center Vec3
	Radius float64
	Height float64
}

// halfSegment returns the half-length of the capsule's inner segment.
func (c Capsule) halfSegment() float64 {
	h := c.Height/2 - c.Radius
	if h < 0 {
		return 0
	}
	return h
}

// RayHit describes the nearest world intersection along a ray.
type RayHit struct {
	Distance float64
	Point    Vec3
	Index    int // Index of the geometry that was hit
}

// CollisionWorld is the static geometry query surface used by the simulation.
// Implementations may fail; callers treat errors as "no collision".
type CollisionWorld interface {
	// TestCapsule returns the indices of geometry the capsule overlaps.
	TestCapsule(c Capsule) ([]int, error)
	// Raycast returns the nearest hit within maxDistance along a normalized direction.
	Raycast(origin, direction Vec3, maxDistance float64) (RayHit, bool, error)
}

// Box is an axis-aligned block of static geometry.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// NewBox builds a box from a center and full extents.
func NewBox(center, size Vec3) Box {
	half := size.Scale(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// BoxWorld is a CollisionWorld made of static axis-aligned boxes.
// Box count in an arena is small, so queries scan linearly.
type BoxWorld struct {
	boxes []Box
}

// NewBoxWorld creates a world from the given boxes.
func NewBoxWorld(boxes []Box) *BoxWorld {
	cp := make([]Box, len(boxes))
	copy(cp, boxes)
	return &BoxWorld{boxes: cp}
}

// Boxes returns the world geometry. Callers must not modify the slice.
func (w *BoxWorld) Boxes() []Box {
	return w.boxes
}

// TestCapsule returns indices of every box the capsule strictly overlaps.
// A capsule resting flush against a face does not count as overlapping.
func (w *BoxWorld) TestCapsule(c Capsule) ([]int, error) {
	var hits []int
	half := c.halfSegment()
	segMin := c.Center.Y - half
	segMax := c.Center.Y + half
	r2 := c.Radius * c.Radius

	for i, b := range w.boxes {
		dx := axisGap(c.Center.X, c.Center.X, b.Min.X, b.Max.X)
		dz := axisGap(c.Center.Z, c.Center.Z, b.Min.Z, b.Max.Z)
		dy := axisGap(segMin, segMax, b.Min.Y, b.Max.Y)
		if dx*dx+dy*dy+dz*dz < r2 {
			hits = append(hits, i)
		}
	}
	return hits, nil
}

// axisGap returns the distance between intervals [aMin,aMax] and [bMin,bMax] (0 if they overlap).
func axisGap(aMin, aMax, bMin, bMax float64) float64 {
	switch {
	case aMax < bMin:
		return bMin - aMax
	case aMin > bMax:
		return aMin - bMax
	default:
		return 0
	}
}

// Raycast finds the nearest box along the ray using the slab method.
// A ray starting inside a box hits it at distance 0.
func (w *BoxWorld) Raycast(origin, direction Vec3, maxDistance float64) (RayHit, bool, error) {
	best := RayHit{Distance: math.Inf(1), Index: -1}
	found := false

	for i, b := range w.boxes {
		t, ok := rayBoxHitT(origin, direction, b)
		if !ok || t > maxDistance {
			continue
		}
		if t < best.Distance {
			best = RayHit{Distance: t, Point: origin.Add(direction.Scale(t)), Index: i}
			found = true
		}
	}
	if !found {
		return RayHit{}, false, nil
	}
	return best, true, nil
}

// rayBoxHitT returns the entry distance of the ray into the box.
func rayBoxHitT(o, d Vec3, b Box) (float64, bool) {
	tMin := 0.0
	tMax := math.Inf(1)

	slab := func(o, d, lo, hi float64) bool {
		if math.Abs(d) < 1e-12 {
			return o >= lo && o <= hi
		}
		inv := 1.0 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}

	if !slab(o.X, d.X, b.Min.X, b.Max.X) {
		return 0, false
	}
	if !slab(o.Y, d.Y, b.Min.Y, b.Max.Y) {
		return 0, false
	}
	if !slab(o.Z, d.Z, b.Min.Z, b.Max.Z) {
		return 0, false
	}
	return tMin, true
}

// DefaultArena returns a small walled arena with cover blocks, including one thin wall.
func DefaultArena() *BoxWorld {
	const (
		size   = 40.0
		wall   = 1.0
		height = 4.0
	)
	return NewBoxWorld([]Box{
		// Floor is not collision geometry; capsules move on the X/Z plane.
		NewBox(Vec3{X: 0, Y: height / 2, Z: -size / 2}, Vec3{X: size, Y: height, Z: wall}),
		NewBox(Vec3{X: 0, Y: height / 2, Z: size / 2}, Vec3{X: size, Y: height, Z: wall}),
		NewBox(Vec3{X: -size / 2, Y: height / 2, Z: 0}, Vec3{X: wall, Y: height, Z: size}),
		NewBox(Vec3{X: size / 2, Y: height / 2, Z: 0}, Vec3{X: wall, Y: height, Z: size}),
		// Cover
		NewBox(Vec3{X: -6, Y: 1, Z: 0}, Vec3{X: 2, Y: 2, Z: 6}),
		NewBox(Vec3{X: 6, Y: 1, Z: 4}, Vec3{X: 4, Y: 2, Z: 2}),
		NewBox(Vec3{X: 0, Y: height / 2, Z: 10}, Vec3{X: 8, Y: height, Z: 0.1}),
	})
}
