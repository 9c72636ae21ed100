package game

import "math"

// SpawnSystem picks respawn positions.
type SpawnSystem interface {
	SelectSpawnPoint(id CombatantID, avoid []Vec3) (Vec3, error)
}

// FarthestSpawn chooses the spawn point whose nearest live opponent is farthest away.
// Ties resolve to the lowest index, so selection is deterministic.
type FarthestSpawn struct {
	Points []Vec3
}

// NewFarthestSpawn creates a spawn system over points.
func NewFarthestSpawn(points []Vec3) *FarthestSpawn {
	cp := make([]Vec3, len(points))
	copy(cp, points)
	return &FarthestSpawn{Points: cp}
}

// SelectSpawnPoint implements SpawnSystem.
func (s *FarthestSpawn) SelectSpawnPoint(_ CombatantID, avoid []Vec3) (Vec3, error) {
	if len(s.Points) == 0 {
		return Vec3{}, ErrNoSpawnPoints
	}
	if len(avoid) == 0 {
		return s.Points[0], nil
	}

	best := 0
	bestDist := -1.0
	for i, p := range s.Points {
		nearest := math.Inf(1)
		for _, a := range avoid {
			if d := horizontalDist(p, a); d < nearest {
				nearest = d
			}
		}
		if nearest > bestDist {
			bestDist = nearest
			best = i
		}
	}
	return s.Points[best], nil
}

// DefaultSpawnPoints matches DefaultArena.
func DefaultSpawnPoints() []Vec3 {
	return []Vec3{
		{X: -15, Y: 0.9, Z: -15},
		{X: 15, Y: 0.9, Z: 15},
		{X: -15, Y: 0.9, Z: 15},
		{X: 15, Y: 0.9, Z: -15},
	}
}

func horizontalDist(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}
