package game

import (
	"math"
	"math/rand"
	"testing"
)

var normal = BotDifficulty{AccuracyMultiplier: 1.0, FireIntervalMs: 600}

// fixedRandom returns the same draw every time and counts draws
type fixedRandom struct {
	v     float64
	draws int
}

func (r *fixedRandom) Float64() float64 {
	r.draws++
	return r.v
}

func engageAt(now int64, distance float64) EngagementInput {
	return EngagementInput{
		Now:          now,
		BotEye:       Vec3{Y: 1.6},
		PlayerEye:    Vec3{X: distance, Y: 1.6},
		Distance:     distance,
		MatchStarted: true,
		WantsToShoot: true,
	}
}

func TestDistancePenalty(t *testing.T) {
	tests := []struct {
		distance, want float64
	}{
		{0, 1},
		{15, 0.5},
		{24, 0.2},
		{29, 0.2},
		{100, 0.2},
	}
	for _, tt := range tests {
		if got := DistancePenalty(tt.distance, 0.2, 30); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DistancePenalty(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestAccuracyNonIncreasingWithDistance(t *testing.T) {
	b := NewBotEngagementAI(nil, DefaultBotTuning(), BotDifficulty{AccuracyMultiplier: 1.6, FireIntervalMs: 350}, nil)
	prev := b.Accuracy(0)
	for d := 0.5; d < 80; d += 0.5 {
		a := b.Accuracy(d)
		if a > prev {
			t.Fatalf("accuracy rose from %v to %v at %v", prev, a, d)
		}
		if a < 0 || a > 1 {
			t.Fatalf("accuracy %v out of range", a)
		}
		prev = a
	}
}

func TestAccuracyClamped(t *testing.T) {
	b := NewBotEngagementAI(nil, DefaultBotTuning(), BotDifficulty{AccuracyMultiplier: 50}, nil)
	if got := b.Accuracy(0); got != 1 {
		t.Errorf("Accuracy = %v, want 1", got)
	}
}

func TestIsVisible(t *testing.T) {
	wall := NewBoxWorld([]Box{{Min: Vec3{X: 5, Y: 0, Z: -2}, Max: Vec3{X: 6, Y: 4, Z: 2}}})
	tests := []struct {
		name     string
		world    CollisionWorld
		distance float64
		want     bool
	}{
		{"open", nil, 10, true},
		{"wall before player", wall, 10, false},
		{"wall behind player", wall, 4, true},
		{"beyond engage range", nil, 60, false},
		{"raycast error", &errWorld{}, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBotEngagementAI(tt.world, DefaultBotTuning(), normal, nil)
			in := engageAt(0, tt.distance)
			if got := b.IsVisible(in.BotEye, in.PlayerEye, in.Distance); got != tt.want {
				t.Errorf("IsVisible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateGates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngagementInput)
	}{
		{"match not started", func(in *EngagementInput) { in.MatchStarted = false }},
		{"navigation says hold", func(in *EngagementInput) { in.WantsToShoot = false }},
		{"player protected", func(in *EngagementInput) { in.PlayerProtected = true }},
		{"too close", func(in *EngagementInput) { in.Distance = 1.5; in.PlayerEye = Vec3{X: 1.5, Y: 1.6} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBotEngagementAI(nil, DefaultBotTuning(), normal, &fixedRandom{})
			in := engageAt(0, 10)
			tt.mutate(&in)
			if d := b.Evaluate(in); d.Fired {
				t.Errorf("bot fired: %+v", d)
			}
		})
	}
}

func TestEvaluateCadence(t *testing.T) {
	b := NewBotEngagementAI(nil, DefaultBotTuning(), normal, &fixedRandom{v: 0.99})
	if d := b.Evaluate(engageAt(0, 10)); !d.Fired {
		t.Fatal("bot should be able to fire at t=0")
	}
	if d := b.Evaluate(engageAt(599, 10)); d.Fired {
		t.Error("bot fired inside the interval")
	}
	if d := b.Evaluate(engageAt(600, 10)); !d.Fired {
		t.Error("bot should fire once the interval elapses")
	}
	if b.LastFireTimeMs != 600 {
		t.Errorf("LastFireTimeMs = %d, want 600", b.LastFireTimeMs)
	}
}

func TestEvaluateHitAndMiss(t *testing.T) {
	hit := NewBotEngagementAI(nil, DefaultBotTuning(), normal, &fixedRandom{v: 0})
	d := hit.Evaluate(engageAt(0, 10))
	if !d.Hit || d.Damage != 10 {
		t.Errorf("expected hit for 10, got %+v", d)
	}

	miss := NewBotEngagementAI(nil, DefaultBotTuning(), normal, &fixedRandom{v: 0.99})
	d = miss.Evaluate(engageAt(0, 10))
	if !d.Fired || d.Hit || d.Damage != 0 {
		t.Errorf("expected miss, got %+v", d)
	}
}

// Visible by the coarse line-of-sight test but the exact shot vector clips cover.
type clippingWorld struct{}

func (clippingWorld) TestCapsule(Capsule) ([]int, error) { return nil, nil }

func (clippingWorld) Raycast(_, _ Vec3, maxDistance float64) (RayHit, bool, error) {
	if maxDistance < 60 {
		return RayHit{Distance: maxDistance / 2}, true, nil
	}
	return RayHit{}, false, nil
}

func TestWallBlockedShotIsForcedMiss(t *testing.T) {
	rng := &fixedRandom{v: 0}
	b := NewBotEngagementAI(clippingWorld{}, DefaultBotTuning(), normal, rng)
	d := b.Evaluate(engageAt(0, 10))
	if !d.Fired || !d.WallBlocked || d.Hit {
		t.Fatalf("expected wall-blocked miss, got %+v", d)
	}
	if rng.draws != 0 {
		t.Errorf("wall-blocked shot drew %d random numbers", rng.draws)
	}
	if b.LastFireTimeMs != 0 {
		t.Error("a blocked shot still consumes the cadence")
	}
	if s := b.Stats(); s.Shots != 1 || s.WallBlocked != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v", s)
	}
}

// At 25 units on normal difficulty the penalty is floored, so the per-shot hit
// probability is 0.12 * 1.0 * 0.2 = 0.024.
func TestLongRangeHitRate(t *testing.T) {
	b := NewBotEngagementAI(nil, DefaultBotTuning(), normal, rand.New(rand.NewSource(42)))
	const shots = 10000
	hits := 0
	for i := 0; i < shots; i++ {
		if d := b.Evaluate(engageAt(int64(i)*normal.FireIntervalMs, 25)); d.Hit {
			hits++
		}
	}
	rate := float64(hits) / shots
	if rate < 0.018 || rate > 0.030 {
		t.Errorf("hit rate = %.4f, want about 0.024", rate)
	}
	if s := b.Stats(); s.Shots != shots || s.Hits != hits {
		t.Errorf("stats = %+v", s)
	}
}

func TestRecentShotsRing(t *testing.T) {
	b := NewBotEngagementAI(nil, DefaultBotTuning(), normal, &fixedRandom{v: 0.99})
	for i := 0; i < 100; i++ {
		b.Evaluate(engageAt(int64(i)*600, 10))
	}
	shots := b.RecentShots()
	if len(shots) != shotHistorySize {
		t.Fatalf("len = %d, want %d", len(shots), shotHistorySize)
	}
	if shots[0].TimeMs != 36*600 || shots[len(shots)-1].TimeMs != 99*600 {
		t.Errorf("ring order wrong: first %d last %d", shots[0].TimeMs, shots[len(shots)-1].TimeMs)
	}
}

func TestChaseNavigator(t *testing.T) {
	n := ChaseNavigator{PreferredRange: 12, MaxEngageRange: 60, Speed: 4.5}

	dx, dz, wants := n.Intent(Vec3{}, Vec3{X: 30}, 1)
	if math.Abs(dx-4.5) > 1e-9 || dz != 0 || !wants {
		t.Errorf("Intent = (%v, %v, %v)", dx, dz, wants)
	}

	dx, dz, _ = n.Intent(Vec3{}, Vec3{X: 13}, 1)
	if math.Abs(dx-1) > 1e-9 || dz != 0 {
		t.Errorf("should stop at preferred range, got (%v, %v)", dx, dz)
	}

	dx, dz, _ = n.Intent(Vec3{}, Vec3{X: 5}, 1)
	if dx != 0 || dz != 0 {
		t.Errorf("inside preferred range should hold, got (%v, %v)", dx, dz)
	}

	if _, _, wants = n.Intent(Vec3{}, Vec3{X: 70}, 1); wants {
		t.Error("beyond engage range should not want to shoot")
	}
}
