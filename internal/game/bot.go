package game

import "math"

// BotDifficulty is immutable for a match.
type BotDifficulty struct {
	AccuracyMultiplier float64 `json:"accuracyMultiplier"`
	FireIntervalMs     int64   `json:"fireIntervalMs"`
}

// BotTuning holds the engagement constants shared by every difficulty.
type BotTuning struct {
	BaseAccuracy   float64
	PenaltyFloor   float64 // Lower bound of the distance penalty
	FalloffRange   float64 // Distance at which the linear penalty would reach zero
	MaxEngageRange float64
	MinEngageRange float64
	Damage         int
}

// DefaultBotTuning returns the stock engagement constants.
func DefaultBotTuning() BotTuning {
	return BotTuning{
		BaseAccuracy:   0.12,
		PenaltyFloor:   0.2,
		FalloffRange:   30,
		MaxEngageRange: 60,
		MinEngageRange: 1.5,
		Damage:         10,
	}
}

// Random is the subset of *rand.Rand the bot needs.
type Random interface {
	Float64() float64
}

// EngagementInput is everything the bot looks at in one tick.
type EngagementInput struct {
	Now             int64
	BotEye          Vec3
	PlayerEye       Vec3
	Distance        float64 // Straight-line eye-to-eye distance
	MatchStarted    bool
	WantsToShoot    bool // Navigation signal
	PlayerProtected bool // Player has spawn protection
}

// EngagementDecision is the outcome of one Evaluate call. When Hit is true the
// caller applies Damage through the RespawnController.
type EngagementDecision struct {
	Visible     bool
	Fired       bool
	WallBlocked bool
	Hit         bool
	Damage      int
	Accuracy    float64
}

// ShotRecord is one bot shot, kept for adaptive difficulty tuning.
type ShotRecord struct {
	TimeMs      int64   `json:"timeMs"`
	Distance    float64 `json:"distance"`
	Accuracy    float64 `json:"accuracy"`
	Hit         bool    `json:"hit"`
	WallBlocked bool    `json:"wallBlocked"`
}

// BotStats aggregates shot outcomes.
type BotStats struct {
	Shots       int `json:"shots"`
	Hits        int `json:"hits"`
	Misses      int `json:"misses"`
	WallBlocked int `json:"wallBlocked"`
}

// shotHistorySize bounds the recent-shot ring.
const shotHistorySize = 64

// BotEngagementAI decides and resolves bot shots: line-of-sight gating,
// distance-scaled accuracy and fire cadence.
type BotEngagementAI struct {
	World      CollisionWorld
	Tuning     BotTuning
	Difficulty BotDifficulty

	LastFireTimeMs int64

	rng     Random
	stats   BotStats
	history [shotHistorySize]ShotRecord
	histLen int
	histPos int
}

// NewBotEngagementAI creates a bot that may fire on its first evaluated tick at or after t=0.
func NewBotEngagementAI(world CollisionWorld, tuning BotTuning, difficulty BotDifficulty, rng Random) *BotEngagementAI {
	return &BotEngagementAI{
		World:          world,
		Tuning:         tuning,
		Difficulty:     difficulty,
		LastFireTimeMs: -difficulty.FireIntervalMs,
		rng:            rng,
	}
}

// DistancePenalty is the linear falloff max(floor, 1 - distance/falloffRange).
func DistancePenalty(distance, floor, falloffRange float64) float64 {
	if falloffRange <= 0 {
		return floor
	}
	return math.Max(floor, 1-distance/falloffRange)
}

// Accuracy returns the hit probability at distance, clamped to [0, 1].
func (b *BotEngagementAI) Accuracy(distance float64) float64 {
	p := b.Tuning.BaseAccuracy * b.Difficulty.AccuracyMultiplier *
		DistancePenalty(distance, b.Tuning.PenaltyFloor, b.Tuning.FalloffRange)
	return math.Max(0, math.Min(1, p))
}

// CanFire reports whether the cadence allows a shot at now.
func (b *BotEngagementAI) CanFire(now int64) bool {
	return now-b.LastFireTimeMs >= b.Difficulty.FireIntervalMs
}

// IsVisible casts bot-eye -> player-eye. The player is visible when inside
// engage range and no geometry is hit before reaching them.
func (b *BotEngagementAI) IsVisible(botEye, playerEye Vec3, distance float64) bool {
	if distance >= b.Tuning.MaxEngageRange {
		return false
	}
	dir := playerEye.Sub(botEye).Normalize()
	if dir == (Vec3{}) {
		return true
	}
	hitDist, hit := b.worldHit(botEye, dir, b.Tuning.MaxEngageRange)
	return !hit || hitDist > distance
}

// bulletHitsWall re-checks the exact shot vector for geometry before the player.
func (b *BotEngagementAI) bulletHitsWall(botEye, target Vec3, distance float64) bool {
	dir := target.Sub(botEye).Normalize()
	if dir == (Vec3{}) {
		return false
	}
	hitDist, hit := b.worldHit(botEye, dir, distance)
	return hit && hitDist < distance
}

// worldHit raycasts the world; query errors fail open.
func (b *BotEngagementAI) worldHit(origin, dir Vec3, maxDist float64) (float64, bool) {
	if b.World == nil {
		return 0, false
	}
	hit, ok, err := b.World.Raycast(origin, dir, maxDist)
	if err != nil || !ok {
		return 0, false
	}
	return hit.Distance, true
}

// Evaluate runs the visibility and fire gates and, if the bot fires, resolves the shot.
// Firing always advances LastFireTimeMs regardless of the outcome.
func (b *BotEngagementAI) Evaluate(in EngagementInput) EngagementDecision {
	var d EngagementDecision
	d.Visible = b.IsVisible(in.BotEye, in.PlayerEye, in.Distance)

	if !in.MatchStarted || !in.WantsToShoot || !b.CanFire(in.Now) || !d.Visible ||
		in.Distance <= b.Tuning.MinEngageRange || in.PlayerProtected {
		return d
	}

	d.Fired = true
	b.LastFireTimeMs = in.Now
	d.Accuracy = b.Accuracy(in.Distance)

	if b.bulletHitsWall(in.BotEye, in.PlayerEye, in.Distance) {
		d.WallBlocked = true
	} else if b.rng != nil && b.rng.Float64() < d.Accuracy {
		d.Hit = true
		d.Damage = b.Tuning.Damage
	}

	b.record(ShotRecord{
		TimeMs:      in.Now,
		Distance:    in.Distance,
		Accuracy:    d.Accuracy,
		Hit:         d.Hit,
		WallBlocked: d.WallBlocked,
	})
	return d
}

func (b *BotEngagementAI) record(r ShotRecord) {
	b.stats.Shots++
	switch {
	case r.Hit:
		b.stats.Hits++
	case r.WallBlocked:
		b.stats.WallBlocked++
		b.stats.Misses++
	default:
		b.stats.Misses++
	}

	b.history[b.histPos] = r
	b.histPos = (b.histPos + 1) % shotHistorySize
	if b.histLen < shotHistorySize {
		b.histLen++
	}
}

// Stats returns aggregate shot outcomes.
func (b *BotEngagementAI) Stats() BotStats {
	return b.stats
}

// RecentShots returns up to the last 64 shots, oldest first.
func (b *BotEngagementAI) RecentShots() []ShotRecord {
	out := make([]ShotRecord, 0, b.histLen)
	start := (b.histPos - b.histLen + shotHistorySize) % shotHistorySize
	for i := 0; i < b.histLen; i++ {
		out = append(out, b.history[(start+i)%shotHistorySize])
	}
	return out
}

// ChaseNavigator produces the bot's movement intent and the wants-to-shoot signal.
type ChaseNavigator struct {
	PreferredRange float64
	MaxEngageRange float64
	Speed          float64 // Units per second
}

// Intent returns the horizontal displacement toward the player for dt seconds
// and whether the bot wants to shoot.
func (n ChaseNavigator) Intent(botPos, playerPos Vec3, dt float64) (dx, dz float64, wantsToShoot bool) {
	dist := horizontalDist(botPos, playerPos)
	wantsToShoot = dist <= n.MaxEngageRange
	if dist <= n.PreferredRange || dist < 1e-9 {
		return 0, 0, wantsToShoot
	}
	step := math.Min(n.Speed*dt, dist-n.PreferredRange)
	dx = (playerPos.X - botPos.X) / dist * step
	dz = (playerPos.Z - botPos.Z) / dist * step
	return dx, dz, wantsToShoot
}
