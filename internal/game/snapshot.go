package game

import (
	"sync/atomic"
	"time"
)

// Snapshot capacity limits
const (
	MaxCuesPerSnapshot      = 64
	MaxCombatantsInSnapshot = 8
)

// CombatantSnapshot is an immutable copy of combatant state for presentation.
// Uses value types (not pointers) to ensure immutability.
type CombatantSnapshot struct {
	ID          CombatantID `json:"id"`
	Name        string      `json:"name"`
	IsBot       bool        `json:"isBot"`
	Position    Vec3        `json:"position"`
	Health      int         `json:"health"`
	IsDead      bool        `json:"isDead"`
	Protected   bool        `json:"protected"`
	Score       int         `json:"score"`
	WeaponID    string      `json:"weaponId"`
	Ammo        int         `json:"ammo"`
	MaxAmmo     int         `json:"maxAmmo"`
	IsReloading bool        `json:"isReloading"`
}

// HUDSnapshot is the complete read-only view produced after each tick.
// All slices are pre-allocated and capped.
type HUDSnapshot struct {
	Sequence  uint64    `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	Tick      uint64    `json:"tick"`
	MatchTime int64     `json:"matchTimeMs"`

	// Local player view
	Health        int  `json:"health"`
	MaxHealth     int  `json:"maxHealth"`
	Ammo          int  `json:"ammo"`
	MaxAmmo       int  `json:"maxAmmo"`
	IsReloading   bool `json:"isReloading"`
	Score         int  `json:"score"`
	OpponentScore int  `json:"opponentScore"`

	KillFeed   []KillFeedEntry     `json:"killFeed"`
	Combatants []CombatantSnapshot `json:"combatants"`
	Cues       []Cue               `json:"cues"`
}

// ClampHealth bounds a displayed health value. The simulation never produces
// out-of-range values; this is a presentation safety net only.
func ClampHealth(h, max int) int {
	if h < 0 {
		return 0
	}
	if h > max {
		return max
	}
	return h
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure
// Uses triple buffering for lock-free producer/consumer
type SnapshotPool struct {
	snapshots [3]HUDSnapshot
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(killFeedSize int) *SnapshotPool {
	pool := &SnapshotPool{}
	for i := 0; i < 3; i++ {
		pool.snapshots[i] = HUDSnapshot{
			KillFeed:   make([]KillFeedEntry, 0, killFeedSize),
			Combatants: make([]CombatantSnapshot, 0, MaxCombatantsInSnapshot),
			Cues:       make([]Cue, 0, MaxCuesPerSnapshot),
		}
	}
	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the tick)
// Returns a snapshot with reset slices but preserved capacity
func (p *SnapshotPool) AcquireWrite() *HUDSnapshot {
	idx := (atomic.LoadUint32(&p.readIdx) + 1) % 3
	atomic.StoreUint32(&p.writeIdx, idx)
	snap := &p.snapshots[idx]

	snap.KillFeed = snap.KillFeed[:0]
	snap.Combatants = snap.Combatants[:0]
	snap.Cues = snap.Cues[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()
	return snap
}

// PublishWrite marks write complete and advances read pointer
// Called after snapshot is fully populated
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only)
func (p *SnapshotPool) AcquireRead() *HUDSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// Copy returns a deep copy safe to retain beyond the next two ticks.
func (s *HUDSnapshot) Copy() HUDSnapshot {
	out := *s
	out.KillFeed = append([]KillFeedEntry(nil), s.KillFeed...)
	out.Combatants = append([]CombatantSnapshot(nil), s.Combatants...)
	out.Cues = append([]Cue(nil), s.Cues...)
	return out
}
