package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeMatchStart
	EventTypeSpawn
	EventTypeFire
	EventTypeDamage
	EventTypeKill
	EventTypeRespawn
	EventTypeWeaponEquipped
	EventTypeScoreChanged
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8           `json:"version"`
	Type      EventType       `json:"type"`
	Timestamp int64           `json:"timestamp"` // Unix nano (wall clock)
	Sequence  uint64          `json:"sequence"`  // Monotonic sequence
	TickNum   uint64          `json:"tickNum"`
	MatchTime int64           `json:"matchTimeMs"` // Simulation clock
	SourceID  uint32          `json:"sourceId"`    // Source combatant (for rate limiting)
	Payload   json.RawMessage `json:"payload"`     // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeMatchStart:
		return "match_start"
	case EventTypeSpawn:
		return "spawn"
	case EventTypeFire:
		return "fire"
	case EventTypeDamage:
		return "damage"
	case EventTypeKill:
		return "kill"
	case EventTypeRespawn:
		return "respawn"
	case EventTypeWeaponEquipped:
		return "weapon_equipped"
	case EventTypeScoreChanged:
		return "score_changed"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// MatchStartPayload opens a match in the log
type MatchStartPayload struct {
	MatchID    string `json:"matchId"`
	Seed       int64  `json:"seed"`
	Difficulty string `json:"difficulty"`
}

// FirePayload contains a resolved shot
type FirePayload struct {
	ShooterID   CombatantID `json:"shooterId"`
	WeaponID    string      `json:"weaponId"`
	Hit         bool        `json:"hit"`
	TargetID    CombatantID `json:"targetId,omitempty"`
	WallBlocked bool        `json:"wallBlocked,omitempty"`
}

// DamagePayload contains damage event details
type DamagePayload struct {
	AttackerID CombatantID `json:"attackerId"`
	VictimID   CombatantID `json:"victimId"`
	Damage     int         `json:"damage"`
	VictimHP   int         `json:"victimHp"`
}

// KillPayload contains kill event details
type KillPayload struct {
	KillerID     CombatantID `json:"killerId"`
	VictimID     CombatantID `json:"victimId"`
	KillerScore  int         `json:"killerScore"`
	VictimDeaths int         `json:"victimDeaths"`
}

// RespawnPayload contains respawn event details
type RespawnPayload struct {
	CombatantID       CombatantID `json:"combatantId"`
	Position          Vec3        `json:"position"`
	InvulnerableUntil int64       `json:"invulnerableUntil"`
}

// WeaponEquippedPayload records a completed weapon switch
type WeaponEquippedPayload struct {
	CombatantID CombatantID `json:"combatantId"`
	WeaponID    string      `json:"weaponId"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, matchTime int64, sourceID CombatantID, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		MatchTime: matchTime,
		SourceID:  uint32(sourceID),
		Payload:   EncodePayload(payload),
	}
}

// CueKind separates audio cues from visual effects.
type CueKind uint8

const (
	CueAudio CueKind = iota + 1
	CueVFX
)

// Cue names consumed by the audio and VFX hosts.
const (
	CueGunshot        = "gunshot"
	CueSpawn          = "spawn"
	CueReloadComplete = "reload_complete"
	CueMuzzleFlash    = "muzzle_flash"
	CueDamageNumber   = "damage_number"
	CueHitMarker      = "hit_marker"
	CueDeathParticles = "death_particles"
	CueRespawnRing    = "respawn_ring"
)

// Cue is a discrete presentation event produced by a tick.
type Cue struct {
	Kind      CueKind     `json:"kind"`
	Name      string      `json:"name"`
	Position  Vec3        `json:"position"`
	Magnitude float64     `json:"magnitude,omitempty"`
	SourceID  CombatantID `json:"sourceId,omitempty"`
}
