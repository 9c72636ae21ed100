package game

import "fmt"

// Default lifecycle timings.
const (
	DefaultRespawnDelayMs    int64 = 3000
	DefaultInvulnerabilityMs int64 = 2000
)

// DeathEvent records a death transition.
type DeathEvent struct {
	VictimID CombatantID `json:"victimId"`
	KillerID CombatantID `json:"killerId"`
	TimeMs   int64       `json:"timeMs"`
}

// DamageOutcome reports what ApplyDamage did.
type DamageOutcome struct {
	Applied     bool // False when protected, already dead, or amount <= 0
	HealthAfter int
	Killed      bool
	Death       DeathEvent // Valid only when Killed
}

// RespawnController owns health, death and spawn protection for every combatant
// (Alive -> Dead -> Invulnerable -> Alive).
type RespawnController struct {
	registry *Registry
	spawns   SpawnSystem

	RespawnDelayMs    int64
	InvulnerabilityMs int64
}

// NewRespawnController creates a controller over registry.
func NewRespawnController(registry *Registry, spawns SpawnSystem, respawnDelayMs, invulnMs int64) *RespawnController {
	return &RespawnController{
		registry:          registry,
		spawns:            spawns,
		RespawnDelayMs:    respawnDelayMs,
		InvulnerabilityMs: invulnMs,
	}
}

// ApplyDamage subtracts amount from the target's health. It is a no-op while the
// target is invulnerable at now or already dead.
func (rc *RespawnController) ApplyDamage(targetID, attackerID CombatantID, amount int, now int64) (DamageOutcome, error) {
	target, err := rc.registry.MustGet(targetID)
	if err != nil {
		return DamageOutcome{}, err
	}
	if amount <= 0 || target.IsDead || target.IsInvulnerable(now) {
		return DamageOutcome{HealthAfter: target.Health}, nil
	}

	target.Health -= amount
	if target.Health < 0 {
		target.Health = 0
	}
	out := DamageOutcome{Applied: true, HealthAfter: target.Health}

	if target.Health == 0 {
		target.IsDead = true
		target.Deaths++
		target.DiedAtMs = now
		target.KillerID = attackerID
		out.Killed = true
		out.Death = DeathEvent{VictimID: targetID, KillerID: attackerID, TimeMs: now}
	}
	return out, nil
}

// Update returns the dead combatants whose respawn delay has elapsed at now.
// The caller triggers Respawn for each.
func (rc *RespawnController) Update(now int64) []CombatantID {
	var due []CombatantID
	rc.registry.ForEach(func(c *Combatant) bool {
		if c.IsDead && now-c.DiedAtMs >= rc.RespawnDelayMs {
			due = append(due, c.ID)
		}
		return true
	})
	return due
}

// Respawn restores full health and opens a fresh invulnerability window that
// replaces any residual one. The combatant is moved to a spawn point away from live
// opponents. If spawn selection fails the combatant respawns in place and the
// error is returned.
func (rc *RespawnController) Respawn(id CombatantID, now, invulnerabilityMs int64) (Vec3, error) {
	c, err := rc.registry.MustGet(id)
	if err != nil {
		return Vec3{}, err
	}

	c.Health = MaxHealth
	c.IsDead = false
	c.InvulnerableUntil = now + invulnerabilityMs
	c.KillerID = NoCombatant

	if rc.spawns == nil {
		return c.Position, nil
	}
	pos, err := rc.spawns.SelectSpawnPoint(id, rc.registry.Opponents(id))
	if err != nil {
		return c.Position, fmt.Errorf("respawn %d: %w", id, err)
	}
	c.Position = pos
	return pos, nil
}

// HasSpawnProtection reports whether id is currently invulnerable.
func (rc *RespawnController) HasSpawnProtection(id CombatantID, now int64) bool {
	c := rc.registry.Get(id)
	return c != nil && c.IsInvulnerable(now)
}
