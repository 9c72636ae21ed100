package game

import "fmt"

// CombatantID is a stable registry index. Zero means "no combatant".
type CombatantID uint32

// NoCombatant is the zero id.
const NoCombatant CombatantID = 0

// MaxHealth is the health granted on spawn and respawn.
const MaxHealth = 100

// Combatant is one participant in the match.
// Health, IsDead and InvulnerableUntil are owned by the RespawnController;
// Score is owned by the MatchScoreTracker.
type Combatant struct {
	ID                CombatantID `json:"id"`
	Name              string      `json:"name"`
	IsBot             bool        `json:"isBot"`
	Position          Vec3        `json:"position"`
	Health            int         `json:"health"`
	IsDead            bool        `json:"isDead"`
	InvulnerableUntil int64       `json:"invulnerableUntil"`
	Score             int         `json:"score"`
	Deaths            int         `json:"deaths"`

	DiedAtMs int64       `json:"-"`
	KillerID CombatantID `json:"-"`
}

// IsInvulnerable reports whether the spawn protection window is open at now.
func (c *Combatant) IsInvulnerable(now int64) bool {
	return now < c.InvulnerableUntil
}

// slot pairs a combatant with its weapon runtime state.
type slot struct {
	combatant Combatant
	weapon    WeaponState
}

// Registry is an indexed arena of combatants keyed by CombatantID.
// Lookup is O(1) and iteration follows insertion order.
type Registry struct {
	slots []slot
}

// NewRegistry creates a registry with room for capacity combatants.
func NewRegistry(capacity int) *Registry {
	return &Registry{slots: make([]slot, 0, capacity)}
}

// Add registers a combatant at full health and returns its id.
func (r *Registry) Add(name string, isBot bool, pos Vec3, weapon WeaponState) CombatantID {
	id := CombatantID(len(r.slots) + 1)
	r.slots = append(r.slots, slot{
		combatant: Combatant{
			ID:       id,
			Name:     name,
			IsBot:    isBot,
			Position: pos,
			Health:   MaxHealth,
		},
		weapon: weapon,
	})
	return id
}

// Get returns the combatant for id, or nil.
func (r *Registry) Get(id CombatantID) *Combatant {
	if id == NoCombatant || int(id) > len(r.slots) {
		return nil
	}
	return &r.slots[id-1].combatant
}

// MustGet returns the combatant or an ErrUnknownCombatant error.
func (r *Registry) MustGet(id CombatantID) (*Combatant, error) {
	c := r.Get(id)
	if c == nil {
		return nil, fmt.Errorf("combatant %d: %w", id, ErrUnknownCombatant)
	}
	return c, nil
}

// Weapon returns the weapon state for id, or nil.
func (r *Registry) Weapon(id CombatantID) *WeaponState {
	if id == NoCombatant || int(id) > len(r.slots) {
		return nil
	}
	return &r.slots[id-1].weapon
}

// Len returns the number of registered combatants.
func (r *Registry) Len() int {
	return len(r.slots)
}

// ForEach visits combatants in id order. Return false to stop.
func (r *Registry) ForEach(fn func(c *Combatant) bool) {
	for i := range r.slots {
		if !fn(&r.slots[i].combatant) {
			return
		}
	}
}

// Opponents returns the positions of live combatants other than id.
func (r *Registry) Opponents(id CombatantID) []Vec3 {
	out := make([]Vec3, 0, len(r.slots))
	for i := range r.slots {
		c := &r.slots[i].combatant
		if c.ID != id && !c.IsDead {
			out = append(out, c.Position)
		}
	}
	return out
}

// Reset clears all combatants (match teardown).
func (r *Registry) Reset() {
	r.slots = r.slots[:0]
}
