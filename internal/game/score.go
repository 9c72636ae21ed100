package game

// ScoreChange is emitted only when a score actually changes.
type ScoreChange struct {
	CombatantID CombatantID `json:"combatantId"`
	Score       int         `json:"score"`
	VictimID    CombatantID `json:"victimId"`
}

// KillFeedEntry is one line of the HUD kill feed.
type KillFeedEntry struct {
	KillerName string `json:"killer"`
	VictimName string `json:"victim"`
	WeaponID   string `json:"weapon"`
	TimeMs     int64  `json:"timeMs"`
}

// MatchScoreTracker credits kills on alive->dead edges only.
type MatchScoreTracker struct {
	wasAlive map[CombatantID]bool
	feed     []KillFeedEntry
	feedSize int
}

// NewMatchScoreTracker creates a tracker keeping feedSize kill feed entries.
func NewMatchScoreTracker(feedSize int) *MatchScoreTracker {
	if feedSize <= 0 {
		feedSize = 5
	}
	return &MatchScoreTracker{
		wasAlive: make(map[CombatantID]bool),
		feed:     make([]KillFeedEntry, 0, feedSize),
		feedSize: feedSize,
	}
}

// IsKillEdge reports whether an observed pair is the alive->dead transition.
func IsKillEdge(wasAlive, isDeadNow bool) bool {
	return wasAlive && isDeadNow
}

// Observe compares every combatant with the previous observation and credits
// the recorded killer once per death. The first observation of a combatant
// only records its state.
func (t *MatchScoreTracker) Observe(reg *Registry, now int64) []ScoreChange {
	var changes []ScoreChange

	reg.ForEach(func(c *Combatant) bool {
		prev, seen := t.wasAlive[c.ID]
		t.wasAlive[c.ID] = !c.IsDead
		if !seen || !IsKillEdge(prev, c.IsDead) {
			return true
		}

		killer := reg.Get(c.KillerID)
		weaponID := ""
		if w := reg.Weapon(c.KillerID); w != nil {
			weaponID = w.EquippedWeaponID
		}
		if killer != nil && killer.ID != c.ID {
			killer.Score++
			changes = append(changes, ScoreChange{CombatantID: killer.ID, Score: killer.Score, VictimID: c.ID})
			t.pushFeed(KillFeedEntry{KillerName: killer.Name, VictimName: c.Name, WeaponID: weaponID, TimeMs: now})
		} else {
			t.pushFeed(KillFeedEntry{VictimName: c.Name, TimeMs: now})
		}
		return true
	})

	return changes
}

func (t *MatchScoreTracker) pushFeed(e KillFeedEntry) {
	if len(t.feed) == t.feedSize {
		copy(t.feed, t.feed[1:])
		t.feed = t.feed[:len(t.feed)-1]
	}
	t.feed = append(t.feed, e)
}

// KillFeed returns a copy of the kill feed, oldest first.
func (t *MatchScoreTracker) KillFeed() []KillFeedEntry {
	out := make([]KillFeedEntry, len(t.feed))
	copy(out, t.feed)
	return out
}

// Reset forgets all observations (match teardown).
func (t *MatchScoreTracker) Reset() {
	t.wasAlive = make(map[CombatantID]bool)
	t.feed = t.feed[:0]
}
