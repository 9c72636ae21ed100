package game

import "testing"

func TestIsKillEdge(t *testing.T) {
	tests := []struct {
		wasAlive, isDead, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, tt := range tests {
		if got := IsKillEdge(tt.wasAlive, tt.isDead); got != tt.want {
			t.Errorf("IsKillEdge(%v, %v) = %v, want %v", tt.wasAlive, tt.isDead, got, tt.want)
		}
	}
}

func TestScoreCreditedOncePerDeath(t *testing.T) {
	reg, rc, a, b := newDuel(nil)
	tr := NewMatchScoreTracker(5)
	tr.Observe(reg, 0)

	rc.ApplyDamage(b, a, 100, 100)
	changes := tr.Observe(reg, 100)
	if len(changes) != 1 || changes[0].CombatantID != a || changes[0].Score != 1 {
		t.Fatalf("changes = %+v", changes)
	}

	// Dead for many more ticks: no further credit.
	for now := int64(116); now < 3000; now += 16 {
		if c := tr.Observe(reg, now); len(c) != 0 {
			t.Fatalf("extra score change at %d: %+v", now, c)
		}
	}
	if reg.Get(a).Score != 1 {
		t.Errorf("score = %d, want 1", reg.Get(a).Score)
	}

	rc.Respawn(b, 3100, 0)
	tr.Observe(reg, 3100)
	rc.ApplyDamage(b, a, 100, 3200)
	tr.Observe(reg, 3200)
	if reg.Get(a).Score != 2 {
		t.Errorf("score = %d, want 2 after second kill", reg.Get(a).Score)
	}
}

func TestFirstObservationOfDeadCombatantIsNotAKill(t *testing.T) {
	reg, rc, a, b := newDuel(nil)
	rc.ApplyDamage(b, a, 100, 0)

	tr := NewMatchScoreTracker(5)
	if changes := tr.Observe(reg, 0); len(changes) != 0 {
		t.Errorf("first observation credited %+v", changes)
	}
}

func TestSelfKillNotScored(t *testing.T) {
	reg, rc, _, b := newDuel(nil)
	tr := NewMatchScoreTracker(5)
	tr.Observe(reg, 0)

	rc.ApplyDamage(b, b, 100, 10)
	if changes := tr.Observe(reg, 10); len(changes) != 0 {
		t.Errorf("self kill scored: %+v", changes)
	}
	feed := tr.KillFeed()
	if len(feed) != 1 || feed[0].VictimName != "Bot" || feed[0].KillerName != "" {
		t.Errorf("feed = %+v", feed)
	}
}

func TestKillFeedBounded(t *testing.T) {
	reg, rc, a, b := newDuel(nil)
	tr := NewMatchScoreTracker(3)
	tr.Observe(reg, 0)

	now := int64(0)
	for i := 0; i < 5; i++ {
		now += 100
		rc.ApplyDamage(b, a, 100, now)
		tr.Observe(reg, now)
		now += 100
		rc.Respawn(b, now, 0)
		tr.Observe(reg, now)
	}

	feed := tr.KillFeed()
	if len(feed) != 3 {
		t.Fatalf("feed length = %d, want 3", len(feed))
	}
	if feed[0].TimeMs != 500 || feed[2].TimeMs != 900 {
		t.Errorf("feed should keep the newest entries, got %+v", feed)
	}
	if feed[2].WeaponID != "rifle" || feed[2].KillerName != "Player" {
		t.Errorf("feed entry = %+v", feed[2])
	}
}
