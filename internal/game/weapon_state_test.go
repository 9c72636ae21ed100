package game

import (
	"errors"
	"testing"
)

func equippedRifle() WeaponState {
	return NewWeaponState(0).Equip(Weapons["rifle"])
}

func TestWeaponSpecsValid(t *testing.T) {
	for _, w := range GetAllWeapons() {
		t.Run(w.ID, func(t *testing.T) {
			if w.MagazineSize <= 0 {
				t.Errorf("magazine size must be positive, got %d", w.MagazineSize)
			}
			if w.FireRate <= 0 {
				t.Errorf("fire rate must be positive, got %v", w.FireRate)
			}
			if w.ReloadTimeMs <= 0 {
				t.Errorf("reload time must be positive, got %d", w.ReloadTimeMs)
			}
			if w.Damage <= 0 || w.Range <= 0 {
				t.Errorf("damage and range must be positive: %+v", w)
			}
		})
	}
}

func TestFireInterval(t *testing.T) {
	tests := []struct {
		name string
		spec WeaponSpec
		want int64
	}{
		{"rifle", Weapons["rifle"], 100},
		{"smg rounds up", Weapons["smg"], 67},
		{"pistol", Weapons["pistol"], 250},
		{"sniper", Weapons["sniper"], 1250},
		{"fractional rate", WeaponSpec{FireRate: 3}, 333},
		{"no rate", WeaponSpec{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.FireIntervalMs(); got != tt.want {
				t.Errorf("FireIntervalMs = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNoWeaponRejectsFire(t *testing.T) {
	w := NewWeaponState(0)
	if w.ReloadDurationMs != DefaultReloadDurationMs {
		t.Errorf("reload duration = %d, want %d", w.ReloadDurationMs, DefaultReloadDurationMs)
	}
	w, res := w.Step(WeaponInput{Trigger: true}, 0)
	if res.Fired || !res.Rejected {
		t.Errorf("expected rejected shot, got %+v", res)
	}
	w, res = w.Step(WeaponInput{Reload: true}, 10)
	if res.ReloadStarted || w.IsReloading {
		t.Error("reload must not start without a weapon")
	}
}

// Empty a 30-round magazine on held trigger, then auto-reload.
func TestMagazineDrainAndAutoReload(t *testing.T) {
	w := equippedRifle()
	now := int64(0)
	shots := 0
	var res WeaponStepResult

	for shots < 30 {
		w, res = w.Step(WeaponInput{Trigger: true}, now)
		if res.Fired {
			shots++
		}
		if !w.Valid() {
			t.Fatalf("ammo invariant broken: %d/%d", w.CurrentAmmo, w.MagazineSize)
		}
		now += 16
	}
	if !w.IsReloading || !res.AutoReload {
		t.Fatalf("expected auto-reload after last round, state %+v res %+v", w, res)
	}
	if w.CurrentAmmo != 0 {
		t.Fatalf("ammo = %d, want 0", w.CurrentAmmo)
	}

	start := w.ReloadStartTimeMs
	w, res = w.Step(WeaponInput{Trigger: true}, start+1999)
	if res.Fired || res.ReloadCompleted {
		t.Errorf("reload should still run at +1999ms: %+v", res)
	}
	w, res = w.Step(WeaponInput{}, start+2000)
	if !res.ReloadCompleted || w.CurrentAmmo != 30 || w.IsReloading {
		t.Errorf("reload should complete exactly at +2000ms: ammo %d res %+v", w.CurrentAmmo, res)
	}
}

func TestHeldTriggerRespectsCadence(t *testing.T) {
	w := equippedRifle()
	w, res := w.Step(WeaponInput{Trigger: true}, 1000)
	if !res.Fired {
		t.Fatal("first press must fire")
	}
	w, res = w.Step(WeaponInput{Trigger: true}, 1050)
	if res.Fired {
		t.Error("held trigger fired inside the interval")
	}
	_, res = w.Step(WeaponInput{Trigger: true}, 1100)
	if !res.Fired {
		t.Error("held trigger should fire once the interval elapses")
	}
}

func TestFreshPressBypassesCadence(t *testing.T) {
	w := equippedRifle()
	w, _ = w.Step(WeaponInput{Trigger: true}, 1000)
	w, _ = w.Step(WeaponInput{}, 1016)
	_, res := w.Step(WeaponInput{Trigger: true}, 1032)
	if !res.Fired {
		t.Error("a fresh press should fire regardless of cadence")
	}
}

func TestManualReload(t *testing.T) {
	w := equippedRifle()

	_, res := w.Step(WeaponInput{Reload: true}, 0)
	if res.ReloadStarted {
		t.Error("reload with a full magazine must be ignored")
	}

	w, _ = w.Step(WeaponInput{Trigger: true}, 0)
	w, res = w.Step(WeaponInput{Reload: true}, 50)
	if !res.ReloadStarted || !w.IsReloading {
		t.Fatal("expected reload to start")
	}

	w, res = w.Step(WeaponInput{Trigger: true}, 100)
	if res.Fired || !res.Rejected {
		t.Errorf("fire during reload must be rejected: %+v", res)
	}

	w, res = w.Step(WeaponInput{}, 50+2000)
	if !res.ReloadCompleted || w.CurrentAmmo != w.MagazineSize {
		t.Errorf("expected full magazine after reload: %+v", w)
	}
}

func TestCompletedReloadCanFireSameTick(t *testing.T) {
	w := equippedRifle()
	w, _ = w.Step(WeaponInput{Trigger: true}, 0)
	w, _ = w.Step(WeaponInput{Reload: true}, 10)
	_, res := w.Step(WeaponInput{Trigger: true}, 2010)
	if !res.ReloadCompleted || !res.Fired {
		t.Errorf("expected reload completion and shot on the same tick: %+v", res)
	}
}

func TestSwitchLatestRequestWins(t *testing.T) {
	w := equippedRifle()
	w, first := w.BeginSwitch("sniper")
	w, second := w.BeginSwitch("smg")

	w, err := w.CompleteSwitch(second, Weapons["smg"], nil)
	if err != nil {
		t.Fatalf("latest switch failed: %v", err)
	}
	if w.EquippedWeaponID != "smg" || w.CurrentAmmo != 40 {
		t.Errorf("expected smg with full magazine, got %s %d", w.EquippedWeaponID, w.CurrentAmmo)
	}

	// The older, slower load arrives afterwards and must be discarded.
	w, err = w.CompleteSwitch(first, Weapons["sniper"], nil)
	if !errors.Is(err, ErrSwitchSuperseded) {
		t.Errorf("err = %v, want ErrSwitchSuperseded", err)
	}
	if w.EquippedWeaponID != "smg" {
		t.Errorf("stale result replaced weapon with %s", w.EquippedWeaponID)
	}
}

func TestSupersededResultBeforeLatest(t *testing.T) {
	w := equippedRifle()
	w, first := w.BeginSwitch("sniper")
	w, second := w.BeginSwitch("pistol")

	w, err := w.CompleteSwitch(first, Weapons["sniper"], nil)
	if !errors.Is(err, ErrSwitchSuperseded) {
		t.Fatalf("err = %v, want ErrSwitchSuperseded", err)
	}
	if !w.SwitchPending() || w.PendingWeaponID() != "pistol" {
		t.Error("newer request must stay pending")
	}
	w, _ = w.CompleteSwitch(second, Weapons["pistol"], nil)
	if w.EquippedWeaponID != "pistol" {
		t.Errorf("equipped = %s, want pistol", w.EquippedWeaponID)
	}
}

func TestFailedSwitchClearsPending(t *testing.T) {
	w := equippedRifle()
	w, ticket := w.BeginSwitch("railgun")
	w, err := w.CompleteSwitch(ticket, WeaponSpec{}, ErrUnknownWeapon)
	if !errors.Is(err, ErrUnknownWeapon) {
		t.Fatalf("err = %v, want ErrUnknownWeapon", err)
	}
	if w.SwitchPending() {
		t.Error("failed switch must clear the pending flag")
	}
	if w.EquippedWeaponID != "rifle" {
		t.Errorf("failed switch changed weapon to %s", w.EquippedWeaponID)
	}

	w, next := w.BeginSwitch("pistol")
	w, err = w.CompleteSwitch(next, Weapons["pistol"], nil)
	if err != nil || w.EquippedWeaponID != "pistol" {
		t.Errorf("later switch blocked: err=%v weapon=%s", err, w.EquippedWeaponID)
	}
}

func TestSwitchCancelsReload(t *testing.T) {
	w := equippedRifle()
	w, _ = w.Step(WeaponInput{Trigger: true}, 0)
	w, _ = w.Step(WeaponInput{Reload: true}, 10)
	w, ticket := w.BeginSwitch("pistol")
	w, _ = w.CompleteSwitch(ticket, Weapons["pistol"], nil)
	if w.IsReloading {
		t.Error("switch must cancel the reload")
	}
	if w.ReloadDurationMs != Weapons["pistol"].ReloadTimeMs {
		t.Errorf("reload duration = %d, want %d", w.ReloadDurationMs, Weapons["pistol"].ReloadTimeMs)
	}
}

// Firing every 100ms for 3000ms empties the magazine exactly once.
func TestSteadyFireScenario(t *testing.T) {
	w := equippedRifle()
	fired, autoReloads := 0, 0
	var lastShot int64
	for now := int64(0); now < 3000; now += 100 {
		var res WeaponStepResult
		w, res = w.Step(WeaponInput{Trigger: true}, now)
		if res.Fired {
			fired++
			lastShot = now
		}
		if res.AutoReload {
			autoReloads++
		}
	}
	if fired != 30 || autoReloads != 1 {
		t.Fatalf("fired %d rounds with %d auto-reloads, want 30 and 1", fired, autoReloads)
	}
	w, _ = w.Step(WeaponInput{}, lastShot+w.ReloadDurationMs)
	if w.CurrentAmmo != 30 || w.IsReloading {
		t.Errorf("ammo = %d reloading = %v after reload", w.CurrentAmmo, w.IsReloading)
	}
}
