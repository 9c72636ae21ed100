package game

// DefaultReloadDurationMs is used while no weapon spec is equipped.
const DefaultReloadDurationMs int64 = 2000

// WeaponInput is the per-tick trigger/reload input for one combatant.
type WeaponInput struct {
	Trigger bool // Fire button is down this tick
	Reload  bool // Reload was requested this tick
}

// WeaponStepResult reports the transitions that happened during one Step.
type WeaponStepResult struct {
	Fired           bool
	ReloadStarted   bool
	AutoReload      bool // ReloadStarted was caused by running dry
	ReloadCompleted bool
	Rejected        bool // Trigger was pulled but the fire gate was closed
}

// SwitchTicket identifies one weapon switch request. Only the ticket carrying
// the latest generation may complete.
type SwitchTicket struct {
	Generation uint64
	WeaponID   string
}

// WeaponState is the per-combatant ammo/fire/reload state machine (Ready <-> Reloading).
// Methods use value receivers and return the next state.
type WeaponState struct {
	EquippedWeaponID string
	Spec             *WeaponSpec

	MagazineSize      int
	CurrentAmmo       int
	FireIntervalMs    int64
	LastFireTimeMs    int64
	IsReloading       bool
	ReloadStartTimeMs int64
	ReloadDurationMs  int64

	triggerHeld bool // Trigger state seen on the previous Step

	switchGeneration uint64
	pendingSwitch    bool
	pendingWeaponID  string
}

// NewWeaponState returns an empty state with no weapon equipped.
// defaultReloadMs <= 0 uses DefaultReloadDurationMs.
func NewWeaponState(defaultReloadMs int64) WeaponState {
	if defaultReloadMs <= 0 {
		defaultReloadMs = DefaultReloadDurationMs
	}
	return WeaponState{ReloadDurationMs: defaultReloadMs}
}

// Equipped reports whether a weapon spec is available.
func (w WeaponState) Equipped() bool {
	return w.Spec != nil
}

// CanFire reports whether the fire gate is open, ignoring cadence.
func (w WeaponState) CanFire() bool {
	return w.Spec != nil && !w.IsReloading && w.CurrentAmmo > 0
}

// SwitchPending reports whether an equip request is in flight.
func (w WeaponState) SwitchPending() bool {
	return w.pendingSwitch
}

// PendingWeaponID returns the id of the in-flight equip request, if any.
func (w WeaponState) PendingWeaponID() string {
	return w.pendingWeaponID
}

// Step advances the weapon by one tick using a single captured now.
func (w WeaponState) Step(in WeaponInput, now int64) (WeaponState, WeaponStepResult) {
	var res WeaponStepResult

	// Reload completion is evaluated first so a finished reload can fire this tick.
	if w.IsReloading && now-w.ReloadStartTimeMs >= w.ReloadDurationMs {
		w.CurrentAmmo = w.MagazineSize
		w.IsReloading = false
		res.ReloadCompleted = true
	}

	if in.Reload && w.Spec != nil && !w.IsReloading && w.CurrentAmmo < w.MagazineSize {
		w.IsReloading = true
		w.ReloadStartTimeMs = now
		res.ReloadStarted = true
	}

	if in.Trigger {
		freshPress := !w.triggerHeld
		cadenceReady := now-w.LastFireTimeMs >= w.FireIntervalMs
		switch {
		case !w.CanFire():
			res.Rejected = freshPress
		case freshPress || cadenceReady:
			w.CurrentAmmo--
			w.LastFireTimeMs = now
			res.Fired = true

			if w.CurrentAmmo == 0 && !w.IsReloading {
				w.IsReloading = true
				w.ReloadStartTimeMs = now
				res.ReloadStarted = true
				res.AutoReload = true
			}
		}
	}
	w.triggerHeld = in.Trigger

	return w, res
}

// BeginSwitch registers a new switch request. Any pending request is superseded:
// its completion will be rejected by CompleteSwitch.
func (w WeaponState) BeginSwitch(weaponID string) (WeaponState, SwitchTicket) {
	w.switchGeneration++
	w.pendingSwitch = true
	w.pendingWeaponID = weaponID
	return w, SwitchTicket{Generation: w.switchGeneration, WeaponID: weaponID}
}

// CompleteSwitch applies the result of an equip request. Results from superseded
// tickets return ErrSwitchSuperseded and leave the state untouched. A failed
// latest request clears the pending flag so later switches are not blocked.
func (w WeaponState) CompleteSwitch(ticket SwitchTicket, spec WeaponSpec, loadErr error) (WeaponState, error) {
	if !w.pendingSwitch || ticket.Generation != w.switchGeneration {
		return w, ErrSwitchSuperseded
	}
	w.pendingSwitch = false
	w.pendingWeaponID = ""
	if loadErr != nil {
		return w, loadErr
	}

	s := spec
	w.Spec = &s
	w.EquippedWeaponID = spec.ID
	w.MagazineSize = spec.MagazineSize
	w.CurrentAmmo = spec.MagazineSize
	w.FireIntervalMs = spec.FireIntervalMs()
	w.ReloadDurationMs = spec.ReloadTimeMs
	w.IsReloading = false
	w.ReloadStartTimeMs = 0
	return w, nil
}

// Equip applies a spec immediately, bypassing the async path. Used at match start.
func (w WeaponState) Equip(spec WeaponSpec) WeaponState {
	w, ticket := w.BeginSwitch(spec.ID)
	w, _ = w.CompleteSwitch(ticket, spec, nil)
	return w
}

// Refill restores a full magazine and cancels any reload (used on respawn).
func (w WeaponState) Refill() WeaponState {
	w.CurrentAmmo = w.MagazineSize
	w.IsReloading = false
	w.ReloadStartTimeMs = 0
	w.triggerHeld = false
	return w
}

// Valid reports whether the ammo invariant holds.
func (w WeaponState) Valid() bool {
	return w.CurrentAmmo >= 0 && w.CurrentAmmo <= w.MagazineSize
}
