package game

import "errors"

var (
	// ErrUnknownWeapon is returned by the catalog for ids it does not carry.
	ErrUnknownWeapon = errors.New("unknown weapon")

	// ErrUnknownCombatant is returned for ids not present in the registry.
	ErrUnknownCombatant = errors.New("unknown combatant")

	// ErrSwitchSuperseded marks an equip result that arrived after a newer switch request.
	ErrSwitchSuperseded = errors.New("weapon switch superseded")

	// ErrNoSpawnPoints is returned when the spawn system has nothing to choose from.
	ErrNoSpawnPoints = errors.New("no spawn points configured")
)
