package game

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// WeaponSpec is the immutable stat block of a hit-scan weapon.
type WeaponSpec struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MagazineSize    int     `json:"magazineSize"`
	FireRate        float64 `json:"fireRate"` // rounds per second
	ReloadTimeMs    int64   `json:"reloadTimeMs"`
	Damage          int     `json:"damage"`
	ProjectileSpeed float64 `json:"projectileSpeed"` // informational; hit-scan resolves instantly
	Range           float64 `json:"range"`
}

// FireIntervalMs returns the minimum spacing between held-trigger shots.
func (w WeaponSpec) FireIntervalMs() int64 {
	if w.FireRate <= 0 {
		return 0
	}
	return int64(math.Round(1000 / w.FireRate))
}

// Weapons is the built-in weapon table.
var Weapons = map[string]WeaponSpec{
	"rifle": {
		ID:              "rifle",
		Name:            "Assault Rifle",
		MagazineSize:    30,
		FireRate:        10,
		ReloadTimeMs:    2000,
		Damage:          20,
		ProjectileSpeed: 900,
		Range:           120,
	},
	"smg": {
		ID:              "smg",
		Name:            "SMG",
		MagazineSize:    40,
		FireRate:        15,
		ReloadTimeMs:    1600,
		Damage:          12,
		ProjectileSpeed: 700,
		Range:           60,
	},
	"pistol": {
		ID:              "pistol",
		Name:            "Pistol",
		MagazineSize:    12,
		FireRate:        4,
		ReloadTimeMs:    1200,
		Damage:          25,
		ProjectileSpeed: 600,
		Range:           80,
	},
	"sniper": {
		ID:              "sniper",
		Name:            "Sniper Rifle",
		MagazineSize:    5,
		FireRate:        0.8,
		ReloadTimeMs:    3200,
		Damage:          90,
		ProjectileSpeed: 1500,
		Range:           250,
	},
}

// GetAllWeapons returns all weapons sorted by id.
func GetAllWeapons() []WeaponSpec {
	weapons := make([]WeaponSpec, 0, len(Weapons))
	for _, w := range Weapons {
		weapons = append(weapons, w)
	}
	sort.Slice(weapons, func(i, j int) bool { return weapons[i].ID < weapons[j].ID })
	return weapons
}

// WeaponCatalog loads weapon specs. Equip may block, so it is never called inside a tick.
type WeaponCatalog interface {
	Equip(ctx context.Context, id string) (WeaponSpec, error)
}

// StaticCatalog serves specs from an in-memory table with an artificial load latency.
type StaticCatalog struct {
	specs   map[string]WeaponSpec
	latency time.Duration
}

// NewStaticCatalog creates a catalog over specs (nil uses the built-in table).
func NewStaticCatalog(specs map[string]WeaponSpec, latency time.Duration) *StaticCatalog {
	if specs == nil {
		specs = Weapons
	}
	return &StaticCatalog{specs: specs, latency: latency}
}

// Equip returns the spec for id after the configured latency.
func (c *StaticCatalog) Equip(ctx context.Context, id string) (WeaponSpec, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return WeaponSpec{}, ctx.Err()
		case <-timer.C:
		}
	}

	spec, ok := c.specs[id]
	if !ok {
		return WeaponSpec{}, fmt.Errorf("equip %q: %w", id, ErrUnknownWeapon)
	}
	return spec, nil
}
