// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for match, bot, weapon and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// MATCH CONFIGURATION
// =============================================================================

// MatchConfig holds simulation timing and lifecycle settings.
type MatchConfig struct {
	TickRate          int    // Simulation ticks per second
	RespawnDelayMs    int64  // Delay between death and automatic respawn
	InvulnerabilityMs int64  // Spawn protection window after each respawn
	KillFeedSize      int    // Entries kept in the HUD kill feed
	EventLogPath      string // JSONL event log (empty disables file output)
	Seed              int64  // RNG seed (0 = time-based)
}

// DefaultMatch returns the default match configuration.
func DefaultMatch() MatchConfig {
	return MatchConfig{
		TickRate:          60,
		RespawnDelayMs:    3000,
		InvulnerabilityMs: 2000,
		KillFeedSize:      5,
		EventLogPath:      "events.jsonl",
	}
}

// MatchFromEnv returns match configuration with environment variable overrides.
func MatchFromEnv() MatchConfig {
	cfg := DefaultMatch()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if d := getEnvInt("RESPAWN_DELAY_MS", -1); d >= 0 {
		cfg.RespawnDelayMs = int64(d)
	}
	if d := getEnvInt("INVULN_MS", -1); d >= 0 {
		cfg.InvulnerabilityMs = int64(d)
	}
	if p, ok := os.LookupEnv("EVENT_LOG_PATH"); ok {
		cfg.EventLogPath = p
	}
	if s := getEnvInt("MATCH_SEED", 0); s != 0 {
		cfg.Seed = int64(s)
	}

	return cfg
}

// =============================================================================
// BOT CONFIGURATION
// =============================================================================

// Difficulty names accepted by BOT_DIFFICULTY.
const (
	DifficultyEasy   = "easy"
	DifficultyNormal = "normal"
	DifficultyHard   = "hard"
)

// DifficultyPreset holds the per-match tuning for one difficulty level.
type DifficultyPreset struct {
	AccuracyMultiplier float64
	FireIntervalMs     int64
}

// difficultyPresets maps difficulty names to their tuning values.
var difficultyPresets = map[string]DifficultyPreset{
	DifficultyEasy:   {AccuracyMultiplier: 0.6, FireIntervalMs: 900},
	DifficultyNormal: {AccuracyMultiplier: 1.0, FireIntervalMs: 600},
	DifficultyHard:   {AccuracyMultiplier: 1.6, FireIntervalMs: 350},
}

// BotConfig holds engagement and accuracy settings for the AI opponent.
type BotConfig struct {
	Difficulty     string
	BaseAccuracy   float64 // Hit probability before multipliers
	PenaltyFloor   float64 // Lower bound of the distance penalty
	FalloffRange   float64 // Distance at which the linear penalty reaches zero
	MaxEngageRange float64 // Beyond this distance the player is never visible
	MinEngageRange float64 // Bot does not fire at point-blank range
	PreferredRange float64 // Navigator stops closing in at this distance
	MoveSpeed      float64 // Units per second
	Damage         int     // Fixed damage per successful bot hit
	EyeHeight      float64
	Radius         float64
	Height         float64
}

// DefaultBot returns the default bot configuration.
func DefaultBot() BotConfig {
	return BotConfig{
		Difficulty:     DifficultyNormal,
		BaseAccuracy:   0.12,
		PenaltyFloor:   0.2,
		FalloffRange:   30,
		MaxEngageRange: 60,
		MinEngageRange: 1.5,
		PreferredRange: 12,
		MoveSpeed:      4.5,
		Damage:         10,
		EyeHeight:      1.6,
		Radius:         0.4,
		Height:         1.8,
	}
}

// BotFromEnv returns bot configuration with environment variable overrides.
func BotFromEnv() BotConfig {
	cfg := DefaultBot()

	if d := strings.ToLower(os.Getenv("BOT_DIFFICULTY")); d != "" {
		if _, ok := difficultyPresets[d]; ok {
			cfg.Difficulty = d
		}
	}
	if a := getEnvFloat("BOT_BASE_ACCURACY", -1); a >= 0 && a <= 1 {
		cfg.BaseAccuracy = a
	}

	return cfg
}

// Preset returns the difficulty tuning for the configured difficulty.
// Unknown names fall back to normal.
func (c BotConfig) Preset() DifficultyPreset {
	if p, ok := difficultyPresets[c.Difficulty]; ok {
		return p
	}
	return difficultyPresets[DifficultyNormal]
}

// =============================================================================
// WEAPON CONFIGURATION
// =============================================================================

// WeaponsConfig holds loadout defaults.
type WeaponsConfig struct {
	DefaultWeaponID string
	DefaultReloadMs int64  // Used until a weapon spec has been equipped
	EquipLatencyMs  int64  // Simulated catalog load time
	CatalogURL      string // Remote weapon catalog (empty uses the built-in table)
}

// DefaultWeapons returns the default weapon configuration.
func DefaultWeapons() WeaponsConfig {
	return WeaponsConfig{
		DefaultWeaponID: "rifle",
		DefaultReloadMs: 2000,
		EquipLatencyMs:  150,
	}
}

// WeaponsFromEnv returns weapon configuration with environment variable overrides.
func WeaponsFromEnv() WeaponsConfig {
	cfg := DefaultWeapons()

	if id := os.Getenv("DEFAULT_WEAPON"); id != "" {
		cfg.DefaultWeaponID = id
	}
	if l := getEnvInt("EQUIP_LATENCY_MS", -1); l >= 0 {
		cfg.EquipLatencyMs = int64(l)
	}
	cfg.CatalogURL = strings.TrimRight(os.Getenv("WEAPON_CATALOG_URL"), "/")

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// DebugConfig controls the pprof/metrics side server.
type DebugConfig struct {
	Enabled    bool
	ListenAddr string // MUST stay on localhost in production
}

// DebugFromEnv returns debug server configuration with environment variable overrides.
func DebugFromEnv() DebugConfig {
	cfg := DebugConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
	if os.Getenv("DISABLE_DEBUG_SERVER") == "true" {
		cfg.Enabled = false
	}
	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Match   MatchConfig
	Bot     BotConfig
	Weapons WeaponsConfig
	Server  ServerConfig
	Debug   DebugConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Match:   MatchFromEnv(),
		Bot:     BotFromEnv(),
		Weapons: WeaponsFromEnv(),
		Server:  ServerFromEnv(),
		Debug:   DebugFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
