package api

import (
	"net/http"

	"arena-duel/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MatchInterface defines the match methods used by the API.
// This interface enables mocking for tests without spinning up the tick loop.
// Keep this minimal - only include methods the API layer actually calls.
type MatchInterface interface {
	// ID returns the match id
	ID() string
	// GetSnapshot returns the latest lock-free immutable HUD snapshot
	GetSnapshot() *game.HUDSnapshot
	// SubmitInput replaces the local player's input for the next tick
	SubmitInput(in game.PlayerInput)
	// RequestSwitch queues an async weapon switch for the local player
	RequestSwitch(weaponID string)
	// KillFeed returns the recent kills, oldest first
	KillFeed() []game.KillFeedEntry
	// BotStats returns aggregate bot shot outcomes
	BotStats() game.BotStats
	// RecentBotShots returns the bot's recent shot records
	RecentBotShots() []game.ShotRecord
	// GetEventLogStats returns event log counters
	GetEventLogStats() map[string]interface{}
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Match: mockMatch,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Match is the running match (required)
	Match MatchInterface

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, only local origins are allowed.
	CORSOrigins []string

	// Weapons overrides the served weapon table (defaults to game.Weapons).
	Weapons map[string]game.WeaponSpec

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	match   MatchInterface
	weapons map[string]game.WeaponSpec
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - it has no side effects:
//   - No goroutines are started besides the limiter's cleanup loop
//   - No network listeners are opened
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	// Rate limiting (BEFORE CORS to reject early)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	weapons := cfg.Weapons
	if weapons == nil {
		weapons = game.Weapons
	}
	h := &routerHandlers{match: cfg.Match, weapons: weapons}

	r.Route("/api", func(r chi.Router) {
		// Match state
		r.Get("/match", h.handleGetMatch)
		r.Get("/state", h.handleGetState)
		r.Get("/killfeed", h.handleGetKillFeed)
		r.Get("/bot/stats", h.handleGetBotStats)

		// Local player control
		r.Post("/input", h.handlePostInput)
		r.Post("/weapon/switch", h.handleWeaponSwitch)

		// Weapon catalog
		r.Get("/weapons", h.handleGetWeapons)
		r.Get("/weapons/{id}", h.handleGetWeapon)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	return r
}
