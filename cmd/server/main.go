package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"arena-duel/internal/api"
	"arena-duel/internal/catalog"
	"arena-duel/internal/config"
	"arena-duel/internal/game"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🎮 ================================")
	log.Println("🎮  ARENA DUEL - COMBAT CORE")
	log.Println("🎮 ================================")

	appConfig := config.Load()
	matchCfg := appConfig.Match
	weaponsCfg := appConfig.Weapons
	port := strconv.Itoa(appConfig.Server.Port)

	log.Printf("🎮 Config: %d TPS, respawn %dms, protection %dms, bot %s",
		matchCfg.TickRate, matchCfg.RespawnDelayMs, matchCfg.InvulnerabilityMs, appConfig.Bot.Difficulty)

	// Weapon catalog: remote service if configured, built-in table otherwise
	var weapons game.WeaponCatalog
	if weaponsCfg.CatalogURL != "" {
		weapons = catalog.NewHTTPCatalog(weaponsCfg.CatalogURL, catalog.DefaultMaxSpecs)
		log.Printf("🔫 Weapon catalog: %s", weaponsCfg.CatalogURL)
	} else {
		weapons = game.NewStaticCatalog(nil, time.Duration(weaponsCfg.EquipLatencyMs)*time.Millisecond)
		log.Printf("🔫 Weapon catalog: built-in (%d weapons)", len(game.Weapons))
	}

	match := game.NewMatch(
		game.OptionsFromConfig(appConfig),
		game.DefaultArena(),
		game.NewFarthestSpawn(game.DefaultSpawnPoints()),
		weapons,
	)
	match.SetCallbacks(api.MatchCallbacks())
	api.RegisterEventLogMetrics(match.EventLogCounters())

	if matchCfg.EventLogPath != "" {
		if err := match.StartEventLog(matchCfg.EventLogPath); err != nil {
			log.Printf("⚠️ Event log disabled: %v", err)
		} else {
			log.Printf("📝 Event log: %s", matchCfg.EventLogPath)
		}
	}

	// Start debug server
	debugCfg := api.DefaultObservabilityConfig()
	debugCfg.Enabled = appConfig.Debug.Enabled
	debugCfg.ListenAddr = appConfig.Debug.ListenAddr
	debugCfg.BasicAuthUser = os.Getenv("DEBUG_USER")
	debugCfg.BasicAuthPass = os.Getenv("DEBUG_PASS")
	if err := api.StartDebugServer(debugCfg); err != nil {
		log.Printf("⚠️ Debug server disabled: %v", err)
	}

	server := api.NewServer(match, api.RouterConfig{})

	match.Start()
	log.Printf("✅ Match %s started", match.ID())

	go func() {
		addr := ":" + port
		log.Printf("🌐 API server on http://localhost%s", addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
	match.Stop()
	match.StopEventLog()
	log.Println("👋 Goodbye!")
}
