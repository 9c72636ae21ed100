package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"arena-duel/internal/game"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockMatch implements MatchInterface for testing
type mockMatch struct {
	mu       sync.Mutex
	snapshot *game.HUDSnapshot
	inputs   []game.PlayerInput
	switches []string
	feed     []game.KillFeedEntry
	stats    game.BotStats
}

func newMockMatch() *mockMatch {
	return &mockMatch{
		snapshot: &game.HUDSnapshot{
			Sequence:      1,
			Tick:          42,
			MatchTime:     700,
			Health:        80,
			MaxHealth:     game.MaxHealth,
			Ammo:          29,
			MaxAmmo:       30,
			Score:         1,
			OpponentScore: 0,
		},
		feed: []game.KillFeedEntry{
			{KillerName: "Player", VictimName: "Bot", WeaponID: "rifle", TimeMs: 500},
		},
		stats: game.BotStats{Shots: 10, Hits: 1, Misses: 9},
	}
}

func (m *mockMatch) ID() string                        { return "match-test" }
func (m *mockMatch) GetSnapshot() *game.HUDSnapshot    { return m.snapshot }
func (m *mockMatch) KillFeed() []game.KillFeedEntry    { return m.feed }
func (m *mockMatch) BotStats() game.BotStats           { return m.stats }
func (m *mockMatch) RecentBotShots() []game.ShotRecord { return nil }

func (m *mockMatch) SubmitInput(in game.PlayerInput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, in)
}

func (m *mockMatch) RequestSwitch(weaponID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.switches = append(m.switches, weaponID)
}

func (m *mockMatch) GetEventLogStats() map[string]interface{} {
	return map[string]interface{}{"running": false}
}

func (m *mockMatch) inputCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

func (m *mockMatch) lastSwitch() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.switches) == 0 {
		return ""
	}
	return m.switches[len(m.switches)-1]
}

func newTestServer(t *testing.T, m *mockMatch) *httptest.Server {
	t.Helper()
	limiter := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1000,
		Burst:             1000,
		CleanupInterval:   time.Hour,
	})
	t.Cleanup(limiter.Stop)

	ts := httptest.NewServer(NewRouter(RouterConfig{
		Match:          m,
		RateLimiter:    limiter,
		DisableLogging: true,
	}))
	t.Cleanup(ts.Close)
	return ts
}

// ============================================================================
// API Endpoint Tests
// ============================================================================

// TestAPIGetState tests the HUD state endpoint
func TestAPIGetState(t *testing.T) {
	ts := newTestServer(t, newMockMatch())

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	var snap game.HUDSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if snap.Health != 80 || snap.Ammo != 29 || snap.Score != 1 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
}

// TestAPIGetMatch tests the match summary endpoint
func TestAPIGetMatch(t *testing.T) {
	ts := newTestServer(t, newMockMatch())

	resp, err := http.Get(ts.URL + "/api/match")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["matchId"] != "match-test" {
		t.Errorf("Expected matchId 'match-test', got %v", result["matchId"])
	}
	if result["tick"] != float64(42) {
		t.Errorf("Expected tick 42, got %v", result["tick"])
	}
}

// TestAPIKillFeedAndBotStats tests the read-only match views
func TestAPIKillFeedAndBotStats(t *testing.T) {
	ts := newTestServer(t, newMockMatch())

	resp, err := http.Get(ts.URL + "/api/killfeed")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var feed []game.KillFeedEntry
	json.NewDecoder(resp.Body).Decode(&feed)
	resp.Body.Close()
	if len(feed) != 1 || feed[0].KillerName != "Player" {
		t.Errorf("Unexpected kill feed: %+v", feed)
	}

	resp, err = http.Get(ts.URL + "/api/bot/stats")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	var stats struct {
		Stats game.BotStats `json:"stats"`
	}
	json.NewDecoder(resp.Body).Decode(&stats)
	if stats.Stats.Shots != 10 || stats.Stats.Hits != 1 {
		t.Errorf("Unexpected bot stats: %+v", stats.Stats)
	}
}

// TestAPIPostInput tests input validation and forwarding
func TestAPIPostInput(t *testing.T) {
	m := newMockMatch()
	ts := newTestServer(t, m)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"move", `{"moveX": 0.1, "moveZ": -0.1}`, http.StatusAccepted},
		{"fire with aim", `{"trigger": true, "aim": {"x": 1, "y": 0, "z": 0}}`, http.StatusAccepted},
		{"move out of range", `{"moveX": 2}`, http.StatusBadRequest},
		{"fire without aim", `{"trigger": true}`, http.StatusBadRequest},
		{"invalid json", `{invalid}`, http.StatusBadRequest},
	}

	accepted := 0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/input", "application/json", bytes.NewReader([]byte(tt.body)))
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
		if tt.wantStatus == http.StatusAccepted {
			accepted++
		}
	}

	if got := m.inputCount(); got != accepted {
		t.Errorf("Expected %d forwarded inputs, got %d", accepted, got)
	}
}

// TestAPIWeaponSwitch tests the async switch endpoint
func TestAPIWeaponSwitch(t *testing.T) {
	m := newMockMatch()
	ts := newTestServer(t, m)

	resp, err := http.Post(ts.URL+"/api/weapon/switch", "application/json", bytes.NewReader([]byte(`{"weaponId": "pistol"}`)))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("Expected 202, got %d", resp.StatusCode)
	}
	if got := m.lastSwitch(); got != "pistol" {
		t.Errorf("Expected switch to pistol, got %q", got)
	}

	resp, err = http.Post(ts.URL+"/api/weapon/switch", "application/json", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing weaponId, got %d", resp.StatusCode)
	}
}

// TestAPIGetWeapons tests the weapons endpoints
func TestAPIGetWeapons(t *testing.T) {
	ts := newTestServer(t, newMockMatch())

	resp, err := http.Get(ts.URL + "/api/weapons")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var weapons []game.WeaponSpec
	if err := json.NewDecoder(resp.Body).Decode(&weapons); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(weapons) != len(game.Weapons) {
		t.Fatalf("Expected %d weapons, got %d", len(game.Weapons), len(weapons))
	}
	for i := 1; i < len(weapons); i++ {
		if weapons[i-1].ID > weapons[i].ID {
			t.Errorf("Weapons not sorted: %s before %s", weapons[i-1].ID, weapons[i].ID)
		}
	}

	tests := []struct {
		id         string
		wantStatus int
	}{
		{"rifle", http.StatusOK},
		{"railgun", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/weapons/" + tt.id)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

// TestAPIRateLimit tests that the limiter rejects bursts
func TestAPIRateLimit(t *testing.T) {
	router := NewRouter(RouterConfig{
		Match: newMockMatch(),
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 0.001,
			Burst:             2,
			CleanupInterval:   time.Hour,
		},
		DisableLogging: true,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	var last int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst, got %d", last)
	}
}
