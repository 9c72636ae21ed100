package api

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"sort"

	"arena-duel/internal/game"

	"github.com/go-chi/chi/v5"
)

// MaxMovePerInput bounds a submitted per-tick displacement on each axis.
const MaxMovePerInput = 1.0

func (h *routerHandlers) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	snap := h.match.GetSnapshot()
	writeJSON(w, map[string]interface{}{
		"matchId":   h.match.ID(),
		"tick":      snap.Tick,
		"matchTime": snap.MatchTime,
		"eventLog":  h.match.GetEventLogStats(),
	})
}

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	// Copy so the encoder never reads a slot the tick is rewriting
	snap := h.match.GetSnapshot().Copy()
	writeJSON(w, snap)
}

func (h *routerHandlers) handleGetKillFeed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.match.KillFeed())
}

func (h *routerHandlers) handleGetBotStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"stats":  h.match.BotStats(),
		"recent": h.match.RecentBotShots(),
	})
}

func (h *routerHandlers) handlePostInput(w http.ResponseWriter, r *http.Request) {
	var in game.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validateInput(in); err != "" {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	h.match.SubmitInput(in)
	w.WriteHeader(http.StatusAccepted)
}

func (h *routerHandlers) handleWeaponSwitch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeaponID string `json:"weaponId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.WeaponID == "" {
		writeError(w, "weaponId is required", http.StatusBadRequest)
		return
	}

	log.Printf("🔫 Weapon switch to %s requested via API", req.WeaponID)
	h.match.RequestSwitch(req.WeaponID)
	w.WriteHeader(http.StatusAccepted)
}

func (h *routerHandlers) handleGetWeapons(w http.ResponseWriter, r *http.Request) {
	specs := make([]game.WeaponSpec, 0, len(h.weapons))
	for _, spec := range h.weapons {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	writeJSON(w, specs)
}

func (h *routerHandlers) handleGetWeapon(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.weapons[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, "Unknown weapon", http.StatusNotFound)
		return
	}
	writeJSON(w, spec)
}

// validateInput returns a client-facing message for malformed input, or "".
func validateInput(in game.PlayerInput) string {
	if math.Abs(in.MoveX) > MaxMovePerInput || math.Abs(in.MoveZ) > MaxMovePerInput {
		return "Movement out of range"
	}
	if in.Trigger && in.Aim == (game.Vec3{}) {
		return "Aim is required to fire"
	}
	return ""
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
