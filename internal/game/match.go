package game

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"arena-duel/internal/config"

	"github.com/google/uuid"
)

// PlayerInput is the local player's input for one tick.
type PlayerInput struct {
	MoveX        float64 `json:"moveX"` // Intended displacement this tick (from physics)
	MoveZ        float64 `json:"moveZ"`
	Aim          Vec3    `json:"aim"` // View direction; normalized by the match
	Trigger      bool    `json:"trigger"`
	Reload       bool    `json:"reload"`
	SwitchWeapon string  `json:"switchWeapon,omitempty"`
}

// MatchOptions configures a Match.
type MatchOptions struct {
	TickRate          int
	RespawnDelayMs    int64
	InvulnerabilityMs int64
	KillFeedSize      int
	Seed              int64
	DefaultWeaponID   string
	DefaultReloadMs   int64
	EquipFromCatalog  bool // load the starting weapon through the catalog instead of the built-in table

	Bot            BotTuning
	Difficulty     BotDifficulty
	DifficultyName string
	PreferredRange float64
	BotSpeed       float64

	CapsuleRadius float64
	CapsuleHeight float64
	EyeOffset     float64 // Eye height above capsule center
}

// OptionsFromConfig maps application config onto match options.
func OptionsFromConfig(cfg config.AppConfig) MatchOptions {
	preset := cfg.Bot.Preset()
	return MatchOptions{
		TickRate:          cfg.Match.TickRate,
		RespawnDelayMs:    cfg.Match.RespawnDelayMs,
		InvulnerabilityMs: cfg.Match.InvulnerabilityMs,
		KillFeedSize:      cfg.Match.KillFeedSize,
		Seed:              cfg.Match.Seed,
		DefaultWeaponID:   cfg.Weapons.DefaultWeaponID,
		DefaultReloadMs:   cfg.Weapons.DefaultReloadMs,
		EquipFromCatalog:  cfg.Weapons.CatalogURL != "",
		Bot: BotTuning{
			BaseAccuracy:   cfg.Bot.BaseAccuracy,
			PenaltyFloor:   cfg.Bot.PenaltyFloor,
			FalloffRange:   cfg.Bot.FalloffRange,
			MaxEngageRange: cfg.Bot.MaxEngageRange,
			MinEngageRange: cfg.Bot.MinEngageRange,
			Damage:         cfg.Bot.Damage,
		},
		Difficulty:     BotDifficulty{AccuracyMultiplier: preset.AccuracyMultiplier, FireIntervalMs: preset.FireIntervalMs},
		DifficultyName: cfg.Bot.Difficulty,
		PreferredRange: cfg.Bot.PreferredRange,
		BotSpeed:       cfg.Bot.MoveSpeed,
		CapsuleRadius:  cfg.Bot.Radius,
		CapsuleHeight:  cfg.Bot.Height,
		EyeOffset:      cfg.Bot.EyeHeight - cfg.Bot.Height/2,
	}
}

// equipResult is an async catalog completion waiting for the next tick.
type equipResult struct {
	ticket SwitchTicket
	spec   WeaponSpec
	err    error
}

// equipMailbox holds one result per combatant; a newer generation always wins.
type equipMailbox struct {
	mu      sync.Mutex
	results map[CombatantID]equipResult
}

func (m *equipMailbox) put(id CombatantID, r equipResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.results[id]; ok && prev.ticket.Generation > r.ticket.Generation {
		return
	}
	m.results[id] = r
}

func (m *equipMailbox) drain() map[CombatantID]equipResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.results) == 0 {
		return nil
	}
	out := m.results
	m.results = make(map[CombatantID]equipResult)
	return out
}

// Match is one player-vs-bot engagement. All simulation state is owned by Step;
// presentation reads immutable snapshots.
type Match struct {
	mu sync.Mutex

	id   string
	seed int64
	opts MatchOptions

	world     CollisionWorld
	registry  *Registry
	respawn   *RespawnController
	score     *MatchScoreTracker
	bot       *BotEngagementAI
	nav       ChaseNavigator
	slide     *SlideResolver
	catalog   WeaponCatalog
	snapshots *SnapshotPool
	eventLog  *EventLog
	mailbox   equipMailbox

	playerID CombatantID
	botID    CombatantID

	started   bool
	tickCount uint64
	lastNow   int64
	cues      []Cue

	// Loop state
	ctx        context.Context
	cancel     context.CancelFunc
	running    bool
	stopped    bool
	ticker     *time.Ticker
	stopChan   chan struct{}
	startWall  time.Time
	inputMu    sync.Mutex
	pending    PlayerInput
	hasPending bool

	// Event callbacks
	onShot    func(shooter *Combatant, hit bool)
	onKill    func(killer, victim *Combatant)
	onRespawn func(c *Combatant)
	onTick    func(d time.Duration)
}

// NewMatch creates a match over world with one local player and one bot.
func NewMatch(opts MatchOptions, world CollisionWorld, spawns SpawnSystem, catalog WeaponCatalog) *Match {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}

	registry := NewRegistry(2)
	ctx, cancel := context.WithCancel(context.Background())

	m := &Match{
		id:        uuid.NewString(),
		seed:      seed,
		opts:      opts,
		world:     world,
		registry:  registry,
		respawn:   NewRespawnController(registry, spawns, opts.RespawnDelayMs, opts.InvulnerabilityMs),
		score:     NewMatchScoreTracker(opts.KillFeedSize),
		nav:       ChaseNavigator{PreferredRange: opts.PreferredRange, MaxEngageRange: opts.Bot.MaxEngageRange, Speed: opts.BotSpeed},
		slide:     NewSlideResolver(world, opts.CapsuleRadius, opts.CapsuleHeight),
		catalog:   catalog,
		snapshots: NewSnapshotPool(opts.KillFeedSize),
		eventLog:  NewEventLog(),
		mailbox:   equipMailbox{results: make(map[CombatantID]equipResult)},
		cues:      make([]Cue, 0, MaxCuesPerSnapshot),
		ctx:       ctx,
		cancel:    cancel,
		stopChan:  make(chan struct{}),
	}
	m.bot = NewBotEngagementAI(world, opts.Bot, opts.Difficulty, rand.New(rand.NewSource(seed)))

	m.playerID = registry.Add("Player", false, Vec3{}, NewWeaponState(opts.DefaultReloadMs))
	m.botID = registry.Add("Bot", true, Vec3{}, NewWeaponState(opts.DefaultReloadMs))

	// A catalog-backed loadout is requested in Begin, once the match ctx is live.
	if spec, ok := Weapons[opts.DefaultWeaponID]; ok && (!opts.EquipFromCatalog || catalog == nil) {
		for _, id := range []CombatantID{m.playerID, m.botID} {
			w := registry.Weapon(id)
			*w = w.Equip(spec)
		}
	}
	return m
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// PlayerID returns the local player's combatant id.
func (m *Match) PlayerID() CombatantID { return m.playerID }

// BotID returns the bot's combatant id.
func (m *Match) BotID() CombatantID { return m.botID }

// Begin spawns both combatants and opens the match at now.
func (m *Match) Begin(now int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	for _, id := range []CombatantID{m.playerID, m.botID} {
		c := m.registry.Get(id)
		pos, err := m.respawn.Respawn(id, now, m.opts.InvulnerabilityMs)
		if err != nil {
			log.Printf("⚠️ Spawn for %s failed: %v", c.Name, err)
		}
		m.eventLog.EmitSimple(EventTypeSpawn, m.tickCount, now, id, RespawnPayload{CombatantID: id, Position: pos, InvulnerableUntil: c.InvulnerableUntil})
		m.loadStartingWeapon(id)
	}
	m.started = true
	m.lastNow = now
	m.score.Observe(m.registry, now)

	m.eventLog.EmitSimple(EventTypeMatchStart, m.tickCount, now, NoCombatant,
		MatchStartPayload{MatchID: m.id, Seed: m.seed, Difficulty: m.opts.DifficultyName})
	log.Printf("🎮 Match %s started (seed %d, difficulty %s)", m.id, m.seed, m.opts.DifficultyName)
}

// loadStartingWeapon requests the default weapon for a combatant that has
// not been equipped from the built-in table.
func (m *Match) loadStartingWeapon(id CombatantID) {
	weaponID := m.opts.DefaultWeaponID
	w := m.registry.Weapon(id)
	if weaponID == "" || w == nil || w.EquippedWeaponID == weaponID {
		return
	}
	c := m.registry.Get(id)
	if m.catalog == nil {
		log.Printf("⚠️ Starting weapon %q is unknown and no catalog is configured, %s starts unarmed", weaponID, c.Name)
		return
	}
	log.Printf("🔫 Loading starting weapon %s for %s from catalog", weaponID, c.Name)
	m.requestSwitch(id, weaponID)
}

// Started reports whether Begin has run.
func (m *Match) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Step advances the simulation by one tick. Every duration check inside the
// tick uses the single captured now.
func (m *Match) Step(in PlayerInput, now int64) *HUDSnapshot {
	start := time.Now()
	m.mu.Lock()

	m.tickCount++
	m.cues = m.cues[:0]
	dt := float64(now-m.lastNow) / 1000
	if dt < 0 {
		dt = 0
	}
	m.lastNow = now

	m.applyEquipResults(now)
	m.processRespawns(now)
	m.moveCombatants(in, dt)

	if in.SwitchWeapon != "" {
		m.requestSwitch(m.playerID, in.SwitchWeapon)
	}
	m.stepPlayerWeapon(in, now)
	m.stepBot(now)

	for _, change := range m.score.Observe(m.registry, now) {
		m.eventLog.EmitSimple(EventTypeScoreChanged, m.tickCount, now, change.CombatantID, change)
	}

	m.produceSnapshot(now)
	snap := m.snapshots.AcquireRead()
	onTick := m.onTick
	m.mu.Unlock()

	if onTick != nil {
		onTick(time.Since(start))
	}
	return snap
}

// applyEquipResults applies async weapon loads that completed before this tick.
func (m *Match) applyEquipResults(now int64) {
	for id, r := range m.mailbox.drain() {
		w := m.registry.Weapon(id)
		if w == nil {
			continue
		}
		next, err := w.CompleteSwitch(r.ticket, r.spec, r.err)
		*w = next
		switch {
		case errors.Is(err, ErrSwitchSuperseded):
			continue
		case err != nil && next.EquippedWeaponID == "":
			log.Printf("⚠️ Starting weapon %q failed to load for %s, still unarmed: %v", r.ticket.WeaponID, m.registry.Get(id).Name, err)
		case err != nil:
			log.Printf("⚠️ Weapon equip %q failed: %v", r.ticket.WeaponID, err)
		default:
			m.eventLog.EmitSimple(EventTypeWeaponEquipped, m.tickCount, now, id,
				WeaponEquippedPayload{CombatantID: id, WeaponID: r.spec.ID})
			log.Printf("🔫 %s equipped %s", m.registry.Get(id).Name, r.spec.Name)
		}
	}
}

// requestSwitch starts an async equip outside the tick. A newer request supersedes
// an older one; the older load keeps running but its result is discarded.
func (m *Match) requestSwitch(id CombatantID, weaponID string) {
	w := m.registry.Weapon(id)
	if w == nil || m.catalog == nil {
		return
	}
	next, ticket := w.BeginSwitch(weaponID)
	*w = next

	ctx := m.ctx
	catalog := m.catalog
	go func() {
		spec, err := catalog.Equip(ctx, ticket.WeaponID)
		m.mailbox.put(id, equipResult{ticket: ticket, spec: spec, err: err})
	}()
}

// RequestSwitch queues a weapon switch for the local player.
func (m *Match) RequestSwitch(weaponID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestSwitch(m.playerID, weaponID)
}

// processRespawns respawns every combatant whose delay elapsed.
func (m *Match) processRespawns(now int64) {
	for _, id := range m.respawn.Update(now) {
		pos, err := m.respawn.Respawn(id, now, m.opts.InvulnerabilityMs)
		if err != nil {
			log.Printf("⚠️ %v", err)
		}
		if w := m.registry.Weapon(id); w != nil {
			*w = w.Refill()
		}
		c := m.registry.Get(id)
		m.addCue(CueAudio, CueSpawn, pos, 0, id)
		m.addCue(CueVFX, CueRespawnRing, pos, float64(m.opts.InvulnerabilityMs)/1000, id)
		m.eventLog.EmitSimple(EventTypeRespawn, m.tickCount, now, id,
			RespawnPayload{CombatantID: id, Position: pos, InvulnerableUntil: c.InvulnerableUntil})
		log.Printf("✨ %s respawned", c.Name)
		if m.onRespawn != nil {
			m.onRespawn(c)
		}
	}
}

// moveCombatants applies player displacement and bot navigation through the slide resolver.
func (m *Match) moveCombatants(in PlayerInput, dt float64) {
	player := m.registry.Get(m.playerID)
	bot := m.registry.Get(m.botID)

	if !player.IsDead {
		player.Position = m.slide.Resolve(player.Position, in.MoveX, in.MoveZ)
	}
	if m.started && !bot.IsDead && !player.IsDead {
		dx, dz, _ := m.nav.Intent(bot.Position, player.Position, dt)
		bot.Position = m.slide.Resolve(bot.Position, dx, dz)
	}
}

func (m *Match) eye(c *Combatant) Vec3 {
	return c.Position.Add(Vec3{Y: m.opts.EyeOffset})
}

// targets returns hitboxes of live, unprotected combatants other than shooter.
func (m *Match) targets(shooter CombatantID, now int64) map[CombatantID]Capsule {
	out := make(map[CombatantID]Capsule, m.registry.Len())
	m.registry.ForEach(func(c *Combatant) bool {
		if c.ID != shooter && !c.IsDead && !c.IsInvulnerable(now) {
			out[c.ID] = Capsule{Center: c.Position, Radius: m.opts.CapsuleRadius, Height: m.opts.CapsuleHeight}
		}
		return true
	})
	return out
}

// stepPlayerWeapon evaluates fire input and resolves any shot.
func (m *Match) stepPlayerWeapon(in PlayerInput, now int64) {
	player := m.registry.Get(m.playerID)
	w := m.registry.Weapon(m.playerID)

	wi := WeaponInput{Trigger: in.Trigger, Reload: in.Reload}
	if player.IsDead || !m.started {
		wi = WeaponInput{}
	}
	next, res := w.Step(wi, now)
	*w = next

	if res.ReloadCompleted {
		m.addCue(CueAudio, CueReloadComplete, player.Position, 0, player.ID)
	}
	if !res.Fired {
		return
	}

	origin := m.eye(player)
	m.addCue(CueAudio, CueGunshot, origin, 0, player.ID)
	m.addCue(CueVFX, CueMuzzleFlash, origin, 1, player.ID)

	req := FireRequest{
		ShooterID:   player.ID,
		WeaponID:    w.EquippedWeaponID,
		Origin:      origin,
		Direction:   in.Aim.Normalize(),
		TimestampMs: now,
	}
	resolver := HitResolver{World: m.world, MaxRange: w.Spec.Range}
	result := resolver.Resolve(req, m.targets(player.ID, now), w.Spec.Damage)

	m.eventLog.EmitSimple(EventTypeFire, m.tickCount, now, player.ID,
		FirePayload{ShooterID: player.ID, WeaponID: req.WeaponID, Hit: result.Hit, TargetID: result.TargetID, WallBlocked: result.Occluded})
	if m.onShot != nil {
		m.onShot(player, result.Hit)
	}
	if result.Hit {
		m.applyHit(player.ID, result.TargetID, result.Damage, result.HitPoint, now)
	}
}

// stepBot runs the bot's engagement decision and applies its damage.
func (m *Match) stepBot(now int64) {
	bot := m.registry.Get(m.botID)
	player := m.registry.Get(m.playerID)
	if bot.IsDead {
		return
	}

	botEye := m.eye(bot)
	playerEye := m.eye(player)
	distance := botEye.Dist(playerEye)
	_, _, wants := m.nav.Intent(bot.Position, player.Position, 0)

	d := m.bot.Evaluate(EngagementInput{
		Now:             now,
		BotEye:          botEye,
		PlayerEye:       playerEye,
		Distance:        distance,
		MatchStarted:    m.started,
		WantsToShoot:    wants && !player.IsDead,
		PlayerProtected: m.respawn.HasSpawnProtection(player.ID, now),
	})
	if !d.Fired {
		return
	}

	m.addCue(CueAudio, CueGunshot, botEye, 0, bot.ID)
	m.addCue(CueVFX, CueMuzzleFlash, botEye, 1, bot.ID)
	m.eventLog.EmitSimple(EventTypeFire, m.tickCount, now, bot.ID,
		FirePayload{ShooterID: bot.ID, WeaponID: m.registry.Weapon(bot.ID).EquippedWeaponID, Hit: d.Hit, TargetID: player.ID, WallBlocked: d.WallBlocked})
	if m.onShot != nil {
		m.onShot(bot, d.Hit)
	}
	if d.Hit {
		m.applyHit(bot.ID, player.ID, d.Damage, playerEye, now)
	}
}

// applyHit routes damage through the RespawnController and emits cues.
func (m *Match) applyHit(attackerID, victimID CombatantID, damage int, at Vec3, now int64) {
	out, err := m.respawn.ApplyDamage(victimID, attackerID, damage, now)
	if err != nil || !out.Applied {
		return
	}
	m.addCue(CueVFX, CueHitMarker, at, 1, attackerID)
	m.addCue(CueVFX, CueDamageNumber, at, float64(damage), attackerID)
	m.eventLog.EmitSimple(EventTypeDamage, m.tickCount, now, attackerID,
		DamagePayload{AttackerID: attackerID, VictimID: victimID, Damage: damage, VictimHP: out.HealthAfter})

	if !out.Killed {
		return
	}
	victim := m.registry.Get(victimID)
	killer := m.registry.Get(attackerID)
	m.addCue(CueVFX, CueDeathParticles, victim.Position, 1, victimID)

	// Score is credited by the tracker at the end of the tick.
	kp := KillPayload{KillerID: attackerID, VictimID: victimID, VictimDeaths: victim.Deaths}
	if killer != nil && killer.ID != victimID {
		kp.KillerScore = killer.Score + 1
	}
	m.eventLog.EmitSimple(EventTypeKill, m.tickCount, now, attackerID, kp)
	if killer == nil {
		log.Printf("💀 %s died", victim.Name)
		return
	}
	log.Printf("💀 %s killed by %s", victim.Name, killer.Name)
	if m.onKill != nil {
		m.onKill(killer, victim)
	}
}

func (m *Match) addCue(kind CueKind, name string, pos Vec3, magnitude float64, source CombatantID) {
	if len(m.cues) >= MaxCuesPerSnapshot {
		return
	}
	m.cues = append(m.cues, Cue{Kind: kind, Name: name, Position: pos, Magnitude: magnitude, SourceID: source})
}

// produceSnapshot publishes the read-only view of this tick.
func (m *Match) produceSnapshot(now int64) {
	snap := m.snapshots.AcquireWrite()
	snap.Tick = m.tickCount
	snap.MatchTime = now

	player := m.registry.Get(m.playerID)
	bot := m.registry.Get(m.botID)
	pw := m.registry.Weapon(m.playerID)

	snap.Health = ClampHealth(player.Health, MaxHealth)
	snap.MaxHealth = MaxHealth
	snap.Ammo = pw.CurrentAmmo
	snap.MaxAmmo = pw.MagazineSize
	snap.IsReloading = pw.IsReloading
	snap.Score = player.Score
	snap.OpponentScore = bot.Score
	snap.KillFeed = append(snap.KillFeed, m.score.feed...)
	snap.Cues = append(snap.Cues, m.cues...)

	m.registry.ForEach(func(c *Combatant) bool {
		if len(snap.Combatants) >= MaxCombatantsInSnapshot {
			return false
		}
		w := m.registry.Weapon(c.ID)
		snap.Combatants = append(snap.Combatants, CombatantSnapshot{
			ID:          c.ID,
			Name:        c.Name,
			IsBot:       c.IsBot,
			Position:    c.Position,
			Health:      c.Health,
			IsDead:      c.IsDead,
			Protected:   c.IsInvulnerable(now),
			Score:       c.Score,
			WeaponID:    w.EquippedWeaponID,
			Ammo:        w.CurrentAmmo,
			MaxAmmo:     w.MagazineSize,
			IsReloading: w.IsReloading,
		})
		return true
	})

	m.snapshots.PublishWrite()
}

// GetSnapshot returns the latest immutable snapshot for lock-free reads
func (m *Match) GetSnapshot() *HUDSnapshot {
	return m.snapshots.AcquireRead()
}

// BotStats returns the bot's aggregate shot outcomes.
func (m *Match) BotStats() BotStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bot.Stats()
}

// RecentBotShots returns the bot's recent shot records.
func (m *Match) RecentBotShots() []ShotRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bot.RecentShots()
}

// KillFeed returns the current kill feed.
func (m *Match) KillFeed() []KillFeedEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score.KillFeed()
}

// Combatant returns a copy of a combatant's state.
func (m *Match) Combatant(id CombatantID) (Combatant, WeaponState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.registry.MustGet(id)
	if err != nil {
		return Combatant{}, WeaponState{}, err
	}
	return *c, *m.registry.Weapon(id), nil
}

// SetCallbacks sets event callbacks. Callbacks run inside the tick and must not block.
func (m *Match) SetCallbacks(onShot func(*Combatant, bool), onKill func(killer, victim *Combatant), onRespawn func(*Combatant), onTick func(time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onShot = onShot
	m.onKill = onKill
	m.onRespawn = onRespawn
	m.onTick = onTick
}

// SubmitInput replaces the input the loop will use on its next tick.
// Trigger and movement persist until replaced; reload and switch fire once.
func (m *Match) SubmitInput(in PlayerInput) {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()
	m.pending = in
	m.hasPending = true
}

func (m *Match) takeInput() PlayerInput {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()
	in := m.pending
	m.pending.Reload = false
	m.pending.SwitchWeapon = ""
	m.pending.MoveX = 0
	m.pending.MoveZ = 0
	return in
}

// Start begins the real-time loop at the configured tick rate.
// A stopped match cannot be restarted.
func (m *Match) Start() {
	m.mu.Lock()
	if m.running || m.stopped {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.startWall = time.Now()
	m.ticker = time.NewTicker(time.Second / time.Duration(m.opts.TickRate))
	m.mu.Unlock()

	m.Begin(0)

	go func() {
		for {
			select {
			case <-m.ticker.C:
				now := time.Since(m.startWall).Milliseconds()
				m.Step(m.takeInput(), now)
			case <-m.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Match loop started at %d TPS", m.opts.TickRate)
}

// Stop stops the loop and abandons pending equip loads.
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false
	m.stopped = true
	if m.ticker != nil {
		m.ticker.Stop()
	}
	close(m.stopChan)
	m.cancel()
	log.Println("🛑 Match loop stopped")
}

// StartEventLog initializes the event logging system
func (m *Match) StartEventLog(filePath string) error {
	return m.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (m *Match) StopEventLog() {
	m.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (m *Match) GetEventLogStats() map[string]interface{} {
	return m.eventLog.GetStats()
}

// EventLogCounters exposes the total and dropped event counters.
func (m *Match) EventLogCounters() (total, dropped func() uint64) {
	return m.eventLog.GetTotalCount, m.eventLog.GetDroppedCount
}
