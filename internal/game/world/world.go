package world

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"dungeonforge.gg/internal/game/catalogs"
	"dungeonforge.gg/internal/protocol"
)

type Config struct {
	TickRateHz int

	MapWidth  int
	MapHeight int
	TileSize  float64

	// MeleeRangeTiles scales TileSize into the attack reach.
	MeleeRangeTiles float64

	HealthRegenPerTick     int
	ManaRegenMilliPerTick  int
	DeathDropPermille      int
	DamageVariancePermille int

	ChatMaxLen int
	StarterKit []string
}

type JoinRequest struct {
	SessionID     string
	Name          string
	WalletAddress string
	Out           chan []byte
	Resp          chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type CommandEnvelope struct {
	SessionID string
	Cmd       protocol.Command
}

// CombatLogger and SessionLogger are optional sinks implemented in
// internal/persistence/*. They must not block the world goroutine.
type CombatLogger interface {
	WriteCombat(entry CombatLogEntry) error
}

type SessionLogger interface {
	WriteSession(entry SessionLogEntry) error
}

type CombatLogEntry struct {
	Tick         uint64 `json:"tick"`
	AttackerID   string `json:"attacker_id"`
	TargetID     string `json:"target_id"`
	Damage       int    `json:"damage"`
	TargetHealth int    `json:"target_health"`
	Killed       bool   `json:"killed"`
}

type SessionLogEntry struct {
	Tick     uint64 `json:"tick"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Event    string `json:"event"` // "join" or "leave"
}

type clientState struct {
	Out chan []byte
}

// World is the single authoritative owner of all game state. All state must be
// accessed only from the world loop goroutine; the channels below are the only
// way in.
type World struct {
	cfg     Config
	catalog *catalogs.Catalog
	gameMap *Map
	rng     Rand

	tick atomic.Uint64

	players  map[string]*Player      // player id -> player
	sessions map[string]string       // connection session id -> player id
	clients  map[string]*clientState // player id -> outbound state

	inbox chan CommandEnvelope
	join  chan JoinRequest
	leave chan string
	stop  chan struct{}

	combatLog  CombatLogger
	sessionLog SessionLogger

	playersGauge atomic.Int64
	stepMicros   atomic.Int64
}

func New(cfg Config, catalog *catalogs.Catalog, rng Rand) (*World, error) {
	m := NewDungeonMap(cfg.MapWidth, cfg.MapHeight, cfg.TileSize)
	if !m.HasWalkable() {
		return nil, fmt.Errorf("map %dx%d has no walkable tile", cfg.MapWidth, cfg.MapHeight)
	}
	for _, id := range cfg.StarterKit {
		if _, ok := catalog.Def(id); !ok {
			return nil, fmt.Errorf("starter kit references unknown item %q", id)
		}
	}

	w := &World{
		cfg:      cfg,
		catalog:  catalog,
		gameMap:  m,
		rng:      rng,
		players:  map[string]*Player{},
		sessions: map[string]string{},
		clients:  map[string]*clientState{},
		inbox:    make(chan CommandEnvelope, 1024),
		join:     make(chan JoinRequest, 64),
		leave:    make(chan string, 64),
		stop:     make(chan struct{}),
	}
	return w, nil
}

func (w *World) SetCombatLogger(l CombatLogger)   { w.combatLog = l }
func (w *World) SetSessionLogger(l SessionLogger) { w.sessionLog = l }

func (w *World) Inbox() chan<- CommandEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest      { return w.join }
func (w *World) Leave() chan<- string          { return w.leave }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Map() *Map { return w.gameMap }

// Run drives the world until the context is canceled. Commands are applied in
// arrival order as they arrive; the ticker fires regen plus the full snapshot
// broadcast. time.Ticker coalesces missed ticks rather than queueing them.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			w.handleJoin(req)
		case sid := <-w.leave:
			w.handleLeave(sid)
		case env := <-w.inbox:
			w.dispatch(env)
		case <-ticker.C:
			start := time.Now()
			w.stepTick()
			w.stepMicros.Store(time.Since(start).Microseconds())
		}
	}
}

func (w *World) Stop() { close(w.stop) }

func (w *World) handleJoin(req JoinRequest) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "adventurer"
	}

	p := &Player{
		ID:        uuid.NewString(),
		SessionID: req.SessionID,
		Name:      name,
		Wallet:    Wallet{Address: req.WalletAddress},
	}
	p.initDefaults()
	p.Pos = w.gameMap.RandomSpawn(w.rng)

	for _, defID := range w.cfg.StarterKit {
		def, ok := w.catalog.Def(defID)
		if !ok {
			continue
		}
		p.giveItem(w.newItem(def))
	}

	w.players[p.ID] = p
	w.sessions[req.SessionID] = p.ID
	if req.Out != nil {
		w.clients[p.ID] = &clientState{Out: req.Out}
	}
	w.playersGauge.Store(int64(len(w.players)))

	w.broadcastExcept(p.ID, protocol.PlayerJoinedMsg{
		Type:   protocol.TypePlayerJoined,
		Player: w.playerView(p),
	})
	if w.sessionLog != nil {
		_ = w.sessionLog.WriteSession(SessionLogEntry{
			Tick: w.tick.Load(), PlayerID: p.ID, Name: p.Name, Event: "join",
		})
	}

	if req.Resp != nil {
		req.Resp <- JoinResponse{Welcome: protocol.WelcomeMsg{
			Type:   protocol.TypeWelcome,
			Player: w.playerView(p),
			World: protocol.WorldParams{
				TickRateHz: w.cfg.TickRateHz,
				Width:      w.gameMap.Width,
				Height:     w.gameMap.Height,
				TileSize:   w.gameMap.TileSize,
			},
			CatalogDigest: w.catalog.Digest,
		}}
	}
}

// handleLeave removes the player bound to the session. Idempotent: removing an
// unknown session is a no-op, so a double disconnect broadcasts nothing twice.
func (w *World) handleLeave(sessionID string) {
	pid, ok := w.sessions[sessionID]
	if !ok {
		return
	}
	p := w.players[pid]
	delete(w.sessions, sessionID)
	delete(w.players, pid)
	delete(w.clients, pid)
	w.playersGauge.Store(int64(len(w.players)))

	w.broadcast(protocol.PlayerLeftMsg{Type: protocol.TypePlayerLeft, PlayerID: pid})
	if w.sessionLog != nil && p != nil {
		_ = w.sessionLog.WriteSession(SessionLogEntry{
			Tick: w.tick.Load(), PlayerID: pid, Name: p.Name, Event: "leave",
		})
	}
}

func (w *World) dispatch(env CommandEnvelope) {
	pid, ok := w.sessions[env.SessionID]
	if !ok {
		return
	}
	p := w.players[pid]
	if p == nil {
		return
	}

	switch c := env.Cmd.(type) {
	case *protocol.MoveCmd:
		w.applyMove(p, c.DX, c.DY)

	case *protocol.AttackCmd:
		w.attack(p, c.TargetID)

	case *protocol.UseItemCmd:
		if opErr := p.UseItem(c.ItemID); opErr != nil {
			w.sendError(p, opErr)
			return
		}
		w.send(p.ID, w.inventoryUpdated(p))
		w.send(p.ID, w.statsUpdated(p))

	case *protocol.EquipItemCmd:
		slot, ok := ParseSlot(c.Slot)
		if !ok {
			w.sendError(p, errOp(protocol.ErrBadSlot, fmt.Sprintf("unknown equipment slot %q", c.Slot)))
			return
		}
		if opErr := p.EquipItem(c.ItemID, slot); opErr != nil {
			w.sendError(p, opErr)
			return
		}
		w.send(p.ID, w.inventoryUpdated(p))
		w.send(p.ID, w.equipmentUpdated(p))

	case *protocol.UnequipItemCmd:
		slot, ok := ParseSlot(c.Slot)
		if !ok {
			w.sendError(p, errOp(protocol.ErrBadSlot, fmt.Sprintf("unknown equipment slot %q", c.Slot)))
			return
		}
		if opErr := p.UnequipItem(slot); opErr != nil {
			w.sendError(p, opErr)
			return
		}
		w.send(p.ID, w.inventoryUpdated(p))
		w.send(p.ID, w.equipmentUpdated(p))

	case *protocol.DropItemCmd:
		if _, opErr := p.DropItem(c.ItemID); opErr != nil {
			w.sendError(p, opErr)
			return
		}
		w.send(p.ID, w.inventoryUpdated(p))

	case *protocol.ChatCmd:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return
		}
		if w.cfg.ChatMaxLen > 0 && len(text) > w.cfg.ChatMaxLen {
			text = text[:w.cfg.ChatMaxLen]
		}
		w.broadcast(protocol.ChatMessageMsg{
			Type:      protocol.TypeChatMessage,
			Sender:    p.Name,
			Content:   text,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

// stepTick applies passive regen to every player and broadcasts the full
// snapshot all clients reconcile against.
func (w *World) stepTick() {
	for _, p := range w.players {
		p.addHealth(w.cfg.HealthRegenPerTick)
		p.addManaMilli(w.cfg.ManaRegenMilliPerTick)
	}

	nowTick := w.tick.Load()
	w.broadcast(w.snapshot(nowTick))
	w.tick.Add(1)
}

func (w *World) newItem(def catalogs.ItemDef) *Item {
	stack := def.StackSize
	if stack < 1 {
		stack = 1
	}
	itemType, _ := ParseItemType(def.Type)
	return &Item{
		ID:        uuid.NewString(),
		DefID:     def.ID,
		Name:      def.Name,
		Type:      itemType,
		Rarity:    Rarity(def.Rarity),
		Stackable: def.Stackable,
		StackSize: stack,
		Stats: ItemStats{
			Strength:     def.Stats.Strength,
			Dexterity:    def.Stats.Dexterity,
			Intelligence: def.Stats.Intelligence,
			Damage:       def.Stats.Damage,
			Armor:        def.Stats.Armor,
			HealthBonus:  def.Stats.HealthBonus,
			ManaBonus:    def.Stats.ManaBonus,
		},
		Description: def.Description,
	}
}

type WorldMetrics struct {
	Tick    uint64  `json:"tick"`
	Players int     `json:"players"`
	StepMS  float64 `json:"step_ms"`

	QueueDepths struct {
		Inbox int `json:"inbox"`
		Join  int `json:"join"`
		Leave int `json:"leave"`
	} `json:"queue_depths"`
}

func (w *World) Metrics() WorldMetrics {
	var m WorldMetrics
	m.Tick = w.tick.Load()
	m.Players = int(w.playersGauge.Load())
	m.StepMS = float64(w.stepMicros.Load()) / 1000
	m.QueueDepths.Inbox = len(w.inbox)
	m.QueueDepths.Join = len(w.join)
	m.QueueDepths.Leave = len(w.leave)
	return m
}
