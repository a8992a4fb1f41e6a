package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"dungeonforge.gg/internal/protocol"
)

// A minimal scripted client: wanders the dungeon, attacks whoever comes into
// reach, and chats once in a while. Useful for load and smoke testing.
func main() {
	var (
		url  = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		name = flag.String("name", "bot", "player name")
		seed = flag.Int64("seed", 0, "rng seed (0 = time-based)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	join := protocol.JoinCmd{Type: protocol.TypeJoin, Name: *name}
	if err := conn.WriteJSON(join); err != nil {
		logger.Fatalf("send join: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	var (
		selfID     string
		tileSize   = 32.0
		meleeTiles = 2.0
	)

	for {
		select {
		case <-stop:
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				continue
			}
			selfID = w.Player.ID
			if w.World.TileSize > 0 {
				tileSize = w.World.TileSize
			}
			logger.Printf("welcome player_id=%s pos=(%.1f,%.1f) tick_rate=%dHz map=%dx%d",
				w.Player.ID, w.Player.Position.X, w.Player.Position.Y,
				w.World.TickRateHz, w.World.Width, w.World.Height)

		case protocol.TypeGameState:
			var gs protocol.GameStateMsg
			if err := json.Unmarshal(msg, &gs); err != nil {
				continue
			}
			act(conn, rng, selfID, tileSize*meleeTiles, &gs)

		case protocol.TypeCombatUpdate:
			var cu protocol.CombatUpdateMsg
			if err := json.Unmarshal(msg, &cu); err != nil {
				continue
			}
			if cu.TargetID == selfID {
				logger.Printf("hit for %d (health=%d)", cu.Damage, cu.TargetHealth)
			}

		case protocol.TypeError:
			var e protocol.ErrorMsg
			if err := json.Unmarshal(msg, &e); err != nil {
				continue
			}
			logger.Printf("server error code=%s msg=%s", e.Code, e.Message)
		}
	}
}

func act(conn *websocket.Conn, rng *rand.Rand, selfID string, meleeRange float64, gs *protocol.GameStateMsg) {
	var self *protocol.Player
	for i := range gs.Players {
		if gs.Players[i].ID == selfID {
			self = &gs.Players[i]
			break
		}
	}
	if self == nil {
		return
	}

	// Attack the nearest player in reach, if any.
	if gs.Tick%30 == 0 {
		var (
			bestID   string
			bestDist = math.Inf(1)
		)
		for i := range gs.Players {
			p := &gs.Players[i]
			if p.ID == selfID {
				continue
			}
			dx := p.Position.X - self.Position.X
			dy := p.Position.Y - self.Position.Y
			d := math.Hypot(dx, dy)
			if d <= meleeRange && d < bestDist {
				bestID, bestDist = p.ID, d
			}
		}
		if bestID != "" {
			_ = conn.WriteJSON(protocol.AttackCmd{Type: protocol.TypeAttack, TargetID: bestID})
		}
	}

	// Wander a few pixels each second or so.
	if gs.Tick%60 == 10 {
		_ = conn.WriteJSON(protocol.MoveCmd{
			Type: protocol.TypeMove,
			DX:   (rng.Float64()*2 - 1) * 8,
			DY:   (rng.Float64()*2 - 1) * 8,
		})
	}

	if gs.Tick%3600 == 20 {
		_ = conn.WriteJSON(protocol.ChatCmd{
			Type: protocol.TypeChat,
			Text: fmt.Sprintf("tick=%d hp=%d lvl=%d", gs.Tick, self.Health, self.Level),
		})
	}
}
