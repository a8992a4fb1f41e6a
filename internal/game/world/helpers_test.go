package world

import (
	"encoding/json"
	"testing"

	"dungeonforge.gg/internal/game/catalogs"
	"dungeonforge.gg/internal/protocol"
)

// seqRand returns queued values in order, then a constant fallback. The
// fallback must land on a walkable tile so spawn sampling terminates.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	if r.i < len(r.vals) {
		v := r.vals[r.i]
		r.i++
		return v
	}
	return 0.5
}

func testConfig() Config {
	return Config{
		TickRateHz:             60,
		MapWidth:               100,
		MapHeight:              100,
		TileSize:               32,
		MeleeRangeTiles:        2,
		HealthRegenPerTick:     1,
		ManaRegenMilliPerTick:  500,
		DeathDropPermille:      300,
		DamageVariancePermille: 100,
		ChatMaxLen:             512,
		StarterKit:             []string{"training_sword", "leather_tunic", "minor_health_potion"},
	}
}

func testCatalog(t *testing.T) *catalogs.Catalog {
	t.Helper()
	c, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return c
}

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := New(cfg, testCatalog(t), &seqRand{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

// joinPlayer runs the join handshake synchronously and returns the player plus
// its outbound frame channel.
func joinPlayer(t *testing.T, w *World, sessionID, name string) (*Player, chan []byte) {
	t.Helper()
	out := make(chan []byte, 256)
	resp := make(chan JoinResponse, 1)
	w.handleJoin(JoinRequest{
		SessionID: sessionID,
		Name:      name,
		Out:       out,
		Resp:      resp,
	})
	welcome := <-resp
	pid := welcome.Welcome.Player.ID
	p := w.players[pid]
	if p == nil {
		t.Fatalf("join did not register player %s", pid)
	}
	return p, out
}

// drainTypes decodes every queued frame on the channel and returns the message
// types in arrival order.
func drainTypes(t *testing.T, ch chan []byte) []string {
	t.Helper()
	var out []string
	for {
		select {
		case b := <-ch:
			base, err := protocol.DecodeBase(b)
			if err != nil {
				t.Fatalf("queued frame does not decode: %v", err)
			}
			out = append(out, base.Type)
		default:
			return out
		}
	}
}

func countType(types []string, want string) int {
	n := 0
	for _, tp := range types {
		if tp == want {
			n++
		}
	}
	return n
}

// lastOfType decodes the most recent frame of the wanted type into dst.
func lastOfType(t *testing.T, ch chan []byte, wantType string, dst any) bool {
	t.Helper()
	found := false
	for {
		select {
		case b := <-ch:
			base, err := protocol.DecodeBase(b)
			if err != nil {
				t.Fatalf("queued frame does not decode: %v", err)
			}
			if base.Type != wantType {
				continue
			}
			if err := json.Unmarshal(b, dst); err != nil {
				t.Fatalf("decode %s: %v", wantType, err)
			}
			found = true
		default:
			return found
		}
	}
}

func drain(ch chan []byte) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// giveWeapon equips a bare weapon with the given damage in the main hand.
func giveWeapon(p *Player, damage int) *Item {
	it := &Item{
		ID:        "w_" + p.ID,
		Name:      "test blade",
		Type:      TypeWeapon,
		Rarity:    RarityCommon,
		StackSize: 1,
		Stats:     ItemStats{Damage: damage},
	}
	p.Equipment[SlotMainHand] = it
	return it
}
