package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"dungeonforge.gg/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	roundtrip := func(v any) any {
		t.Helper()
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return out
	}

	joinSchema := compile("join.schema.json")
	moveSchema := compile("move.schema.json")
	attackSchema := compile("attack.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	gameStateSchema := compile("game_state.schema.json")
	errorSchema := compile("error.schema.json")

	var join any
	_ = json.Unmarshal([]byte(`{"type":"join","name":"hero","wallet_address":"0xabc"}`), &join)
	validate(joinSchema, join)

	var move any
	_ = json.Unmarshal([]byte(`{"type":"move","dx":3.5,"dy":-1}`), &move)
	validate(moveSchema, move)

	var attack any
	_ = json.Unmarshal([]byte(`{"type":"attack","target_id":"p2"}`), &attack)
	validate(attackSchema, attack)

	sword := &protocol.Item{
		ID:        "i1",
		Name:      "Training Sword",
		ItemType:  "Weapon",
		Rarity:    "Common",
		Stats:     protocol.ItemStats{Damage: 5},
		StackSize: 1,
	}
	inv := make([]*protocol.Item, 30)
	inv[0] = sword
	player := protocol.Player{
		ID:        "p1",
		Name:      "hero",
		Position:  protocol.Position{X: 1616, Y: 1616},
		Health:    100,
		MaxHealth: 100,
		Mana:      100,
		MaxMana:   100,
		Exp:       0,
		MaxExp:    1000,
		Level:     1,
		Stats:     protocol.Stats{Strength: 10, Dexterity: 10, Intelligence: 10},
		Inventory: inv,
		Equipment: map[string]*protocol.Item{"MainHand": sword},
	}

	welcome := protocol.WelcomeMsg{
		Type:   protocol.TypeWelcome,
		Player: player,
		World: protocol.WorldParams{
			TickRateHz: 60,
			Width:      100,
			Height:     100,
			TileSize:   32,
		},
		CatalogDigest: "6a7f3c0d9b1e5a2c4f8e0d6b3a1c7e9f2d4b6a8c0e2f4a6c8e0b2d4f6a8c0e2f",
	}
	validate(welcomeSchema, roundtrip(welcome))

	gs := protocol.GameStateMsg{
		Type:    protocol.TypeGameState,
		Tick:    4321,
		Players: []protocol.Player{player},
	}
	validate(gameStateSchema, roundtrip(gs))

	var errMsg any
	_ = json.Unmarshal([]byte(`{"type":"error","code":"E_INVENTORY_FULL","message":"no empty slot"}`), &errMsg)
	validate(errorSchema, errMsg)
}

func TestSchemas_RejectBadSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	moveSchema := compile("move.schema.json")
	var missingDY any
	_ = json.Unmarshal([]byte(`{"type":"move","dx":1}`), &missingDY)
	if err := moveSchema.Validate(missingDY); err == nil {
		t.Fatalf("move without dy should fail validation")
	}

	attackSchema := compile("attack.schema.json")
	var emptyTarget any
	_ = json.Unmarshal([]byte(`{"type":"attack","target_id":""}`), &emptyTarget)
	if err := attackSchema.Validate(emptyTarget); err == nil {
		t.Fatalf("attack with empty target_id should fail validation")
	}

	errorSchema := compile("error.schema.json")
	var unknownCode any
	_ = json.Unmarshal([]byte(`{"type":"error","code":"E_NOPE","message":"x"}`), &unknownCode)
	if err := errorSchema.Validate(unknownCode); err == nil {
		t.Fatalf("unknown error code should fail validation")
	}
}
