package world

import (
	"encoding/json"
	"sort"

	"dungeonforge.gg/internal/protocol"
)

// send marshals and delivers an event to a single player's connection.
func (w *World) send(playerID string, v any) {
	cl := w.clients[playerID]
	if cl == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	sendLatest(cl.Out, b)
}

// broadcast marshals once and fans out to every connected client.
func (w *World) broadcast(v any) {
	w.broadcastExcept("", v)
}

func (w *World) broadcastExcept(excludeID string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	for id, cl := range w.clients {
		if id == excludeID {
			continue
		}
		sendLatest(cl.Out, b)
	}
}

func (w *World) sendError(p *Player, opErr *OpError) {
	w.send(p.ID, protocol.ErrorMsg{
		Type:    protocol.TypeError,
		Code:    opErr.Code,
		Message: opErr.Message,
	})
}

// sendLatest never blocks the world goroutine: on a full buffer it drops the
// oldest queued frame and retries once. A slow consumer loses stale frames;
// the periodic snapshot repairs whatever it missed.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}

func itemView(it *Item) *protocol.Item {
	if it == nil {
		return nil
	}
	return &protocol.Item{
		ID:        it.ID,
		Name:      it.Name,
		ItemType:  string(it.Type),
		Rarity:    string(it.Rarity),
		Stackable: it.Stackable,
		StackSize: it.StackSize,
		Stats: protocol.ItemStats{
			Strength:     it.Stats.Strength,
			Dexterity:    it.Stats.Dexterity,
			Intelligence: it.Stats.Intelligence,
			Damage:       it.Stats.Damage,
			Armor:        it.Stats.Armor,
			HealthBonus:  it.Stats.HealthBonus,
			ManaBonus:    it.Stats.ManaBonus,
		},
		Description: it.Description,
	}
}

func inventoryView(p *Player) []*protocol.Item {
	out := make([]*protocol.Item, InventorySlots)
	for i, it := range p.Inventory {
		out[i] = itemView(it)
	}
	return out
}

func equipmentView(p *Player) map[string]*protocol.Item {
	out := map[string]*protocol.Item{}
	for slot, it := range p.Equipment {
		if it == nil {
			continue
		}
		out[string(slot)] = itemView(it)
	}
	return out
}

func (w *World) playerView(p *Player) protocol.Player {
	return protocol.Player{
		ID:        p.ID,
		Name:      p.Name,
		Position:  protocol.Position{X: p.Pos.X, Y: p.Pos.Y},
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		Mana:      p.Mana(),
		MaxMana:   p.MaxMana,
		Exp:       p.Exp,
		MaxExp:    p.MaxExp,
		Level:     p.Level,
		Stats: protocol.Stats{
			Strength:     p.Stats.Strength,
			Dexterity:    p.Stats.Dexterity,
			Intelligence: p.Stats.Intelligence,
		},
		Inventory: inventoryView(p),
		Equipment: equipmentView(p),
		Wallet:    protocol.Wallet{Address: p.Wallet.Address, Balance: p.Wallet.Balance},
	}
}

func (w *World) inventoryUpdated(p *Player) protocol.InventoryUpdatedMsg {
	return protocol.InventoryUpdatedMsg{
		Type:      protocol.TypeInventoryUpdated,
		Inventory: inventoryView(p),
	}
}

func (w *World) equipmentUpdated(p *Player) protocol.EquipmentUpdatedMsg {
	return protocol.EquipmentUpdatedMsg{
		Type:      protocol.TypeEquipmentUpdated,
		Equipment: equipmentView(p),
	}
}

func (w *World) statsUpdated(p *Player) protocol.StatsUpdatedMsg {
	return protocol.StatsUpdatedMsg{
		Type:     protocol.TypeStatsUpdated,
		PlayerID: p.ID,
		Health:   p.Health,
		Mana:     p.Mana(),
		Exp:      p.Exp,
		MaxExp:   p.MaxExp,
		Level:    p.Level,
		Stats: protocol.Stats{
			Strength:     p.Stats.Strength,
			Dexterity:    p.Stats.Dexterity,
			Intelligence: p.Stats.Intelligence,
		},
	}
}

// snapshot builds the gameState broadcast. Players are sorted by id so the
// payload is deterministic for a given state.
func (w *World) snapshot(tick uint64) protocol.GameStateMsg {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	players := make([]protocol.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, w.playerView(w.players[id]))
	}
	return protocol.GameStateMsg{
		Type:    protocol.TypeGameState,
		Tick:    tick,
		Players: players,
	}
}
