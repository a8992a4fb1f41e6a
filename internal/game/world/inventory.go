package world

import (
	"fmt"

	"dungeonforge.gg/internal/protocol"
)

// OpError is a typed transaction failure. Every failed inventory/equipment
// operation leaves the player unchanged and surfaces one of these.
type OpError struct {
	Code    string
	Message string
}

func (e *OpError) Error() string { return e.Code + ": " + e.Message }

func errOp(code, format string, args ...any) *OpError {
	return &OpError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// UseItem consumes one unit of a Consumable: vitals gain the item's bonuses
// (clamped), then the stack decrements or the slot empties.
func (p *Player) UseItem(itemID string) *OpError {
	i := p.findItem(itemID)
	if i < 0 {
		return errOp(protocol.ErrItemNotFound, "item %s not in inventory", itemID)
	}
	it := p.Inventory[i]
	if it.Type != TypeConsumable {
		return errOp(protocol.ErrNotConsumable, "%s is not consumable", it.Name)
	}

	p.addHealth(it.Stats.HealthBonus)
	p.addManaMilli(it.Stats.ManaBonus * 1000)

	if it.Stackable && it.StackSize > 1 {
		it.StackSize--
	} else {
		p.Inventory[i] = nil
	}
	return nil
}

// EquipItem moves an inventory item into an equipment slot. A current occupant
// is relocated to an empty inventory slot first; with no empty slot the whole
// operation fails, so the occupant is never evicted without a destination.
func (p *Player) EquipItem(itemID string, slot Slot) *OpError {
	i := p.findItem(itemID)
	if i < 0 {
		return errOp(protocol.ErrItemNotFound, "item %s not in inventory", itemID)
	}
	it := p.Inventory[i]
	if !it.Type.EquippableIn(slot) {
		return errOp(protocol.ErrBadSlot, "%s cannot occupy slot %s", it.Type, slot)
	}

	if cur := p.Equipment[slot]; cur != nil {
		dst := p.firstEmptySlot()
		if dst < 0 {
			return errOp(protocol.ErrInventoryFull, "no free inventory slot for equipped %s", cur.Name)
		}
		p.Inventory[dst] = cur
	}
	p.Inventory[i] = nil
	p.Equipment[slot] = it
	return nil
}

// UnequipItem moves the slot's occupant to the first empty inventory slot.
func (p *Player) UnequipItem(slot Slot) *OpError {
	it := p.Equipment[slot]
	if it == nil {
		return errOp(protocol.ErrSlotEmpty, "nothing equipped in %s", slot)
	}
	dst := p.firstEmptySlot()
	if dst < 0 {
		return errOp(protocol.ErrInventoryFull, "no free inventory slot for %s", it.Name)
	}
	p.Inventory[dst] = it
	delete(p.Equipment, slot)
	return nil
}

// DropItem clears the item's slot and returns the destroyed instance.
// World re-entry of drops is out of scope; the item just leaves the player.
func (p *Player) DropItem(itemID string) (*Item, *OpError) {
	i := p.findItem(itemID)
	if i < 0 {
		return nil, errOp(protocol.ErrItemNotFound, "item %s not in inventory", itemID)
	}
	it := p.Inventory[i]
	p.Inventory[i] = nil
	return it, nil
}
