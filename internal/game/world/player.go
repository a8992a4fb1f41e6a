package world

// InventorySlots is the fixed inventory capacity per player.
const InventorySlots = 30

type Vec2 struct {
	X float64
	Y float64
}

type StatBlock struct {
	Strength     int
	Dexterity    int
	Intelligence int
}

// Wallet is opaque passthrough: the core never validates or settles it.
type Wallet struct {
	Address string
	Balance float64
}

type Player struct {
	ID        string
	SessionID string
	Name      string

	Pos Vec2

	Health    int
	MaxHealth int
	// Mana accumulates in milli-units so the 0.5/tick regen stays integral.
	ManaMilli int
	MaxMana   int

	Exp    int
	MaxExp int
	Level  int

	Stats StatBlock

	Inventory [InventorySlots]*Item
	Equipment map[Slot]*Item

	Wallet Wallet
}

func (p *Player) initDefaults() {
	if p.MaxHealth == 0 {
		p.MaxHealth = 100
	}
	if p.Health == 0 {
		p.Health = p.MaxHealth
	}
	if p.MaxMana == 0 {
		p.MaxMana = 100
	}
	if p.ManaMilli == 0 {
		p.ManaMilli = p.MaxMana * 1000
	}
	if p.MaxExp == 0 {
		p.MaxExp = 1000
	}
	if p.Level == 0 {
		p.Level = 1
	}
	if p.Stats == (StatBlock{}) {
		p.Stats = StatBlock{Strength: 10, Dexterity: 10, Intelligence: 10}
	}
	if p.Equipment == nil {
		p.Equipment = map[Slot]*Item{}
	}
}

// Mana is the externally visible mana value.
func (p *Player) Mana() float64 { return float64(p.ManaMilli) / 1000 }

func (p *Player) addManaMilli(d int) {
	p.ManaMilli += d
	if max := p.MaxMana * 1000; p.ManaMilli > max {
		p.ManaMilli = max
	}
	if p.ManaMilli < 0 {
		p.ManaMilli = 0
	}
}

func (p *Player) addHealth(d int) {
	p.Health += d
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	if p.Health < 0 {
		p.Health = 0
	}
}

// findItem returns the inventory slot index holding itemID, or -1.
func (p *Player) findItem(itemID string) int {
	for i, it := range p.Inventory {
		if it != nil && it.ID == itemID {
			return i
		}
	}
	return -1
}

func (p *Player) firstEmptySlot() int {
	for i, it := range p.Inventory {
		if it == nil {
			return i
		}
	}
	return -1
}

// giveItem places an item in the first empty slot. Returns false when full.
func (p *Player) giveItem(it *Item) bool {
	i := p.firstEmptySlot()
	if i < 0 {
		return false
	}
	p.Inventory[i] = it
	return true
}

// ownedCount is the total of occupied inventory and equipment slots.
func (p *Player) ownedCount() int {
	n := 0
	for _, it := range p.Inventory {
		if it != nil {
			n++
		}
	}
	for _, it := range p.Equipment {
		if it != nil {
			n++
		}
	}
	return n
}

func (p *Player) mainHandWeapon() *Item {
	it := p.Equipment[SlotMainHand]
	if it != nil && it.Type == TypeWeapon {
		return it
	}
	return nil
}
