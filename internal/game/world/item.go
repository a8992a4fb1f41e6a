package world

type ItemType string

const (
	TypeWeapon     ItemType = "Weapon"
	TypeArmor      ItemType = "Armor"
	TypeConsumable ItemType = "Consumable"
	TypeResource   ItemType = "Resource"
	TypeQuest      ItemType = "Quest"
	TypeNFT        ItemType = "NFT"
)

func ParseItemType(s string) (ItemType, bool) {
	switch ItemType(s) {
	case TypeWeapon, TypeArmor, TypeConsumable, TypeResource, TypeQuest, TypeNFT:
		return ItemType(s), true
	}
	return "", false
}

// Rarity is ordered for display only; it has no gameplay effect here.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
}

func (r Rarity) Rank() int { return rarityRank[r] }

// Slot is the closed set of equipment slots.
type Slot string

const (
	SlotMainHand Slot = "MainHand"
	SlotOffHand  Slot = "OffHand"
	SlotHead     Slot = "Head"
	SlotChest    Slot = "Chest"
	SlotLegs     Slot = "Legs"
	SlotFeet     Slot = "Feet"
	SlotHands    Slot = "Hands"
	SlotNeck     Slot = "Neck"
	SlotRing1    Slot = "Ring1"
	SlotRing2    Slot = "Ring2"
)

var AllSlots = []Slot{
	SlotMainHand, SlotOffHand, SlotHead, SlotChest, SlotLegs,
	SlotFeet, SlotHands, SlotNeck, SlotRing1, SlotRing2,
}

func ParseSlot(s string) (Slot, bool) {
	for _, slot := range AllSlots {
		if Slot(s) == slot {
			return slot, true
		}
	}
	return "", false
}

type ItemStats struct {
	Strength     int
	Dexterity    int
	Intelligence int
	Damage       int
	Armor        int
	HealthBonus  int
	ManaBonus    int
}

// Item is one owned item instance. An instance lives in exactly one place at a
// time: one inventory slot or one equipment slot.
type Item struct {
	ID          string
	DefID       string
	Name        string
	Type        ItemType
	Rarity      Rarity
	Stats       ItemStats
	Stackable   bool
	StackSize   int
	Description string
}

// EquippableIn reports whether items of this type may occupy the given slot.
// Weapons go to a hand; armor to a body slot; nothing else equips.
func (t ItemType) EquippableIn(slot Slot) bool {
	switch t {
	case TypeWeapon:
		return slot == SlotMainHand || slot == SlotOffHand
	case TypeArmor:
		switch slot {
		case SlotHead, SlotChest, SlotLegs, SlotFeet, SlotHands:
			return true
		}
	}
	return false
}
