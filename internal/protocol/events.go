package protocol

// Position in continuous world coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
}

type ItemStats struct {
	Strength     int `json:"strength,omitempty"`
	Dexterity    int `json:"dexterity,omitempty"`
	Intelligence int `json:"intelligence,omitempty"`
	Damage       int `json:"damage,omitempty"`
	Armor        int `json:"armor,omitempty"`
	HealthBonus  int `json:"health_bonus,omitempty"`
	ManaBonus    int `json:"mana_bonus,omitempty"`
}

type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ItemType    string    `json:"item_type"`
	Rarity      string    `json:"rarity"`
	Stats       ItemStats `json:"stats"`
	Stackable   bool      `json:"stackable"`
	StackSize   int       `json:"stack_size"`
	Description string    `json:"description,omitempty"`
}

type Wallet struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// Player is the full wire view of a player. Inventory always has exactly 30
// entries; empty slots are null. Equipment is keyed by slot name.
type Player struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Position  Position         `json:"position"`
	Health    int              `json:"health"`
	MaxHealth int              `json:"max_health"`
	Mana      float64          `json:"mana"`
	MaxMana   int              `json:"max_mana"`
	Exp       int              `json:"exp"`
	MaxExp    int              `json:"max_exp"`
	Level     int              `json:"level"`
	Stats     Stats            `json:"stats"`
	Inventory []*Item          `json:"inventory"`
	Equipment map[string]*Item `json:"equipment"`
	Wallet    Wallet           `json:"wallet"`
}

// welcome (server -> client), sent once per successful join handshake.
type WelcomeMsg struct {
	Type          string      `json:"type"`
	Player        Player      `json:"player"`
	World         WorldParams `json:"world"`
	CatalogDigest string      `json:"catalog_digest"`
}

type WorldParams struct {
	TickRateHz int     `json:"tick_rate_hz"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	TileSize   float64 `json:"tile_size"`
}

type PlayerJoinedMsg struct {
	Type   string `json:"type"`
	Player Player `json:"player"`
}

type PlayerMovedMsg struct {
	Type     string   `json:"type"`
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
}

type CombatUpdateMsg struct {
	Type         string `json:"type"`
	AttackerID   string `json:"attacker_id"`
	TargetID     string `json:"target_id"`
	Damage       int    `json:"damage"`
	TargetHealth int    `json:"target_health"`
}

type PlayerDiedMsg struct {
	Type        string   `json:"type"`
	PlayerID    string   `json:"player_id"`
	NewPosition Position `json:"new_position"`
}

type ItemsDroppedMsg struct {
	Type     string   `json:"type"`
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
	Items    []*Item  `json:"items"`
}

type PlayerLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

type InventoryUpdatedMsg struct {
	Type      string  `json:"type"`
	Inventory []*Item `json:"inventory"`
}

type EquipmentUpdatedMsg struct {
	Type      string           `json:"type"`
	Equipment map[string]*Item `json:"equipment"`
}

// statsUpdated carries the vitals block; clients re-render health/mana/exp bars.
type StatsUpdatedMsg struct {
	Type     string  `json:"type"`
	Health   int     `json:"health"`
	Mana     float64 `json:"mana"`
	Exp      int     `json:"exp"`
	MaxExp   int     `json:"max_exp"`
	Level    int     `json:"level"`
	Stats    Stats   `json:"stats"`
	PlayerID string  `json:"player_id"`
}

// gameState is the periodic full snapshot; the reconciliation point that
// overrides client prediction drift.
type GameStateMsg struct {
	Type    string   `json:"type"`
	Tick    uint64   `json:"tick"`
	Players []Player `json:"players"`
}

type ChatMessageMsg struct {
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
