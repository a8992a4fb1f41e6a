package protocol

import "encoding/json"

const Version = "1.0"

// Client -> server command types.
const (
	TypeJoin        = "join"
	TypeMove        = "move"
	TypeAttack      = "attack"
	TypeUseItem     = "useItem"
	TypeEquipItem   = "equipItem"
	TypeUnequipItem = "unequipItem"
	TypeDropItem    = "dropItem"
	TypeChat        = "chat"
)

// Server -> client event types.
const (
	TypeWelcome          = "welcome"
	TypePlayerJoined     = "playerJoined"
	TypePlayerMoved      = "playerMoved"
	TypeOtherPlayerMoved = "otherPlayerMoved"
	TypeCombatUpdate     = "combatUpdate"
	TypePlayerDied       = "playerDied"
	TypeItemsDropped     = "itemsDropped"
	TypePlayerLeft       = "playerLeft"
	TypeInventoryUpdated = "inventoryUpdated"
	TypeEquipmentUpdated = "equipmentUpdated"
	TypeStatsUpdated     = "statsUpdated"
	TypeGameState        = "gameState"
	TypeChatMessage      = "chat:message"
	TypeError            = "error"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
