package protocol

import (
	"encoding/json"
	"fmt"
)

// Command is the closed set of decoded client commands. The gateway decodes
// raw frames into exactly one of these before anything reaches the world.
type Command interface {
	isCommand()
}

type JoinCmd struct {
	Type          string `json:"type"`
	Name          string `json:"name,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

type MoveCmd struct {
	Type string  `json:"type"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
}

type AttackCmd struct {
	Type     string `json:"type"`
	TargetID string `json:"target_id"`
}

type UseItemCmd struct {
	Type   string `json:"type"`
	ItemID string `json:"item_id"`
}

type EquipItemCmd struct {
	Type   string `json:"type"`
	ItemID string `json:"item_id"`
	Slot   string `json:"slot"`
}

type UnequipItemCmd struct {
	Type string `json:"type"`
	Slot string `json:"slot"`
}

type DropItemCmd struct {
	Type   string `json:"type"`
	ItemID string `json:"item_id"`
}

type ChatCmd struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (JoinCmd) isCommand()        {}
func (MoveCmd) isCommand()        {}
func (AttackCmd) isCommand()      {}
func (UseItemCmd) isCommand()     {}
func (EquipItemCmd) isCommand()   {}
func (UnequipItemCmd) isCommand() {}
func (DropItemCmd) isCommand()    {}
func (ChatCmd) isCommand()        {}

// DecodeCommand decodes a raw client frame into its typed variant.
// Unknown or undecodable frames return an error; the gateway logs and drops them.
func DecodeCommand(b []byte) (Command, error) {
	base, err := DecodeBase(b)
	if err != nil {
		return nil, err
	}

	var cmd Command
	switch base.Type {
	case TypeJoin:
		cmd = &JoinCmd{}
	case TypeMove:
		cmd = &MoveCmd{}
	case TypeAttack:
		cmd = &AttackCmd{}
	case TypeUseItem:
		cmd = &UseItemCmd{}
	case TypeEquipItem:
		cmd = &EquipItemCmd{}
	case TypeUnequipItem:
		cmd = &UnequipItemCmd{}
	case TypeDropItem:
		cmd = &DropItemCmd{}
	case TypeChat:
		cmd = &ChatCmd{}
	default:
		return nil, fmt.Errorf("unknown command type %q", base.Type)
	}
	if err := json.Unmarshal(b, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}
