package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Inventory/equipment transactions.
	ErrItemNotFound  = "E_ITEM_NOT_FOUND"
	ErrNotConsumable = "E_NOT_CONSUMABLE"
	ErrBadSlot       = "E_BAD_SLOT"
	ErrInventoryFull = "E_INVENTORY_FULL"
	ErrSlotEmpty     = "E_SLOT_EMPTY"

	// Generic rule layer.
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrInternal      = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrItemNotFound:    {},
	ErrNotConsumable:   {},
	ErrBadSlot:         {},
	ErrInventoryFull:   {},
	ErrSlotEmpty:       {},
	ErrBadRequest:      {},
	ErrInvalidTarget:   {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
