package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ItemDef is a content definition, not an owned instance: the world stamps
// fresh instances (with their own ids) from a def.
type ItemDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Rarity      string   `json:"rarity"`
	Stats       StatsDef `json:"stats,omitempty"`
	Stackable   bool     `json:"stackable,omitempty"`
	StackSize   int      `json:"stack_size,omitempty"`
	Description string   `json:"description,omitempty"`
}

type StatsDef struct {
	Strength     int `json:"strength,omitempty"`
	Dexterity    int `json:"dexterity,omitempty"`
	Intelligence int `json:"intelligence,omitempty"`
	Damage       int `json:"damage,omitempty"`
	Armor        int `json:"armor,omitempty"`
	HealthBonus  int `json:"health_bonus,omitempty"`
	ManaBonus    int `json:"mana_bonus,omitempty"`
}

type Catalog struct {
	defs  map[string]ItemDef
	order []string

	// Digest is the sha256 of the raw catalog file; clients cache content by it.
	Digest string
}

var validTypes = map[string]struct{}{
	"Weapon": {}, "Armor": {}, "Consumable": {}, "Resource": {}, "Quest": {}, "NFT": {},
}

var validRarities = map[string]struct{}{
	"Common": {}, "Uncommon": {}, "Rare": {}, "Epic": {}, "Legendary": {},
}

func Load(configDir string) (*Catalog, error) {
	path := filepath.Join(configDir, "items.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("items.json: %w", err)
	}

	sum := sha256.Sum256(raw)
	c := &Catalog{
		defs:   make(map[string]ItemDef, len(defs)),
		order:  make([]string, 0, len(defs)),
		Digest: hex.EncodeToString(sum[:]),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("items.json: def with empty id")
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("items.json: duplicate id %q", d.ID)
		}
		if _, ok := validTypes[d.Type]; !ok {
			return nil, fmt.Errorf("items.json: %s has unknown type %q", d.ID, d.Type)
		}
		if _, ok := validRarities[d.Rarity]; !ok {
			return nil, fmt.Errorf("items.json: %s has unknown rarity %q", d.ID, d.Rarity)
		}
		if d.Stackable && d.StackSize < 1 {
			return nil, fmt.Errorf("items.json: %s stackable with stack_size < 1", d.ID)
		}
		c.defs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

func (c *Catalog) Def(id string) (ItemDef, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// IDs returns def ids in file order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Len() int { return len(c.defs) }
