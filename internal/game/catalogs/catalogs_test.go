package catalogs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_RealCatalog(t *testing.T) {
	c, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() == 0 {
		t.Fatalf("catalog is empty")
	}
	if len(c.Digest) != 64 {
		t.Fatalf("digest %q is not sha256 hex", c.Digest)
	}

	sword, ok := c.Def("training_sword")
	if !ok {
		t.Fatalf("training_sword missing")
	}
	if sword.Type != "Weapon" || sword.Stats.Damage != 5 {
		t.Fatalf("unexpected training_sword: %+v", sword)
	}

	potion, ok := c.Def("minor_health_potion")
	if !ok {
		t.Fatalf("minor_health_potion missing")
	}
	if !potion.Stackable || potion.StackSize != 3 || potion.Stats.HealthBonus != 25 {
		t.Fatalf("unexpected minor_health_potion: %+v", potion)
	}

	ids := c.IDs()
	if len(ids) != c.Len() {
		t.Fatalf("IDs() length %d != Len() %d", len(ids), c.Len())
	}
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write items.json: %v", err)
	}
	return dir
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty id", `[{"id":"","name":"x","type":"Weapon","rarity":"Common"}]`},
		{"duplicate id", `[{"id":"a","name":"x","type":"Weapon","rarity":"Common"},{"id":"a","name":"y","type":"Weapon","rarity":"Common"}]`},
		{"unknown type", `[{"id":"a","name":"x","type":"Spell","rarity":"Common"}]`},
		{"unknown rarity", `[{"id":"a","name":"x","type":"Weapon","rarity":"Mythic"}]`},
		{"stackable without size", `[{"id":"a","name":"x","type":"Consumable","rarity":"Common","stackable":true}]`},
		{"malformed json", `[{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeCatalog(t, tc.body)); err == nil {
				t.Fatalf("want error for %s", tc.name)
			}
		})
	}
}

func TestLoad_DigestChangesWithContent(t *testing.T) {
	a, err := Load(writeCatalog(t, `[{"id":"a","name":"x","type":"Weapon","rarity":"Common"}]`))
	if err != nil {
		t.Fatalf("Load a: %v", err)
	}
	b, err := Load(writeCatalog(t, `[{"id":"a","name":"x2","type":"Weapon","rarity":"Common"}]`))
	if err != nil {
		t.Fatalf("Load b: %v", err)
	}
	if a.Digest == b.Digest {
		t.Fatalf("different content produced identical digest")
	}
}
