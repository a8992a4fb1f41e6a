package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz int `yaml:"tick_rate_hz"`

	MapWidth  int     `yaml:"map_width"`
	MapHeight int     `yaml:"map_height"`
	TileSize  float64 `yaml:"tile_size"`

	MeleeRangeTiles float64 `yaml:"melee_range_tiles"`

	HealthRegenPerTick    int `yaml:"health_regen_per_tick"`
	ManaRegenMilliPerTick int `yaml:"mana_regen_milli_per_tick"`

	DeathDropPermille      int `yaml:"death_drop_permille"`
	DamageVariancePermille int `yaml:"damage_variance_permille"`

	SendBuffer int `yaml:"send_buffer"`
	ChatMaxLen int `yaml:"chat_max_len"`

	StarterKit []string `yaml:"starter_kit"`
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz:             60,
		MapWidth:               100,
		MapHeight:              100,
		TileSize:               32,
		MeleeRangeTiles:        2,
		HealthRegenPerTick:     1,
		ManaRegenMilliPerTick:  500,
		DeathDropPermille:      300,
		DamageVariancePermille: 100,
		SendBuffer:             64,
		ChatMaxLen:             512,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.TickRateHz <= 0 {
		return t, fmt.Errorf("tuning.yaml: tick_rate_hz must be positive")
	}
	if t.MapWidth <= 2 || t.MapHeight <= 2 || t.TileSize <= 0 {
		return t, fmt.Errorf("tuning.yaml: map geometry invalid")
	}
	return t, nil
}
