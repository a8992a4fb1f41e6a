package world

import (
	"math"

	"dungeonforge.gg/internal/protocol"
)

func (w *World) meleeRange() float64 {
	return w.cfg.MeleeRangeTiles * w.cfg.TileSize
}

func distance(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// attack resolves a melee attack. Out-of-range or unknown targets are silent
// no-ops (rejected-silently tier): no state change, no error event.
func (w *World) attack(attacker *Player, targetID string) {
	target := w.players[targetID]
	if target == nil || target.ID == attacker.ID {
		return
	}
	if distance(attacker.Pos, target.Pos) > w.meleeRange() {
		return
	}

	base := float64(attacker.Stats.Strength)
	if wpn := attacker.mainHandWeapon(); wpn != nil {
		base += float64(wpn.Stats.Damage)
	}
	spread := float64(w.cfg.DamageVariancePermille) / 1000
	variance := (w.rng.Float64()*2 - 1) * spread * base
	damage := int(math.Floor(base + variance))
	if damage < 0 {
		damage = 0
	}

	target.Health -= damage
	if target.Health < 0 {
		target.Health = 0
	}

	w.broadcast(protocol.CombatUpdateMsg{
		Type:         protocol.TypeCombatUpdate,
		AttackerID:   attacker.ID,
		TargetID:     target.ID,
		Damage:       damage,
		TargetHealth: target.Health,
	})
	if w.combatLog != nil {
		_ = w.combatLog.WriteCombat(CombatLogEntry{
			Tick:         w.tick.Load(),
			AttackerID:   attacker.ID,
			TargetID:     target.ID,
			Damage:       damage,
			TargetHealth: target.Health,
			Killed:       target.Health == 0,
		})
	}

	if target.Health == 0 {
		w.handleDeath(attacker, target)
	}
}

// handleDeath respawns the victim with full health at a fresh valid position.
// Each inventory item rolls an independent drop chance; equipped items are
// kept. The killer is awarded exp scaled by the victim's level.
func (w *World) handleDeath(killer, victim *Player) {
	deathPos := victim.Pos

	dropped := make([]*protocol.Item, 0)
	for i, it := range victim.Inventory {
		if it == nil {
			continue
		}
		if w.rng.Float64() < float64(w.cfg.DeathDropPermille)/1000 {
			dropped = append(dropped, itemView(it))
			victim.Inventory[i] = nil
		}
	}

	victim.Health = victim.MaxHealth
	victim.Pos = w.gameMap.RandomSpawn(w.rng)

	w.broadcast(protocol.PlayerDiedMsg{
		Type:        protocol.TypePlayerDied,
		PlayerID:    victim.ID,
		NewPosition: protocol.Position{X: victim.Pos.X, Y: victim.Pos.Y},
	})
	w.broadcast(protocol.ItemsDroppedMsg{
		Type:     protocol.TypeItemsDropped,
		PlayerID: victim.ID,
		Position: protocol.Position{X: deathPos.X, Y: deathPos.Y},
		Items:    dropped,
	})
	if len(dropped) > 0 {
		w.send(victim.ID, w.inventoryUpdated(victim))
	}

	if killer != nil && killer.ID != victim.ID {
		w.awardExp(killer, victim.Level*100)
	}
}

func (w *World) awardExp(p *Player, amount int) {
	p.Exp += amount
	for p.Exp >= p.MaxExp {
		p.Exp -= p.MaxExp
		p.Level++
		p.MaxExp = p.MaxExp * 3 / 2
	}
	w.send(p.ID, w.statsUpdated(p))
}
