package world

import "dungeonforge.gg/internal/protocol"

// applyMove validates the candidate position against the collision grid.
// Rejected moves are silent: no event, no state change; the next snapshot
// corrects any client-side prediction drift.
func (w *World) applyMove(p *Player, dx, dy float64) {
	cand := Vec2{X: p.Pos.X + dx, Y: p.Pos.Y + dy}
	if !w.gameMap.IsWalkable(cand) {
		return
	}
	p.Pos = cand

	pos := protocol.Position{X: p.Pos.X, Y: p.Pos.Y}
	w.send(p.ID, protocol.PlayerMovedMsg{
		Type:     protocol.TypePlayerMoved,
		PlayerID: p.ID,
		Position: pos,
	})
	w.broadcastExcept(p.ID, protocol.PlayerMovedMsg{
		Type:     protocol.TypeOtherPlayerMoved,
		PlayerID: p.ID,
		Position: pos,
	})
}
