package world

// Map is the static collision grid. Immutable after construction; edge tiles
// are always blocked.
type Map struct {
	Width    int
	Height   int
	TileSize float64

	blocked []bool // row-major, true = blocked
}

// NewDungeonMap builds an all-walls grid with one central room and a door gap
// in the middle of each room wall, so the interior is always reachable and
// spawn search terminates.
func NewDungeonMap(width, height int, tileSize float64) *Map {
	m := &Map{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		blocked:  make([]bool, width*height),
	}
	for i := range m.blocked {
		m.blocked[i] = true
	}

	roomX := width / 4
	roomY := height / 4
	roomW := width / 2
	roomH := height / 2
	for y := roomY; y < roomY+roomH; y++ {
		for x := roomX; x < roomX+roomW; x++ {
			m.carve(x, y)
		}
	}

	// Door gaps at the midpoint of each room wall.
	m.carve(roomX+roomW/2, roomY-1)
	m.carve(roomX+roomW/2, roomY+roomH)
	m.carve(roomX-1, roomY+roomH/2)
	m.carve(roomX+roomW, roomY+roomH/2)

	// Edges stay blocked regardless of carving.
	for x := 0; x < width; x++ {
		m.blocked[x] = true
		m.blocked[(height-1)*width+x] = true
	}
	for y := 0; y < height; y++ {
		m.blocked[y*width] = true
		m.blocked[y*width+width-1] = true
	}
	return m
}

func (m *Map) carve(tx, ty int) {
	if tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return
	}
	m.blocked[ty*m.Width+tx] = false
}

// Blocked reports whether the tile is out of bounds or a wall.
func (m *Map) Blocked(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return true
	}
	return m.blocked[ty*m.Width+tx]
}

// IsWalkable resolves a continuous position to its tile by floor division and
// checks the collision grid.
func (m *Map) IsWalkable(pos Vec2) bool {
	if pos.X < 0 || pos.Y < 0 {
		return false
	}
	tx := int(pos.X / m.TileSize)
	ty := int(pos.Y / m.TileSize)
	return !m.Blocked(tx, ty)
}

// RandomSpawn samples uniformly random tile centers until one is walkable.
// Terminates almost surely: an all-blocked map is a fatal configuration error
// checked at construction by the caller, not here.
func (m *Map) RandomSpawn(rng Rand) Vec2 {
	for {
		tx := int(rng.Float64() * float64(m.Width))
		ty := int(rng.Float64() * float64(m.Height))
		if m.Blocked(tx, ty) {
			continue
		}
		return Vec2{
			X: (float64(tx) + 0.5) * m.TileSize,
			Y: (float64(ty) + 0.5) * m.TileSize,
		}
	}
}

// HasWalkable reports whether at least one tile is walkable.
func (m *Map) HasWalkable() bool {
	for _, b := range m.blocked {
		if !b {
			return true
		}
	}
	return false
}
