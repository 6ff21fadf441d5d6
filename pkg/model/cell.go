package model

// CellType is a closed sum of terrain variants. Wall variants carry
// orientation via Cell.Horizontal rather than separate enum members, so
// that corridor carving (pkg/carving) can flip orientation without
// reallocating the terrain type.
type CellType uint8

const (
	CellStone CellType = iota
	CellRoom
	CellCorridor
	CellSecretDoor
	CellSecretCorridor
	CellWall
	CellDoor
	CellStaircaseUp
	CellStaircaseDown
	CellLadderUp
	CellLadderDown
	CellPool
	CellMoat
	CellWater
	CellLava
	CellIce
	CellAltar
	CellGrave
	CellThrone
	CellSink
	CellFountain
	CellTree
	CellCloud
	CellAir
	CellIronBars
	CellDrawbridgeUp
	CellDrawbridgeDown
)

// walkableTerrain marks terrain that ordinary movement can enter without
// a special ability (PassesWalls, Flying, Swimming, etc.); the special
// cases are layered on in pkg/world, which also consults Cell.Flags
// (e.g. a locked door).
var walkableTerrain = map[CellType]bool{
	CellRoom:           true,
	CellCorridor:       true,
	CellDoor:           true,
	CellStaircaseUp:    true,
	CellStaircaseDown:  true,
	CellLadderUp:       true,
	CellLadderDown:     true,
	CellIce:            true,
	CellAltar:          true,
	CellGrave:          true,
	CellThrone:         true,
	CellSink:           true,
	CellFountain:       true,
	CellDrawbridgeDown: true,
	CellAir:            true,
	CellCloud:          true,
}

// Walkable reports whether this terrain type is ordinarily walkable.
func (c CellType) Walkable() bool {
	return walkableTerrain[c]
}

// Cell flag bits, stored in Cell.Flags.
const (
	CellFlagLocked uint8 = 1 << iota
	CellFlagTrapped
	CellFlagBroken
	CellFlagOpen
)

// Cell is one tile of a Level's dense terrain grid.
type Cell struct {
	Type       CellType `json:"type"`
	Lit        bool     `json:"lit"`
	Explored   bool     `json:"explored"`
	Horizontal bool     `json:"horizontal"`
	Flags      uint8    `json:"flags"`
}

// Walkable reports whether this specific cell can be entered by ordinary
// movement, accounting for door lock state.
func (c Cell) Walkable() bool {
	if c.Type == CellDoor && c.Flags&CellFlagLocked != 0 {
		return false
	}
	return c.Type.Walkable()
}

// Locked reports whether this cell is a locked door.
func (c Cell) Locked() bool {
	return c.Flags&CellFlagLocked != 0
}
