package carving

import (
	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// GenerateWalls surrounds every room/corridor/door floor tile with wall
// cells, converting any still-unvisited stone neighbor into a wall.
// Orientation (Horizontal) is derived from which side of the floor tile
// the wall sits on, matching the reference's left/right vs top/bottom
// wall glyph selection.
func GenerateWalls(lvl *model.Level) {
	for x := 0; x < model.MapWidth; x++ {
		for y := 0; y < model.MapHeight; y++ {
			p := model.Position{X: int8(x), Y: int8(y)}
			if !isFloorLike(lvl.At(p).Type) {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if dx == 0 && dy == 0 {
						continue
					}
					np := model.NewPosition(x+dx, y+dy)
					if !np.Valid() {
						continue
					}
					cell := lvl.At(np)
					if cell.Type != model.CellStone {
						continue
					}
					cell.Type = model.CellWall
					cell.Horizontal = dx != 0 && dy == 0
				}
			}
		}
	}
}

func isFloorLike(t model.CellType) bool {
	switch t {
	case model.CellRoom, model.CellCorridor, model.CellSecretCorridor, model.CellDoor:
		return true
	default:
		return false
	}
}

// PlaceDoors converts every corridor cell lying on a room's perimeter
// ring into a door, rolling its lock/secret status per cfg. A corridor
// cell appears there where pkg/dungeon's doorPosition chose to punch
// through that room's wall, and also where a corridor runs along the
// ring, in which case the whole run becomes a row of doors.
func PlaceDoors(lvl *model.Level, cfg dungeon.Config, r *rng.Isaac64) {
	for i := range lvl.Rooms {
		room := lvl.Rooms[i]
		for _, p := range perimeter(room) {
			if !p.Valid() {
				continue
			}
			cell := lvl.At(p)
			if cell.Type != model.CellCorridor {
				continue
			}
			cell.Type = model.CellDoor
			cell.Horizontal = p.X == room.X1-1 || p.X == room.X2+1

			var flags uint8
			switch {
			case r.Rn2(uint32(cfg.SecretDoorChance)) == 0:
				cell.Type = model.CellSecretDoor
			case r.Rn2(uint32(cfg.LockedDoorChance)) == 0:
				flags |= model.CellFlagLocked
			}
			cell.Flags = flags
			lvl.Rooms[i].Doors = append(lvl.Rooms[i].Doors, p)
		}
	}
}

// perimeter returns the ring of cells one step outside room's four sides
// (not including corners), the candidate positions a corridor's door
// could have punched through.
func perimeter(room model.Room) []model.Position {
	var out []model.Position
	for x := room.X1; x <= room.X2; x++ {
		out = append(out, model.Position{X: x, Y: room.Y1 - 1})
		out = append(out, model.Position{X: x, Y: room.Y2 + 1})
	}
	for y := room.Y1; y <= room.Y2; y++ {
		out = append(out, model.Position{X: room.X1 - 1, Y: y})
		out = append(out, model.Position{X: room.X2 + 1, Y: y})
	}
	return out
}

// Carve runs the complete post-generation pass on lvl: wall generation
// followed by door placement.
func Carve(lvl *model.Level, cfg dungeon.Config, r *rng.Isaac64) {
	GenerateWalls(lvl)
	PlaceDoors(lvl, cfg, r)
}
