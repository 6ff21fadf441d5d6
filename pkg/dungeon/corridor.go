package dungeon

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// connectivity tracks room equivalence classes (smeq[] in the reference)
// so corridor generation can test and merge connectivity without a full
// graph structure.
type connectivity struct {
	class []int
}

func newConnectivity(n int) *connectivity {
	c := &connectivity{class: make([]int, n)}
	for i := range c.class {
		c.class[i] = i
	}
	return c
}

func (c *connectivity) connected(a, b int) bool {
	if a < 0 || b < 0 || a >= len(c.class) || b >= len(c.class) {
		return false
	}
	return c.class[a] == c.class[b]
}

func (c *connectivity) merge(a, b int) {
	if a < 0 || b < 0 || a >= len(c.class) || b >= len(c.class) {
		return
	}
	oldClass, newClass := c.class[b], c.class[a]
	for i, v := range c.class {
		if v == oldClass {
			c.class[i] = newClass
		}
	}
}

func (c *connectivity) allConnected() bool {
	if len(c.class) == 0 {
		return true
	}
	first := c.class[0]
	for _, v := range c.class {
		if v != first {
			return false
		}
	}
	return true
}

// doorPosition picks a point on room's wall facing target, matching the
// reference's find_door_position: the wall chosen depends on whether the
// target room is predominantly horizontal or vertical from room.
func doorPosition(room, target model.Room, r *rng.Isaac64) model.Position {
	rc, tc := room.Center(), target.Center()
	dx := int(tc.X) - int(rc.X)
	dy := int(tc.Y) - int(rc.Y)
	if abs(dx) > abs(dy) {
		y := room.Y1 + int8(r.Rn2(uint32(room.Height())))
		if dx > 0 {
			return model.Position{X: room.X2 + 1, Y: y}
		}
		return model.Position{X: room.X1 - 1, Y: y}
	}
	x := room.X1 + int8(r.Rn2(uint32(room.Width())))
	if dy > 0 {
		return model.Position{X: x, Y: room.Y2 + 1}
	}
	return model.Position{X: x, Y: room.Y1 - 1}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// digCorridor carves a path from start to end via a biased random walk:
// the larger axis delta is favored each step, with occasional perpendicular
// jogs, matching the reference's dig_corridor.
func digCorridor(lvl *model.Level, start, end model.Position, r *rng.Isaac64, allowSecret bool) {
	x, y := int(start.X), int(start.Y)
	tx, ty := int(end.X), int(end.Y)

	if start.Valid() && lvl.At(start).Type == model.CellStone {
		lvl.At(start).Type = model.CellCorridor
	}

	const maxSteps = 500
	for steps := 0; (x != tx || y != ty) && steps < maxSteps; steps++ {
		dx, dy := tx-x, ty-y

		var mx, my int
		switch {
		case abs(dx) > abs(dy):
			if r.Rn2(uint32(abs(dx)+1)) > 0 {
				mx = sign(dx)
			} else if dy != 0 {
				my = sign(dy)
			} else {
				mx = sign(dx)
			}
		case abs(dy) > abs(dx):
			if r.Rn2(uint32(abs(dy)+1)) > 0 {
				my = sign(dy)
			} else if dx != 0 {
				mx = sign(dx)
			} else {
				my = sign(dy)
			}
		default:
			if r.Rn2(2) == 0 {
				mx = sign(dx)
			} else {
				my = sign(dy)
			}
		}

		x += mx
		y += my
		if x < 0 || y < 0 || x >= model.MapWidth || y >= model.MapHeight {
			break
		}

		p := model.NewPosition(x, y)
		cell := lvl.At(p)
		switch cell.Type {
		case model.CellStone:
			if allowSecret && r.Rn2(100) == 0 {
				cell.Type = model.CellSecretCorridor
			} else {
				cell.Type = model.CellCorridor
			}
		case model.CellRoom, model.CellCorridor, model.CellSecretCorridor:
			// already passable
		case model.CellWall:
			cell.Type = model.CellCorridor
		default:
			return
		}
	}
}

func joinRooms(lvl *model.Level, rooms []model.Room, a, b int, track *connectivity, r *rng.Isaac64, allowSecret bool) {
	if a < 0 || b < 0 || a >= len(rooms) || b >= len(rooms) || a == b {
		return
	}
	from := doorPosition(rooms[a], rooms[b], r)
	to := doorPosition(rooms[b], rooms[a], r)
	digCorridor(lvl, from, to, r, allowSecret)
	track.merge(a, b)
}

// GenerateCorridors connects every room in rooms via the reference's
// four-phase algorithm: adjacent pairs, two-apart pairs, a connectivity
// sweep guaranteeing every room is reachable, and a handful of extra
// random corridors for topology variety.
func GenerateCorridors(lvl *model.Level, rooms []model.Room, r *rng.Isaac64) {
	if len(rooms) < 2 {
		return
	}
	track := newConnectivity(len(rooms))

	for i := 0; i < len(rooms)-1; i++ {
		joinRooms(lvl, rooms, i, i+1, track, r, false)
		if r.Rn2(50) == 0 {
			break
		}
	}

	for i := 0; i <= len(rooms)-3; i++ {
		if !track.connected(i, i+2) {
			joinRooms(lvl, rooms, i, i+2, track, r, false)
		}
	}

	const maxIterations = 100
	for iter := 0; !track.allConnected() && iter < maxIterations; iter++ {
		made := false
		for a := 0; a < len(rooms) && !made; a++ {
			for b := 0; b < len(rooms); b++ {
				if !track.connected(a, b) {
					joinRooms(lvl, rooms, a, b, track, r, false)
					made = true
					break
				}
			}
		}
		if !made {
			break
		}
	}

	if len(rooms) > 2 {
		extra := int(r.Rn2(uint32(len(rooms)))) + 4
		if extra > 10 {
			extra = 10
		}
		for i := 0; i < extra; i++ {
			a := int(r.Rn2(uint32(len(rooms))))
			b := int(r.Rn2(uint32(len(rooms) - 2)))
			if b >= a {
				b += 2
			}
			if b < len(rooms) {
				joinRooms(lvl, rooms, a, b, track, r, true)
			}
		}
	}
}
