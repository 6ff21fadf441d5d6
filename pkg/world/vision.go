package world

import "github.com/ninehex/nhsim/pkg/model"

// opaque reports whether terrain at pos blocks line of sight. Closed
// doors and walls block; a lit room interior, corridor, or open door
// does not.
func opaque(c model.Cell) bool {
	switch c.Type {
	case model.CellWall, model.CellSecretDoor, model.CellIronBars, model.CellTree:
		return true
	case model.CellDoor:
		return c.Flags&(model.CellFlagOpen|model.CellFlagBroken) == 0
	default:
		return false
	}
}

// Visible reports whether to is visible from from on lvl, tracing a
// Bresenham line between them and failing as soon as an intervening
// cell (not counting the endpoints) is opaque.
func Visible(lvl *model.Level, from, to model.Position) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	for _, p := range bresenham(from, to) {
		if p.Equal(from) || p.Equal(to) {
			continue
		}
		if opaque(*lvl.At(p)) {
			return false
		}
	}
	return true
}

// VisibleSet returns every in-radius, in-bounds position visible from
// origin, using a Chebyshev radius cutoff matching the metric movement
// uses.
func VisibleSet(lvl *model.Level, origin model.Position, radius int) map[model.Position]bool {
	out := map[model.Position]bool{origin: true}
	if !origin.Valid() {
		return out
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := model.NewPosition(int(origin.X)+dx, int(origin.Y)+dy)
			if !p.Valid() {
				continue
			}
			if origin.ChebyshevDistance(p) > radius {
				continue
			}
			if Visible(lvl, origin, p) {
				out[p] = true
			}
		}
	}
	return out
}

// bresenham returns every integer point on the line from a to b,
// inclusive of both endpoints, using the standard octant-symmetric
// integer algorithm.
func bresenham(a, b model.Position) []model.Position {
	x0, y0 := int(a.X), int(a.Y)
	x1, y1 := int(b.X), int(b.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var points []model.Position
	x, y := x0, y0
	for {
		points = append(points, model.NewPosition(x, y))
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
