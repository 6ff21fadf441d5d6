package world

import "github.com/ninehex/nhsim/pkg/model"

// Mover is anything whose terrain access can differ from the ordinary
// walkable set — *model.Monster and *model.You both implement it via
// their CanOccupy methods, so path and LOS queries work for either
// without this package depending on combat/AI specifics.
type Mover interface {
	CanOccupy(c model.Cell) bool
}

// Walkable reports whether mover could stand on pos, accounting for map
// bounds and mover's special movement properties. It does not consider
// whether another creature currently occupies pos; callers that care
// about collisions should also check Level.MonsterAt.
func Walkable(lvl *model.Level, mover Mover, pos model.Position) bool {
	if !pos.Valid() {
		return false
	}
	return mover.CanOccupy(*lvl.At(pos))
}

// Passable reports whether mover can both stand on pos and is not
// blocked by another creature already there — the check a movement
// action (as opposed to an attack) must pass.
func Passable(lvl *model.Level, mover Mover, pos model.Position, self model.MonsterID) bool {
	if !Walkable(lvl, mover, pos) {
		return false
	}
	if m := lvl.MonsterAt(pos); m != nil && m.ID != self {
		return false
	}
	return true
}

// Neighbors returns every map-valid position adjacent to pos, in
// AllDirections order.
func Neighbors(pos model.Position) []model.Position {
	out := make([]model.Position, 0, 8)
	for _, d := range model.AllDirections {
		n := pos.Apply(d)
		if n.Valid() {
			out = append(out, n)
		}
	}
	return out
}

// WalkableNeighbors returns the subset of Neighbors(pos) that mover could
// enter, ignoring creature occupancy.
func WalkableNeighbors(lvl *model.Level, mover Mover, pos model.Position) []model.Position {
	all := Neighbors(pos)
	out := all[:0:0]
	for _, n := range all {
		if Walkable(lvl, mover, n) {
			out = append(out, n)
		}
	}
	return out
}
