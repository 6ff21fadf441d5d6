package ai

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/world"
)

// personalityTargetWeight scores a candidate target for mon, higher is
// more attractive. Weights follow the monster's personality.
func personalityTargetWeight(mon *model.Monster, target *model.You, dist int) float64 {
	hpFraction := 1.0
	if target.HPMax > 0 {
		hpFraction = float64(target.HP) / float64(target.HPMax)
	}
	weight := 100.0 - float64(dist)*5

	switch mon.Personality {
	case model.PersonalityAggressive:
		weight += 20
	case model.PersonalityTactical:
		// prefers weaker-looking targets
		weight += (1 - hpFraction) * 30
	case model.PersonalityCoward:
		weight -= 20
	case model.PersonalityBerserker:
		weight += 40
	case model.PersonalityCautious:
		if hpFraction < 0.5 {
			weight += 15
		}
	case model.PersonalityDefensive:
		// stays put unless cornered
		weight -= 10
	}
	if weight < 0 {
		weight = 0
	}
	return weight
}

// SelectTarget picks the player as mon's target when within sight range,
// matching the single-player case: every AI decision
// currently resolves to "attack or avoid the player" since no
// multi-monster-faction targeting is modeled.
func SelectTarget(mon *model.Monster, gs *model.GameState, sightRange int) (*model.You, bool) {
	you := &gs.Player
	if you.HP <= 0 {
		return nil, false
	}
	dist := mon.Pos.ChebyshevDistance(you.Pos)
	if dist > sightRange {
		return nil, false
	}
	if mon.Peaceful() {
		return nil, false
	}
	weight := personalityTargetWeight(mon, you, dist)
	return you, weight > 0
}

// stepToward returns the direction from one position one king-move closer
// to another, following the reference's greedy-then-pathed movement
// style: diagonal first when both axes need closing.
func stepToward(from, to model.Position) model.Direction {
	dx := int(to.X) - int(from.X)
	dy := int(to.Y) - int(from.Y)
	switch {
	case dx == 0 && dy < 0:
		return model.DirN
	case dx > 0 && dy < 0:
		return model.DirNE
	case dx > 0 && dy == 0:
		return model.DirE
	case dx > 0 && dy > 0:
		return model.DirSE
	case dx == 0 && dy > 0:
		return model.DirS
	case dx < 0 && dy > 0:
		return model.DirSW
	case dx < 0 && dy == 0:
		return model.DirW
	case dx < 0 && dy < 0:
		return model.DirNW
	default:
		return model.DirNone
	}
}

// NextStep computes mon's next move toward goal, using direct stepping
// when adjacent-ish and a full A* path when the straight line
// is blocked, following the reference's cheap-first escalation.
func NextStep(lvl *model.Level, mon *model.Monster, goal model.Position) (model.Position, bool) {
	if mon.Pos.Equal(goal) {
		return mon.Pos, false
	}
	dir := stepToward(mon.Pos, goal)
	straight := mon.Pos.Apply(dir)
	if straight.Valid() && world.Passable(lvl, mon, straight, mon.ID) {
		return straight, true
	}

	path := world.FindPath(lvl, mon, mon.Pos, goal)
	if len(path) < 2 {
		return mon.Pos, false
	}
	next := path[1]
	if !world.Passable(lvl, mon, next, mon.ID) {
		return mon.Pos, false
	}
	return next, true
}

// retreatTarget picks a position to flee to: directly away from the
// threat, falling back to any walkable neighbor that increases distance.
func retreatTarget(lvl *model.Level, mon *model.Monster, threat model.Position) (model.Position, bool) {
	dx := int(mon.Pos.X) - int(threat.X)
	dy := int(mon.Pos.Y) - int(threat.Y)
	clamp := func(v int) int {
		if v > 0 {
			return 1
		}
		if v < 0 {
			return -1
		}
		return 0
	}
	away := model.NewPosition(int(mon.Pos.X)+clamp(dx), int(mon.Pos.Y)+clamp(dy))
	if away.Valid() && world.Passable(lvl, mon, away, mon.ID) {
		return away, true
	}

	bestDist := mon.Pos.ChebyshevDistance(threat)
	best := mon.Pos
	found := false
	for _, n := range world.WalkableNeighbors(lvl, mon, mon.Pos) {
		if d := n.ChebyshevDistance(threat); d > bestDist {
			bestDist = d
			best = n
			found = true
		}
	}
	return best, found
}
