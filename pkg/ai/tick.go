package ai

import (
	"github.com/ninehex/nhsim/pkg/combat"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/world"
)

// sightRange is how far a monster can notice the player, following the
// reference's fixed default line-of-sight radius rather than a
// per-monster vision stat.
const sightRange = 12

// Tick runs one monster's full turn: morale update, retreat check, target
// selection, and move-or-attack dispatch.
func Tick(gs *model.GameState, mon *model.Monster) {
	if !mon.Alive() || mon.State.Has(model.StateSleeping) {
		return
	}

	mon.Morale = MoraleTracker{}.Calculate(mon.Personality, mon.HP, mon.HPMax, nil)

	target, hasTarget := SelectTarget(mon, gs, sightRange)

	reason := ShouldRetreat(mon, mon.Morale, 1, boolToInt(hasTarget), 1)
	if reason != RetreatNone && hasTarget {
		fleeTo, ok := retreatTarget(gs.Current(), mon, target.Pos)
		if ok {
			mon.Pos = fleeTo
		}
		return
	}

	if other := adjacentMMTarget(gs, mon); other != nil {
		if combat.MAttackM(gs.RNG, mon, other, combat.DefaultAttackSet(mon.Level)) && !other.Alive() {
			gs.Log(other.Name + " is killed!")
		}
		return
	}

	if mon.Peaceful() || !hasTarget {
		wander(gs, mon)
		return
	}

	if mon.Pos.Adjacent(target.Pos) {
		attackPlayer(gs, mon, target)
		return
	}

	next, moved := NextStep(gs.Current(), mon, target.Pos)
	if moved {
		mon.Pos = next
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// adjacentMMTarget returns the first adjacent monster mon would attack,
// scanning the level's stable monster order.
func adjacentMMTarget(gs *model.GameState, mon *model.Monster) *model.Monster {
	for _, other := range gs.Current().Monsters {
		if !mon.Pos.Adjacent(other.Pos) {
			continue
		}
		if combat.MMAggression(mon, other) {
			return other
		}
	}
	return nil
}

// wander moves mon one random step among its walkable neighbors, the
// reference's default idle behavior for monsters with no active target.
// A same-camp monster in the way is displaced (positions swapped) rather
// than blocking.
func wander(gs *model.GameState, mon *model.Monster) {
	lvl := gs.Current()
	dirs := model.AllDirections
	start := gs.RNG.Rn2(uint32(len(dirs)))
	for i := uint32(0); i < uint32(len(dirs)); i++ {
		d := dirs[(start+i)%uint32(len(dirs))]
		next := mon.Pos.Apply(d)
		if !next.Valid() || !world.Walkable(lvl, mon, next) {
			continue
		}
		if other := lvl.MonsterAt(next); other != nil && other.ID != mon.ID {
			if canDisplace(mon, other) {
				mon.Pos, other.Pos = other.Pos, mon.Pos
				return
			}
			continue
		}
		mon.Pos = next
		return
	}
}

// canDisplace applies the monster-monster displacement tie-break: a
// higher-level monster may swap places with a same-camp neighbor, never
// with an enemy or a shopkeeper minding its shop.
func canDisplace(mon, other *model.Monster) bool {
	if combat.MMAggression(mon, other) || other.IsShopkeeper {
		return false
	}
	sameCamp := mon.Hostile() == other.Hostile()
	return sameCamp && mon.Level > other.Level
}

// attackPlayer resolves a monster-initiated melee attack against the
// player, mirroring pkg/action's attackMonster but from the monster's
// side of the to-hit formula.
func attackPlayer(gs *model.GameState, mon *model.Monster, you *model.You) {
	in := combat.ToHitInput{
		HitBonus: mon.Level,
		TargetAC: armorClass(you),
	}
	_, hit, margin := combat.FindRollToHit(gs.RNG, in)
	if !hit {
		gs.Log(mon.Name + " misses you.")
		return
	}

	dmg := combat.DmgVal(gs.RNG, combat.DamageInput{DiceNum: 1, DiceSides: 6})
	tier := combat.RollCritical(gs.RNG, 0, margin)
	dmg = int32(float64(dmg) * tier.Multiplier())

	you.HP -= dmg
	gs.Log(mon.Name + " hits you!")
	if you.HP <= 0 {
		gs.Flags.Dead = true
		gs.Flags.DeathReason = "killed by " + mon.Name
		gs.Log("you die...")
	}
}

// armorClass returns the player's effective AC, folding in the cursed-
// armor penalty tracked separately from individual item state.
func armorClass(you *model.You) int32 {
	base := int32(10)
	return base - you.ArmorClassPenalty
}
