package combat

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// NATTK is the maximum number of discrete attacks a single monster
// definition carries, matching the reference's monattk.h constant.
const NATTK = 6

// AttackType is how an attack is delivered.
type AttackType int

const (
	AttackNone AttackType = iota
	AttackClaw
	AttackBite
	AttackKick
	AttackButt
	AttackTouch
	AttackSting
	AttackHug
	AttackSpit
	AttackEngulf
	AttackBreath
	AttackGaze
	AttackWeapon
)

// Attack is a single entry in a monster's attack set: how it is
// delivered, what kind of damage it does, and its damage dice.
type Attack struct {
	Type       AttackType       `json:"type"`
	DamageType model.DamageType `json:"damage_type"`
	DiceNum    uint8            `json:"dice_num"`
	DiceSides  uint8            `json:"dice_sides"`
}

// Active reports whether this attack slot is populated.
func (a Attack) Active() bool { return a.Type != AttackNone }

// AttackSet is the (up to NATTK) attacks a monster can use per turn.
type AttackSet [NATTK]Attack

// DefaultAttackSet builds the attack set a monster of the given level
// falls back on when its definition carries none: a claw, plus a bite
// once the monster is seasoned enough.
func DefaultAttackSet(level int32) AttackSet {
	var s AttackSet
	s[0] = Attack{Type: AttackClaw, DamageType: model.DamagePhysical, DiceNum: 1, DiceSides: 6}
	if level >= 5 {
		s[1] = Attack{Type: AttackBite, DamageType: model.DamagePhysical, DiceNum: 1, DiceSides: 4}
	}
	return s
}

// MMAggression reports whether att would initiate an attack on def:
// tame monsters fight hostiles, hostiles fight tame monsters, and
// nobody picks a fight inside their own camp.
func MMAggression(att, def *model.Monster) bool {
	if att.ID == def.ID || !att.Alive() || !def.Alive() {
		return false
	}
	if att.State.Has(model.StateTame) {
		return def.Hostile()
	}
	if att.Hostile() {
		return def.State.Has(model.StateTame)
	}
	return false
}

// MAttackM resolves att's full attack set against def, one roll per
// active attack, stopping early once def falls. It reports whether any
// attack landed.
func MAttackM(r *rng.Isaac64, att, def *model.Monster, attacks AttackSet) bool {
	hitAny := false
	for _, atk := range attacks {
		if !atk.Active() {
			continue
		}
		in := ToHitInput{HitBonus: att.Level, TargetAC: def.AC}
		_, hit, _ := FindRollToHit(r, in)
		if !hit {
			continue
		}
		dmg := DmgVal(r, DamageInput{DiceNum: atk.DiceNum, DiceSides: atk.DiceSides})
		if def.Resists(atk.DamageType) {
			dmg = ApplyResistance(atk.DamageType, dmg, true)
		}
		def.HP -= dmg
		hitAny = true
		if def.HP <= 0 {
			def.State &^= model.StateAlive
			break
		}
	}
	return hitAny
}
