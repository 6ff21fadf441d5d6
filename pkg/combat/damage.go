package combat

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// DamageInput bundles dmgval's additive terms: base dice,
// enchantment, a flat damage bonus (strength plus any artifact
// damage_bonus), weapon skill's damage bonus, a BUC-derived bonus, and
// whether the blow lands with silver against a silver-hating target.
type DamageInput struct {
	DiceNum, DiceSides uint8
	Enchantment        int32
	DamageBonus        int32
	SkillDamageBonus   int32
	BUC                model.BUC
	SilverVsHater      bool
}

// BUCDamageBonus returns the small flat bonus a weapon's BUC status
// contributes: blessed weapons hit true, cursed ones flinch.
func BUCDamageBonus(buc model.BUC) int32 {
	switch buc {
	case model.Blessed:
		return 1
	case model.Cursed:
		return -1
	default:
		return 0
	}
}

// DmgVal rolls in's dice and sums every bonus term, applying silver
// damage (1d6 extra against silver-hating monsters) last.
// The result is never less than 1 on a hit.
func DmgVal(r *rng.Isaac64, in DamageInput) int32 {
	dmg := int32(r.Dice(uint32(in.DiceNum), uint32(in.DiceSides)))
	dmg += in.Enchantment
	dmg += in.DamageBonus
	dmg += in.SkillDamageBonus
	dmg += BUCDamageBonus(in.BUC)
	if in.SilverVsHater {
		dmg += int32(r.Dice(1, 6))
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// ApplyResistance applies a resisted defender's mitigation to dmg for
// damage type dt: categorical types (sleep, petrification) are
// nullified, numeric types are halved and floored. The result never
// exceeds the input.
func ApplyResistance(dt model.DamageType, dmg int32, resisted bool) int32 {
	if !resisted {
		return dmg
	}
	if dt.Categorical() {
		return 0
	}
	return dmg / 2
}
