package combat

import "github.com/ninehex/nhsim/pkg/rng"

// ToHitInput bundles every additive term of find_roll_to_hit:
// 1d20 + hit_bonus + weapon_skill + weapon_enchantment +
// attribute_modifier + ring_of_increase_accuracy − target_AC −
// size_modifier − status_penalties.
type ToHitInput struct {
	HitBonus          int32
	WeaponSkillBonus  int32
	WeaponEnchantment int32
	AttributeModifier int32
	RingAccuracyBonus int32
	TargetAC          int32
	SizeModifier      int32
	StatusPenalty     int32
}

// ToHitThreshold is the total find_roll_to_hit must reach or exceed for
// the attack to connect.
const ToHitThreshold = 10

// FindRollToHit rolls 1d20 and sums in's terms, returning the total and
// whether the attack hits. margin is total-ToHitThreshold, used by
// RollCritical to scale critical-hit odds; it can be negative on a miss.
func FindRollToHit(r *rng.Isaac64, in ToHitInput) (total int32, hit bool, margin int32) {
	roll := int32(r.Dice(1, 20))
	total = roll + in.HitBonus + in.WeaponSkillBonus + in.WeaponEnchantment +
		in.AttributeModifier + in.RingAccuracyBonus -
		in.TargetAC - in.SizeModifier - in.StatusPenalty
	hit = total >= ToHitThreshold
	margin = total - ToHitThreshold
	return total, hit, margin
}

// CriticalTier is the discrete set of extra-damage tiers a hit can land
// in, each carrying a fixed damage multiplier.
type CriticalTier int

const (
	CritNone CriticalTier = iota
	CritGraze
	CritCritical
	CritDevastating
	CritInstantKill
)

// Multiplier returns the damage multiplier for tier. CritInstantKill has
// no finite multiplier: callers must special-case it as a kill rather
// than scaling damage.
func (t CriticalTier) Multiplier() float64 {
	switch t {
	case CritGraze:
		return 0.5
	case CritCritical:
		return 1.5
	case CritDevastating:
		return 2.0
	default:
		return 1.0
	}
}

// critRollCeiling is the out-of-1000 roll space RollCritical draws from,
// chosen so SkillLevel.CritChance()'s 0.05..0.20 range maps onto whole
// numbers of this ceiling.
const critRollCeiling = 1000

// grazeCeiling is the out-of-1000 chance of a Graze tier on a hit that
// barely cleared the threshold (margin 0), tapering to zero by margin 5.
const grazeCeiling = 200

// RollCritical decides a hit's critical tier from its to-hit margin and
// the attacker's weapon skill. A barely-landed hit
// can still graze for half damage; a comfortably-landed hit rolls against
// the skill's flat critical chance, with a high margin upgrading
// Critical to Devastating.
func RollCritical(r *rng.Isaac64, critChance float64, margin int32) CriticalTier {
	if margin <= 5 {
		grazeChance := grazeCeiling * (5 - margin) / 5
		if grazeChance > 0 && int32(r.Rn2(critRollCeiling)) < grazeChance {
			return CritGraze
		}
	}
	threshold := int32(critChance * critRollCeiling)
	if threshold > 0 && int32(r.Rn2(critRollCeiling)) < threshold {
		if margin >= 15 {
			return CritDevastating
		}
		return CritCritical
	}
	return CritNone
}
