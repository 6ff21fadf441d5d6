package property

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// curseFumblePercent divided by ten is what each worn cursed weapon or
// pair of cursed gloves adds to the per-turn fumble chance, in the
// Rn2(100) sense. The chance sums across worn cursed items rather than
// rolling per item.
const curseFumblePercent = 100

// FumbleChance sums the fumble chance contributed by every cursed weapon
// or cursed glove in worn, capped at 100.
func FumbleChance(worn []*model.Object) int {
	total := 0
	for _, o := range worn {
		if o.BUC != model.Cursed {
			continue
		}
		if o.WornMask&model.WornWeapon != 0 || o.WornMask&model.WornGloves != 0 {
			total += curseFumblePercent / 10
		}
	}
	if total > 100 {
		total = 100
	}
	return total
}

// ArmorPenalty sums the AC penalty (applied as a positive number, since
// higher AC is worse in this model's convention) contributed by cursed
// worn armor pieces.
func ArmorPenalty(worn []*model.Object) int32 {
	var penalty int32
	for _, o := range worn {
		if o.BUC != model.Cursed {
			continue
		}
		switch o.WornMask & (model.WornArmor | model.WornShield | model.WornHelm | model.WornBoots | model.WornCloak) {
		case 0:
			continue
		default:
			penalty++
		}
	}
	return penalty
}

// TickCursedEffects applies the per-turn consequences of currently worn
// cursed items — a fumble roll and an accumulated armor class penalty —
// and returns any player-facing messages. Called once per turn from
// pkg/engine's timer phase alongside PropertySet.TickTimeouts.
func TickCursedEffects(y *model.You, worn []*model.Object, r *rng.Isaac64) []string {
	var messages []string

	if chance := FumbleChance(worn); chance > 0 && int(r.Rn2(100)) < chance {
		messages = append(messages, "Your hands fumble!")
	}

	y.ArmorClassPenalty = ArmorPenalty(worn)

	return messages
}

// StuckLoadstone reports whether item cannot be dropped because it is a
// cursed loadstone, the reference's can_drop_item check simplified to the
// one case this model tracks explicitly: a cursed rock-class item named
// "loadstone" sticks to its owner.
func StuckLoadstone(o *model.Object) bool {
	return o.Class == model.ClassRock && o.BUC == model.Cursed && o.Name == "loadstone"
}
