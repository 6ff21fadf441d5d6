package combat

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// ArtifactProperty is one trait an artifact grants its wielder/wearer,
// applied through model.PropertySet the same way pkg/property applies
// ordinary equipment properties.
type ArtifactProperty = model.Property

// ArtifactAttackType is the special attack, if any, an artifact adds on a
// successful hit, stacking a damage_multiplier and message on top of the
// weapon's ordinary damage.
type ArtifactAttackType int

const (
	ArtifactAttackNone ArtifactAttackType = iota
	ArtifactAttackDrain
	ArtifactAttackCold
	ArtifactAttackFire
	ArtifactAttackElectric
	ArtifactAttackDisintegrate
)

// DamageType returns the model.DamageType an ArtifactAttackType deals,
// used to route the bonus damage through ApplyResistance like any other
// elemental hit.
func (t ArtifactAttackType) DamageType() model.DamageType {
	switch t {
	case ArtifactAttackDrain:
		return model.DamageDrain
	case ArtifactAttackCold:
		return model.DamageCold
	case ArtifactAttackFire:
		return model.DamageFire
	case ArtifactAttackElectric:
		return model.DamageElectric
	case ArtifactAttackDisintegrate:
		return model.DamageDisintegrate
	default:
		return model.DamagePhysical
	}
}

// ArtifactAbility is a non-attack special power an artifact grants on
// invocation.
type ArtifactAbility int

const (
	ArtifactAbilityNone ArtifactAbility = iota
	ArtifactAbilityInvoke
	ArtifactAbilitySearch
	ArtifactAbilityWarn
	ArtifactAbilityEnlightenment
)

// ArtifactEffects is the complete per-artifact effect table entry: the
// properties it grants while wielded/worn, its special attack (if any)
// with a damage multiplier and message, an invocable ability, and flat
// combat bonuses.
type ArtifactEffects struct {
	Name             string
	Properties       []ArtifactProperty
	Attack           ArtifactAttackType
	AttackMultiplier float64
	AttackMessage    string
	Ability          ArtifactAbility
	DamageBonus      int32
	ACBonus          int32
	LuckBonus        int8
}

// artifactTable is a representative closed set of named artifacts, not
// the reference engine's full roster.
var artifactTable = map[uint8]ArtifactEffects{
	1: { // Excalibur
		Name:        "Excalibur",
		Properties:  []ArtifactProperty{model.PropWarning},
		DamageBonus: 5,
		LuckBonus:   2,
	},
	2: { // Stormbringer
		Name:             "Stormbringer",
		Properties:       []ArtifactProperty{model.PropDrainRes, model.PropFreeAction},
		Attack:           ArtifactAttackDrain,
		AttackMultiplier: 1.5,
		AttackMessage:    "drinks the lifeblood of its victim",
		DamageBonus:      4,
	},
	3: { // Frost Brand
		Name:             "Frost Brand",
		Properties:       []ArtifactProperty{model.PropColdRes},
		Attack:           ArtifactAttackCold,
		AttackMultiplier: 1.0,
		AttackMessage:    "sheathes itself in frost",
		DamageBonus:      2,
	},
	4: { // Fire Brand
		Name:             "Fire Brand",
		Properties:       []ArtifactProperty{model.PropFireRes},
		Attack:           ArtifactAttackFire,
		AttackMultiplier: 1.0,
		AttackMessage:    "sheathes itself in flame",
		DamageBonus:      2,
	},
	5: { // Mjollnir
		Name:             "Mjollnir",
		Properties:       []ArtifactProperty{model.PropShockRes},
		Attack:           ArtifactAttackElectric,
		AttackMultiplier: 1.5,
		AttackMessage:    "crackles with lightning",
		DamageBonus:      3,
	},
	6: { // Sunsword
		Name:        "Sunsword",
		Properties:  []ArtifactProperty{model.PropWarning},
		DamageBonus: 3,
		ACBonus:     1,
	},
	7: { // The Orb of Detection
		Name:       "The Orb of Detection",
		Properties: []ArtifactProperty{model.PropDetectMonsters},
		Ability:    ArtifactAbilityEnlightenment,
	},
	8: { // Demonbane
		Name:             "Demonbane",
		Properties:       []ArtifactProperty{model.PropProtection},
		Attack:           ArtifactAttackDisintegrate,
		AttackMultiplier: 2.0,
		AttackMessage:    "unravels the fabric of its foe",
		DamageBonus:      4,
	},
}

// ArtifactEffectsFor returns the named effect table entry for artifact ID
// id (Object.Artifact), and whether one exists.
func ArtifactEffectsFor(id uint8) (ArtifactEffects, bool) {
	e, ok := artifactTable[id]
	return e, ok
}

// ApplyArtifactAttack adds an artifact's special-attack bonus damage to
// base, given the target's resistance to the artifact's damage type, and
// returns the total damage plus the message to show (empty only if the
// artifact has no special attack; it is returned even when the defender
// resists).
func ApplyArtifactAttack(r *rng.Isaac64, eff ArtifactEffects, base int32, targetResists bool) (int32, string) {
	if eff.Attack == ArtifactAttackNone {
		return base, ""
	}
	bonus := int32(float64(r.Dice(2, 6)) * eff.AttackMultiplier)
	bonus = ApplyResistance(eff.Attack.DamageType(), bonus, targetResists)
	return base + bonus, eff.AttackMessage
}
