package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

func TestFindRollToHitTerms(t *testing.T) {
	r := rng.NewIsaac64(42)
	in := ToHitInput{HitBonus: 5, WeaponSkillBonus: 2, TargetAC: 3}
	total, hit, margin := FindRollToHit(r, in)
	assert.Equal(t, total-ToHitThreshold, margin)
	assert.Equal(t, total >= ToHitThreshold, hit)
	// roll is 1d20, so total = roll + 5 + 2 - 3 stays within [5, 24]
	assert.GreaterOrEqual(t, total, int32(5))
	assert.LessOrEqual(t, total, int32(24))
}

func TestSkillBonusesMonotonic(t *testing.T) {
	ladder := []model.SkillLevel{
		model.SkillRestricted, model.SkillUnskilled, model.SkillBasic,
		model.SkillSkilled, model.SkillExpert, model.SkillMaster,
		model.SkillGrandMaster,
	}
	for i := 1; i < len(ladder); i++ {
		assert.GreaterOrEqual(t, ladder[i].DamageBonus(), ladder[i-1].DamageBonus(),
			"damage bonus decreased from %v to %v", ladder[i-1], ladder[i])
		assert.GreaterOrEqual(t, ladder[i].ToHitBonus(), ladder[i-1].ToHitBonus(),
			"to-hit bonus decreased from %v to %v", ladder[i-1], ladder[i])
		assert.GreaterOrEqual(t, ladder[i].CritChance(), ladder[i-1].CritChance(),
			"crit chance decreased from %v to %v", ladder[i-1], ladder[i])
	}
}

func TestDmgValMinimumOne(t *testing.T) {
	r := rng.NewIsaac64(7)
	for i := 0; i < 200; i++ {
		dmg := DmgVal(r, DamageInput{DiceNum: 1, DiceSides: 2, Enchantment: -10, BUC: model.Cursed})
		assert.GreaterOrEqual(t, dmg, int32(1))
	}
}

func TestApplyResistanceNeverRaises(t *testing.T) {
	types := []model.DamageType{
		model.DamagePhysical, model.DamageFire, model.DamageCold,
		model.DamageElectric, model.DamageAcid, model.DamagePoison,
		model.DamageSleep, model.DamageDrain, model.DamageStone,
		model.DamageDisintegrate, model.DamageMagic,
	}
	for _, dt := range types {
		for _, dmg := range []int32{0, 1, 7, 100} {
			reduced := ApplyResistance(dt, dmg, true)
			assert.LessOrEqual(t, reduced, dmg, "resisting %v raised damage", dt)
			assert.Equal(t, dmg, ApplyResistance(dt, dmg, false))
		}
	}
}

func TestApplyResistanceCategoricalNullifies(t *testing.T) {
	assert.Equal(t, int32(0), ApplyResistance(model.DamageSleep, 50, true))
	assert.Equal(t, int32(0), ApplyResistance(model.DamageStone, 50, true))
	assert.Equal(t, int32(25), ApplyResistance(model.DamageFire, 50, true))
}

func TestErodeObjCapsAndSaves(t *testing.T) {
	r := rng.NewIsaac64(3)

	iron := &model.Object{Material: model.MaterialIron}
	for i := 0; i < 50; i++ {
		ErodeObj(r, iron)
	}
	assert.Equal(t, uint8(MaxErosion), iron.Erosion)

	glass := &model.Object{Material: model.MaterialOther}
	assert.False(t, ErodeObj(r, glass))
	assert.Equal(t, uint8(0), glass.Erosion)
}

func TestErodeObjBlessedSaveRoll(t *testing.T) {
	r := rng.NewIsaac64(11)
	saved, eroded := 0, 0
	for i := 0; i < 500; i++ {
		o := &model.Object{Material: model.MaterialIron, BUC: model.Blessed}
		if ErodeObj(r, o) {
			eroded++
		} else {
			saved++
		}
	}
	// the save is a coin flip, so both outcomes must occur
	assert.Greater(t, saved, 0)
	assert.Greater(t, eroded, 0)
}

func TestCriticalTierMultipliers(t *testing.T) {
	assert.Equal(t, 0.5, CritGraze.Multiplier())
	assert.Equal(t, 1.5, CritCritical.Multiplier())
	assert.Equal(t, 2.0, CritDevastating.Multiplier())
	assert.Equal(t, 1.0, CritNone.Multiplier())
}

func TestApplyArtifactAttackStacksAndResists(t *testing.T) {
	eff, ok := ArtifactEffectsFor(2) // Stormbringer
	require.True(t, ok)
	require.Equal(t, ArtifactAttackDrain, eff.Attack)

	r := rng.NewIsaac64(5)
	total, msg := ApplyArtifactAttack(r, eff, 10, false)
	assert.Greater(t, total, int32(10))
	assert.Equal(t, eff.AttackMessage, msg)

	resisted, _ := ApplyArtifactAttack(rng.NewIsaac64(5), eff, 10, true)
	assert.Equal(t, int32(10)+(total-10)/2, resisted)

	plain, ok := ArtifactEffectsFor(1) // Excalibur has no special attack
	require.True(t, ok)
	total, msg = ApplyArtifactAttack(r, plain, 10, false)
	assert.Equal(t, int32(10), total)
	assert.Empty(t, msg)
}

func TestMMAggressionCamps(t *testing.T) {
	tame := &model.Monster{ID: 1, HP: 5, HPMax: 5, State: model.StateAlive | model.StateTame | model.StatePeaceful}
	hostile := &model.Monster{ID: 2, HP: 5, HPMax: 5, State: model.StateAlive}
	peaceful := &model.Monster{ID: 3, HP: 5, HPMax: 5, State: model.StateAlive | model.StatePeaceful}

	assert.True(t, MMAggression(tame, hostile))
	assert.True(t, MMAggression(hostile, tame))
	assert.False(t, MMAggression(hostile, peaceful))
	assert.False(t, MMAggression(peaceful, hostile))
	assert.False(t, MMAggression(tame, tame))
}

func TestMAttackMKillsEventually(t *testing.T) {
	r := rng.NewIsaac64(9)
	att := &model.Monster{ID: 1, HP: 20, HPMax: 20, Level: 10, State: model.StateAlive}
	def := &model.Monster{ID: 2, HP: 3, HPMax: 3, AC: 10, State: model.StateAlive}

	for i := 0; i < 100 && def.Alive(); i++ {
		MAttackM(r, att, def, DefaultAttackSet(att.Level))
	}
	assert.False(t, def.Alive())
}
