package action

import (
	"github.com/ninehex/nhsim/pkg/combat"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/world"
)

// doMove runs the movement algorithm: reject if the player
// cannot act, dispatch to combat if a monster occupies the target cell,
// otherwise validate terrain/doors and move.
func doMove(gs *model.GameState, dir model.Direction) Result {
	you := &gs.Player
	if !you.CanMove() {
		return Failed("you can't move right now")
	}

	target := you.Pos.Apply(dir)
	if !target.Valid() {
		return Failed("you can't go that way")
	}

	lvl := gs.Current()

	if mon := lvl.MonsterAt(target); mon != nil {
		return attackMonster(gs, mon)
	}

	if err := checkDoorTraversal(lvl, you.Pos, target, dir); err != nil {
		return Failed(err.Error())
	}

	cell := lvl.At(target)
	if cell.Type == model.CellDoor && cell.Flags&model.CellFlagLocked != 0 {
		return Failed("the door is locked")
	}
	if cell.Type == model.CellDoor && cell.Flags&model.CellFlagOpen == 0 {
		if err := world.OpenDoor(lvl, target); err != nil {
			return Failed(err.Error())
		}
		return Success()
	}

	if !you.CanOccupy(*cell) {
		return Failed("you can't go that way")
	}

	you.PrevPos = you.Pos
	you.Pos = target

	applyTerrainEffects(gs, cell)
	if trap := lvl.TrapAt(target); trap != nil && !trap.Seen {
		trap.Seen = true
		gs.Log("you trigger a trap!")
	}
	autoPickupGold(gs, lvl, target)

	return Success()
}

// checkDoorTraversal forbids any diagonal step into or out of a door or
// secret door cell, whatever the door's open, closed, locked or broken
// state.
func checkDoorTraversal(lvl *model.Level, from, to model.Position, dir model.Direction) error {
	if !dir.Diagonal() {
		return nil
	}
	target := lvl.At(to)
	if target.Type == model.CellDoor || target.Type == model.CellSecretDoor {
		return errDiagonalDoor
	}
	source := lvl.At(from)
	if source.Type == model.CellDoor || source.Type == model.CellSecretDoor {
		return errDiagonalDoor
	}
	return nil
}

var errDiagonalDoor = diagonalDoorError{}

type diagonalDoorError struct{}

func (diagonalDoorError) Error() string { return "you can't move diagonally through a doorway" }

// applyTerrainEffects handles water submersion, lava damage, and ice slip.
func applyTerrainEffects(gs *model.GameState, cell *model.Cell) {
	you := &gs.Player
	switch cell.Type {
	case model.CellLava:
		if you.Properties == nil || !you.Properties.Has(model.PropFireRes) {
			dmg := int32(gs.RNG.Dice(2, 6))
			you.HP -= dmg
			gs.Log("the lava burns you!")
		}
	case model.CellPool, model.CellMoat, model.CellWater:
		if you.Properties != nil && !you.Properties.Has(model.PropSwimming) && !you.Properties.Has(model.PropAmphibious) && !you.Properties.Has(model.PropWaterWalking) && !you.Properties.Has(model.PropFlying) {
			gs.Log("you are submerged in water.")
			for _, o := range gs.Inventory {
				if o.WornMask&model.WornWeapon != 0 && combat.ErodeObj(gs.RNG, o) {
					gs.Log("your " + o.Name + " rusts.")
				}
			}
		}
	case model.CellIce:
		if gs.RNG.Rn2(5) == 0 {
			gs.Log("you slip on the ice!")
		}
	}
}

// autoPickupGold picks up a gold pile on landing, the one auto-pickup
// rule this model applies unconditionally; every other class requires an
// explicit Pickup command.
func autoPickupGold(gs *model.GameState, lvl *model.Level, pos model.Position) {
	for _, o := range lvl.ObjectsAt(pos) {
		if o.Class != model.ClassCoin {
			continue
		}
		gs.Player.Gold += int64(o.Quantity)
		lvl.RemoveObject(o.ID)
		gs.Log("you find some gold.")
		return
	}
}

// attackMonster resolves a player-initiated melee attack against mon,
// consuming the turn whether or not the blow lands.
func attackMonster(gs *model.GameState, mon *model.Monster) Result {
	you := &gs.Player
	skill := you.Skills["melee"]
	var skillLevel model.SkillLevel
	if skill != nil {
		skillLevel = skill.Level
	}

	weapon := wieldedWeapon(gs)
	var enchantment int32
	var artifact combat.ArtifactEffects
	var isArtifact bool
	if weapon != nil {
		enchantment = int32(weapon.Enchantment)
		artifact, isArtifact = combat.ArtifactEffectsFor(weapon.Artifact)
	}

	in := combat.ToHitInput{
		HitBonus:          int32(you.ExpLevel),
		WeaponSkillBonus:  skillLevel.ToHitBonus(),
		WeaponEnchantment: enchantment,
		AttributeModifier: int32((you.Attribute(model.AttrDex) - 10) / 2),
		TargetAC:          mon.AC,
	}
	_, hit, margin := combat.FindRollToHit(gs.RNG, in)
	if !hit {
		gs.Log("you miss.")
		return Success()
	}

	din := combat.DamageInput{
		DiceNum:          1,
		DiceSides:        6,
		Enchantment:      enchantment,
		SkillDamageBonus: skillLevel.DamageBonus(),
		SilverVsHater:    weapon != nil && weapon.Material == model.MaterialSilver && mon.HatesSilver,
	}
	if weapon != nil {
		din.BUC = weapon.BUC
	}
	if isArtifact {
		din.DamageBonus += artifact.DamageBonus
	}
	dmg := combat.DmgVal(gs.RNG, din)
	tier := combat.RollCritical(gs.RNG, skillLevel.CritChance(), margin)
	dmg = int32(float64(dmg) * tier.Multiplier())
	if isArtifact {
		var msg string
		dmg, msg = combat.ApplyArtifactAttack(gs.RNG, artifact, dmg, mon.Resists(artifact.Attack.DamageType()))
		if msg != "" {
			gs.Log("your " + artifact.Name + " " + msg + "!")
		}
	}
	if mon.Resists(model.DamagePhysical) {
		dmg = combat.ApplyResistance(model.DamagePhysical, dmg, true)
	}

	mon.HP -= dmg
	if mon.HP <= 0 {
		mon.State &^= model.StateAlive
		gs.Log("you kill it!")
	} else {
		gs.Log("you hit it.")
	}
	return Success()
}

// wieldedWeapon returns the inventory item in the weapon slot, nil when
// fighting bare-handed.
func wieldedWeapon(gs *model.GameState) *model.Object {
	for _, o := range gs.Inventory {
		if o.WornMask&model.WornWeapon != 0 {
			return o
		}
	}
	return nil
}
