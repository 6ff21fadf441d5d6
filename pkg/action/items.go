package action

import (
	"fmt"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/property"
)

// findItem locates the inventory item carrying letter, returning its
// index alongside it so callers can splice it out of gs.Inventory.
func findItem(gs *model.GameState, letter rune) (*model.Object, int) {
	for i, o := range gs.Inventory {
		if o.InvLetter == letter {
			return o, i
		}
	}
	return nil, -1
}

func removeInventoryAt(gs *model.GameState, i int) *model.Object {
	o := gs.Inventory[i]
	gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
	return o
}

// doPickup transfers every floor object under the player to inventory,
// subject to carrying capacity.
func doPickup(gs *model.GameState) Result {
	you := &gs.Player
	lvl := gs.Current()
	items := lvl.ObjectsAt(you.Pos)
	if len(items) == 0 {
		return NoTime()
	}
	carried := carriedWeight(gs)
	capacity := you.CarryingCapacity()
	picked := 0
	for _, o := range items {
		if o.Class == model.ClassCoin {
			continue // gold auto-picks up on arrival, not via Pickup
		}
		if carried+o.TotalWeight() > capacity {
			gs.Log(fmt.Sprintf("%s is too heavy to pick up.", o.Name))
			continue
		}
		lvl.RemoveObject(o.ID)
		gs.Inventory = append(gs.Inventory, o)
		carried += o.TotalWeight()
		picked++
	}
	if picked == 0 {
		return NoTime()
	}
	return Success()
}

func carriedWeight(gs *model.GameState) uint32 {
	var total uint32
	for _, o := range gs.Inventory {
		total += o.TotalWeight()
	}
	return total
}

// doDrop implements Drop: the named item leaves inventory and lands on
// the player's current cell, unless it is a cursed item stuck to its
// owner.
func doDrop(gs *model.GameState, letter rune) Result {
	o, idx := findItem(gs, letter)
	if o == nil {
		return Failed("you don't have that item")
	}
	if property.StuckLoadstone(o) {
		return Failed("it is stuck to your hand")
	}
	removeInventoryAt(gs, idx)
	o.InvLetter = 0
	o.SetFloorPos(gs.Player.Pos)
	gs.Current().Objects = append(gs.Current().Objects, o)
	return Success()
}

// doEat implements Eat: the named Food item is consumed, restoring
// nutrition and shrinking or removing its stack.
func doEat(gs *model.GameState, letter rune) Result {
	o, idx := findItem(gs, letter)
	if o == nil || o.Class != model.ClassFood {
		return Failed("you don't have that food")
	}
	gs.Player.Nutrition += 800
	consumeOne(gs, o, idx)
	gs.Log("that tasted fine.")
	return Success()
}

// doQuaff implements Quaff: the named Potion is drunk and discarded. Its
// concrete effect table is out of this pipeline's scope; a generic
// BUC-scaled HP nudge stands in for the reference's large
// per-potion-type dispatch.
func doQuaff(gs *model.GameState, letter rune) Result {
	o, idx := findItem(gs, letter)
	if o == nil || o.Class != model.ClassPotion {
		return Failed("you don't have that potion")
	}
	switch o.BUC {
	case model.Blessed:
		gs.Player.HP += int32(gs.RNG.Dice(2, 4))
	case model.Cursed:
		gs.Player.HP -= int32(gs.RNG.Dice(1, 4))
	default:
		gs.Player.HP += int32(gs.RNG.Dice(1, 4))
	}
	if gs.Player.HP > gs.Player.HPMax {
		gs.Player.HP = gs.Player.HPMax
	}
	consumeOne(gs, o, idx)
	gs.Log("you feel a little better.")
	return Success()
}

// doRead implements Read: Scroll or Spellbook. Spellbooks are a no-op
// placeholder (spell learning is not modeled); scrolls are consumed.
func doRead(gs *model.GameState, letter rune) Result {
	o, idx := findItem(gs, letter)
	if o == nil || (o.Class != model.ClassScroll && o.Class != model.ClassSpellbook) {
		return Failed("you don't have that to read")
	}
	if o.Class == model.ClassScroll {
		if o.Name == "scroll of magic mapping" {
			if found := FindIt(gs); found > 0 {
				gs.Log("the hidden reaches of the level reveal themselves!")
			}
		}
		consumeOne(gs, o, idx)
	}
	gs.Log("you read it.")
	return Success()
}

// doZap implements Zap: a Wand is aimed in dir; its charges are left
// unchanged. Individual wand effects are dispatched elsewhere; at
// this layer the pipeline only validates the item and records the
// attempt.
func doZap(gs *model.GameState, letter rune, dir model.Direction) Result {
	o, _ := findItem(gs, letter)
	if o == nil || o.Class != model.ClassWand {
		return Failed("you don't have that wand")
	}
	if dir == model.DirNone {
		return NoTime()
	}
	gs.Log("you zap the wand.")
	return Success()
}

// doApply implements Apply: a generic tool-use dispatch; specific tool
// effects live outside this pipeline.
func doApply(gs *model.GameState, letter rune) Result {
	o, _ := findItem(gs, letter)
	if o == nil || o.Class != model.ClassTool {
		return Failed("you don't have that tool")
	}
	gs.Log("you apply it.")
	return Success()
}

// doWield implements Wield: a Weapon (or nothing, unwielding) moves into
// the weapon slot.
func doWield(gs *model.GameState, letter rune) Result {
	if letter == 0 {
		unequipSlot(gs, model.WornWeapon)
		return Success()
	}
	o, _ := findItem(gs, letter)
	if o == nil || o.Class != model.ClassWeapon {
		return Failed("you can't wield that")
	}
	unequipSlot(gs, model.WornWeapon)
	if err := property.Equip(&gs.Player, o, model.WornWeapon); err != nil {
		return Failed(err.Error())
	}
	return Success()
}

// doWear implements Wear: an Armor item moves into the armor slot.
func doWear(gs *model.GameState, letter rune) Result {
	o, _ := findItem(gs, letter)
	if o == nil || o.Class != model.ClassArmor {
		return Failed("you can't wear that")
	}
	if err := property.Equip(&gs.Player, o, model.WornArmor); err != nil {
		return Failed(err.Error())
	}
	return Success()
}

// doTakeOff implements TakeOff: the worn armor item is removed.
func doTakeOff(gs *model.GameState, letter rune) Result {
	o, _ := findItem(gs, letter)
	if o == nil || o.WornMask&model.WornArmor == 0 {
		return Failed("you aren't wearing that")
	}
	if err := property.Unequip(&gs.Player, o, model.WornArmor); err != nil {
		return Failed(err.Error())
	}
	return Success()
}

// doPutOn implements PutOn: a Ring goes into whichever hand slot is free,
// an Amulet into the amulet slot.
func doPutOn(gs *model.GameState, letter rune) Result {
	o, _ := findItem(gs, letter)
	if o == nil || (o.Class != model.ClassRing && o.Class != model.ClassAmulet) {
		return Failed("you can't put that on")
	}
	var slot uint32
	switch {
	case o.Class == model.ClassAmulet:
		slot = model.WornAmulet
	case !slotWorn(gs, model.WornRingLeft):
		slot = model.WornRingLeft
	case !slotWorn(gs, model.WornRingRight):
		slot = model.WornRingRight
	default:
		return Failed("you are already wearing two rings")
	}
	if err := property.Equip(&gs.Player, o, slot); err != nil {
		return Failed(err.Error())
	}
	return Success()
}

// doRemove implements Remove: the named ring or amulet is taken off
// whichever slot it occupies.
func doRemove(gs *model.GameState, letter rune) Result {
	o, _ := findItem(gs, letter)
	if o == nil {
		return Failed("you aren't wearing that")
	}
	for _, slot := range property.EquippedSlots(o) {
		if slot == model.WornRingLeft || slot == model.WornRingRight || slot == model.WornAmulet {
			if err := property.Unequip(&gs.Player, o, slot); err != nil {
				return Failed(err.Error())
			}
			return Success()
		}
	}
	return Failed("you aren't wearing that")
}

func unequipSlot(gs *model.GameState, slot uint32) {
	for _, o := range gs.Inventory {
		if o.WornMask&slot != 0 {
			_ = property.Unequip(&gs.Player, o, slot)
		}
	}
}

func slotWorn(gs *model.GameState, slot uint32) bool {
	for _, o := range gs.Inventory {
		if o.WornMask&slot != 0 {
			return true
		}
	}
	return false
}

// consumeOne decrements o's quantity, removing it from inventory entirely
// once it reaches zero.
func consumeOne(gs *model.GameState, o *model.Object, idx int) {
	o.Quantity--
	if o.Quantity <= 0 {
		removeInventoryAt(gs, idx)
	}
}

// doGoUp and doGoDown implement the staircase commands: the player must
// be standing on the matching staircase cell, and moves to the adjacent
// ledger level within the same dungeon branch.
func doGoUp(gs *model.GameState) Result {
	return useStaircase(gs, model.CellStaircaseUp, -1)
}

func doGoDown(gs *model.GameState) Result {
	return useStaircase(gs, model.CellStaircaseDown, 1)
}

func useStaircase(gs *model.GameState, want model.CellType, delta int) Result {
	lvl := gs.Current()
	if lvl.At(gs.Player.Pos).Type != want {
		return Failed("you see no staircase here")
	}
	next := gs.CurrentLevel
	next.Level += delta
	if next.Level < 0 {
		return Failed("you can't go up from here")
	}
	gs.CurrentLevel = next
	dest := gs.Current()
	var landing model.Position
	if delta > 0 && len(dest.UpStairs) > 0 {
		landing = dest.UpStairs[0]
	} else if delta < 0 && len(dest.DownStairs) > 0 {
		landing = dest.DownStairs[0]
	}
	gs.Player.PrevPos = gs.Player.Pos
	gs.Player.Pos = landing
	return Success()
}

// doPray implements Pray: a simplified outcome based on god anger and
// luck, following the reference's rough shape (a low-anger, positive-luck
// prayer tends to help; a high-anger one tends to punish) without
// reproducing its full trouble-type dispatch.
func doPray(gs *model.GameState) Result {
	you := &gs.Player
	if you.PrayerTimeout > 0 {
		return Failed("you feel that praying would not be timely")
	}
	you.PrayerTimeout = 1000
	roll := gs.RNG.Rnl(20, int32(you.Luck))
	if int32(roll) >= you.GodAnger {
		you.HP = you.HPMax
		you.Nutrition += 800
		gs.Log("a voice booms out, 'Mortal, I see you are in need of help.'")
	} else {
		you.GodAnger++
		gs.Log("your prayer goes unanswered.")
	}
	return Success()
}

// doRest implements Rest: a no-op action that still consumes a turn,
// letting timers and monster AI advance.
func doRest(gs *model.GameState) Result {
	return Success()
}
