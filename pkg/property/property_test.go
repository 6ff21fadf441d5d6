package property

import (
	"testing"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

func newPlayer() *model.You {
	return &model.You{Properties: model.NewPropertySet()}
}

func TestEquipGrantsNamedRingProperty(t *testing.T) {
	y := newPlayer()
	ring := &model.Object{ID: 1, Class: model.ClassRing, Name: "ring of fire resistance"}

	if err := Equip(y, ring, model.WornRingLeft); err != nil {
		t.Fatalf("Equip() = %v", err)
	}
	if !y.Properties.Has(model.PropFireRes) {
		t.Error("expected fire resistance after equipping the ring")
	}
}

func TestUnequipRevokesOnlySlotSource(t *testing.T) {
	y := newPlayer()
	ring := &model.Object{ID: 1, Class: model.ClassRing, Name: "ring of fire resistance"}
	if err := Equip(y, ring, model.WornRingLeft); err != nil {
		t.Fatalf("Equip() = %v", err)
	}
	y.Properties.Grant(model.PropFireRes, model.SourceIntrinsic)

	if err := Unequip(y, ring, model.WornRingLeft); err != nil {
		t.Fatalf("Unequip() = %v", err)
	}
	if !y.Properties.Has(model.PropFireRes) {
		t.Error("expected intrinsic fire resistance to survive unequipping the ring")
	}
}

func TestEquipRejectsDoubleWear(t *testing.T) {
	y := newPlayer()
	ring := &model.Object{ID: 1, Class: model.ClassRing, Name: "ring of searching"}
	if err := Equip(y, ring, model.WornRingLeft); err != nil {
		t.Fatalf("Equip() = %v", err)
	}
	if err := Equip(y, ring, model.WornRingLeft); err == nil {
		t.Error("expected an error equipping an already-worn slot")
	}
}

func TestUnequipRejectsNotWorn(t *testing.T) {
	y := newPlayer()
	item := &model.Object{ID: 1, Class: model.ClassArmor}
	if err := Unequip(y, item, model.WornArmor); err == nil {
		t.Error("expected an error unequipping a slot that was never worn")
	}
}

func TestItemPropertiesBlessedArmorGrantsProtection(t *testing.T) {
	armor := &model.Object{Class: model.ClassArmor, BUC: model.Blessed}
	props := ItemProperties(armor)
	found := false
	for _, p := range props {
		if p == model.PropProtection {
			found = true
		}
	}
	if !found {
		t.Error("expected blessed armor to grant Protection")
	}
}

func TestEquippedSlotsReportsWornBits(t *testing.T) {
	item := &model.Object{WornMask: model.WornArmor | model.WornCloak}
	slots := EquippedSlots(item)
	if len(slots) != 2 {
		t.Fatalf("EquippedSlots() returned %d slots, want 2", len(slots))
	}
}

func TestFumbleChanceFromCursedWeapon(t *testing.T) {
	weapon := &model.Object{Class: model.ClassWeapon, BUC: model.Cursed, WornMask: model.WornWeapon}
	if FumbleChance([]*model.Object{weapon}) == 0 {
		t.Error("expected a cursed worn weapon to contribute a nonzero fumble chance")
	}
}

func TestArmorPenaltyFromCursedArmor(t *testing.T) {
	armor := &model.Object{Class: model.ClassArmor, BUC: model.Cursed, WornMask: model.WornArmor}
	if ArmorPenalty([]*model.Object{armor}) <= 0 {
		t.Error("expected a cursed worn armor piece to contribute a positive AC penalty")
	}
}

func TestTickCursedEffectsUpdatesArmorClassPenalty(t *testing.T) {
	y := newPlayer()
	armor := &model.Object{Class: model.ClassArmor, BUC: model.Cursed, WornMask: model.WornArmor}
	r := rng.NewIsaac64(1)
	TickCursedEffects(y, []*model.Object{armor}, r)
	if y.ArmorClassPenalty <= 0 {
		t.Error("expected TickCursedEffects to set a positive ArmorClassPenalty")
	}
}

func TestStuckLoadstoneDetection(t *testing.T) {
	stone := &model.Object{Class: model.ClassRock, BUC: model.Cursed, Name: "loadstone"}
	if !StuckLoadstone(stone) {
		t.Error("expected a cursed loadstone to be stuck")
	}
	notCursed := &model.Object{Class: model.ClassRock, BUC: model.Uncursed, Name: "loadstone"}
	if StuckLoadstone(notCursed) {
		t.Error("expected an uncursed loadstone not to be stuck")
	}
}
