package property

import (
	"fmt"

	"github.com/ninehex/nhsim/pkg/combat"
	"github.com/ninehex/nhsim/pkg/model"
)

// namedEffects maps a handful of well-known ring/amulet/boots/cloak names
// to the intrinsic they grant while worn. Object.Name carries the
// identified item name; an unidentified or unrecognized name grants
// nothing beyond whatever ItemProperties derives from class/BUC/
// enchantment alone.
var namedEffects = map[string]model.Property{
	"ring of fire resistance":     model.PropFireRes,
	"ring of cold resistance":     model.PropColdRes,
	"ring of shock resistance":    model.PropShockRes,
	"ring of poison resistance":   model.PropPoisonRes,
	"ring of free action":         model.PropFreeAction,
	"ring of invisibility":        model.PropInvisible,
	"ring of see invisible":       model.PropSeeInvisible,
	"ring of teleportation":       model.PropTeleport,
	"ring of teleport control":    model.PropTeleportControl,
	"ring of levitation":          model.PropLevitation,
	"ring of searching":           model.PropSearching,
	"ring of regeneration":        model.PropRegeneration,
	"ring of conflict":            model.PropConflict,
	"ring of aggravate monster":   model.PropAggravateMonster,
	"ring of polymorph control":   model.PropPolymorphControl,
	"amulet of reflection":        model.PropReflection,
	"amulet of magical breathing": model.PropMagicalBreathing,
	"amulet of esp":               model.PropTelepathy,
	"amulet of life saving":       model.PropLifesaving,
	"amulet of unchanging":        model.PropUnchanging,
	"boots of water walking":      model.PropWaterWalking,
	"boots of jumping":            model.PropJumping,
	"boots of speed":              model.PropSpeed,
	"cloak of displacement":       model.PropDisplacedImage,
	"cloak of invisibility":       model.PropInvisible,
	"gauntlets of dexterity":      model.PropFreeAction,
}

// ItemProperties returns the properties o grants while worn, combining
// its identified name (rings, amulets, boots, cloaks), its artifact
// effect table entry if it is an artifact, and class/BUC/enchantment-
// derived effects that apply regardless of name: blessed armor grants
// Protection, and an amulet with positive enchantment does too.
func ItemProperties(o *model.Object) []model.Property {
	var props []model.Property
	if p, ok := namedEffects[o.Name]; ok {
		props = append(props, p)
	}
	if o.Artifact != 0 {
		if eff, ok := combat.ArtifactEffectsFor(o.Artifact); ok {
			props = append(props, eff.Properties...)
		}
	}
	if o.BUC == model.Blessed && o.Class == model.ClassArmor {
		props = append(props, model.PropProtection)
	}
	if o.Class == model.ClassAmulet && o.Enchantment > 0 {
		props = append(props, model.PropProtection)
	}
	return props
}

// Equip marks item as worn in slot and grants every property it confers,
// sourced from the slot so Unequip can later revoke exactly those bits
// without disturbing properties held intrinsically or by other
// equipment.
func Equip(y *model.You, item *model.Object, slot uint32) error {
	if item.WornMask&slot != 0 {
		return fmt.Errorf("property: item %d already worn in slot %#x", item.ID, slot)
	}
	source := model.SlotSourceFor(slot)
	if source == 0 {
		return fmt.Errorf("property: slot %#x is not a recognized worn slot", slot)
	}
	item.WornMask |= slot
	if y.Properties == nil {
		y.Properties = model.NewPropertySet()
	}
	for _, p := range ItemProperties(item) {
		y.Properties.Grant(p, source)
	}
	return nil
}

// Unequip clears item's slot bit and revokes every property it was
// granting from that slot's source, leaving intrinsic and other
// equipment-sourced grants of the same property untouched.
func Unequip(y *model.You, item *model.Object, slot uint32) error {
	if item.WornMask&slot == 0 {
		return fmt.Errorf("property: item %d is not worn in slot %#x", item.ID, slot)
	}
	source := model.SlotSourceFor(slot)
	if source == 0 {
		return fmt.Errorf("property: slot %#x is not a recognized worn slot", slot)
	}
	item.WornMask &^= slot
	if y.Properties == nil {
		return nil
	}
	for _, p := range ItemProperties(item) {
		y.Properties.Revoke(p, source)
	}
	return nil
}

// EquippedSlots returns every worn-slot bit currently set on item.
func EquippedSlots(item *model.Object) []uint32 {
	all := []uint32{
		model.WornWeapon, model.WornShield, model.WornArmor, model.WornHelm,
		model.WornGloves, model.WornBoots, model.WornCloak, model.WornShirt,
		model.WornAmulet, model.WornRingLeft, model.WornRingRight, model.WornBlindfold,
	}
	var out []uint32
	for _, bit := range all {
		if item.WornMask&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}
