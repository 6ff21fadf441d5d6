package model

import (
	"encoding/json"
	"fmt"
)

// ObjectID uniquely identifies an Object within its holder (a Level's
// floor/container tree or an inventory). New IDs are one above the
// highest ID currently present, so the ID of a removed object can be
// handed out again.
type ObjectID uint32

// ObjectClass is the closed set of object categories.
type ObjectClass uint8

const (
	ClassWeapon ObjectClass = iota
	ClassArmor
	ClassRing
	ClassAmulet
	ClassTool
	ClassFood
	ClassPotion
	ClassScroll
	ClassSpellbook
	ClassWand
	ClassCoin
	ClassGem
	ClassRock
	ClassBall
	ClassChain
	ClassVenom
	ClassRandom
	ClassIllObj
)

// BUC is the Blessed/Uncursed/Cursed status of an object.
type BUC int8

const (
	Cursed BUC = iota - 1
	Uncursed
	Blessed
)

// Material is the closed set of substances erosion and silver damage
// care about: each erodible material pairs with exactly one ErosionType
// in pkg/combat, and silver never erodes but wounds silver-hating
// monsters.
type Material uint8

const (
	MaterialOther Material = iota
	MaterialIron
	MaterialWood
	MaterialMetal
	MaterialOrganic
	MaterialSilver
)

// Worn-slot bits for Object.WornMask.
const (
	WornWeapon uint32 = 1 << iota
	WornShield
	WornArmor
	WornHelm
	WornGloves
	WornBoots
	WornCloak
	WornShirt
	WornAmulet
	WornRingLeft
	WornRingRight
	WornBlindfold
)

// Object is a single item: a weapon, a potion, a pile of gold, or a
// container holding further Objects.
type Object struct {
	ID           ObjectID    `json:"id"`
	ObjectType   int16       `json:"object_type"`
	Class        ObjectClass `json:"class"`
	Quantity     int32       `json:"quantity"`
	Enchantment  int8        `json:"enchantment"`
	BUC          BUC         `json:"buc"`
	BUCKnown     bool        `json:"buc_known"`
	Known        bool        `json:"known"`
	Weight       uint32      `json:"weight"`
	InvLetter    rune        `json:"inv_letter"`
	WornMask     uint32      `json:"worn_mask"`
	Artifact     uint8       `json:"artifact"`
	Recharged    uint8       `json:"recharged"`
	Locked       bool        `json:"locked"`
	Broken       bool        `json:"broken"`
	Trapped      bool        `json:"trapped"`
	Erosion      uint8       `json:"erosion"`
	Material     Material    `json:"material"`
	Greased      bool        `json:"greased"`
	IsBagOfHold  bool        `json:"is_bag_of_holding"`
	IsBagOfTrick bool        `json:"is_bag_of_tricks"`
	Name         string      `json:"name,omitempty"`
	Contents     []*Object   `json:"contents,omitempty"`

	// containerFlag marks non-bag containers (sacks, boxes, chests) as
	// able to hold contents without a dedicated bool per object type.
	containerFlag bool

	// floorPos is this object's position when it lies on a Level's floor;
	// meaningless while the object is held in an inventory or container.
	floorPos Position
}

// FloorPos returns o's floor position (valid only while o is on the
// ground rather than carried or contained).
func (o *Object) FloorPos() Position { return o.floorPos }

// SetFloorPos places o at p on a Level's floor.
func (o *Object) SetFloorPos(p Position) { o.floorPos = p }

// objectJSON mirrors Object's exported fields plus the unexported
// floorPos, so save/load round-trips a floor object's position.
type objectJSON struct {
	ID           ObjectID    `json:"id"`
	ObjectType   int16       `json:"object_type"`
	Class        ObjectClass `json:"class"`
	Quantity     int32       `json:"quantity"`
	Enchantment  int8        `json:"enchantment"`
	BUC          BUC         `json:"buc"`
	BUCKnown     bool        `json:"buc_known"`
	Known        bool        `json:"known"`
	Weight       uint32      `json:"weight"`
	InvLetter    rune        `json:"inv_letter"`
	WornMask     uint32      `json:"worn_mask"`
	Artifact     uint8       `json:"artifact"`
	Recharged    uint8       `json:"recharged"`
	Locked       bool        `json:"locked"`
	Broken       bool        `json:"broken"`
	Trapped      bool        `json:"trapped"`
	Erosion      uint8       `json:"erosion"`
	Material     Material    `json:"material"`
	Greased      bool        `json:"greased"`
	IsBagOfHold  bool        `json:"is_bag_of_holding"`
	IsBagOfTrick bool        `json:"is_bag_of_tricks"`
	Name         string      `json:"name,omitempty"`
	Contents     []*Object   `json:"contents,omitempty"`
	IsContainer  bool        `json:"is_container,omitempty"`
	FloorPos     *Position   `json:"floor_pos,omitempty"`
}

// MarshalJSON encodes o, including floorPos when set and the container
// flag, both otherwise unreachable from outside the package.
func (o *Object) MarshalJSON() ([]byte, error) {
	aux := objectJSON{
		ID:           o.ID, ObjectType: o.ObjectType, Class: o.Class, Quantity: o.Quantity,
		Enchantment:  o.Enchantment, BUC: o.BUC, BUCKnown: o.BUCKnown, Known: o.Known,
		Weight:       o.Weight, InvLetter: o.InvLetter, WornMask: o.WornMask,
		Artifact:     o.Artifact, Recharged: o.Recharged, Locked: o.Locked,
		Broken:       o.Broken, Trapped: o.Trapped, Erosion: o.Erosion,
		Material:     o.Material, Greased: o.Greased, IsBagOfHold: o.IsBagOfHold,
		IsBagOfTrick: o.IsBagOfTrick, Name: o.Name, Contents: o.Contents,
		IsContainer:  o.containerFlag,
	}
	if o.floorPos != (Position{}) {
		p := o.floorPos
		aux.FloorPos = &p
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes o from the format MarshalJSON produces.
func (o *Object) UnmarshalJSON(data []byte) error {
	var aux objectJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*o = Object{
		ID:            aux.ID, ObjectType: aux.ObjectType, Class: aux.Class, Quantity: aux.Quantity,
		Enchantment:   aux.Enchantment, BUC: aux.BUC, BUCKnown: aux.BUCKnown, Known: aux.Known,
		Weight:        aux.Weight, InvLetter: aux.InvLetter, WornMask: aux.WornMask,
		Artifact:      aux.Artifact, Recharged: aux.Recharged, Locked: aux.Locked,
		Broken:        aux.Broken, Trapped: aux.Trapped, Erosion: aux.Erosion,
		Material:      aux.Material, Greased: aux.Greased, IsBagOfHold: aux.IsBagOfHold,
		IsBagOfTrick:  aux.IsBagOfTrick, Name: aux.Name, Contents: aux.Contents,
		containerFlag: aux.IsContainer,
	}
	if aux.FloorPos != nil {
		o.floorPos = *aux.FloorPos
	}
	return nil
}

// StackKey identifies what makes two objects mergeable into one stack.
type StackKey struct {
	ObjectType  int16
	Enchantment int8
	BUC         BUC
	Known       bool
	Name        string
}

// Key returns o's stacking key.
func (o *Object) Key() StackKey {
	return StackKey{o.ObjectType, o.Enchantment, o.BUC, o.Known, o.Name}
}

// Stackable reports whether o and other may merge into a single stack:
// identical (object_type, enchantment, buc, known, name) and neither is a
// container.
func (o *Object) Stackable(other *Object) bool {
	if o.IsContainer() || other.IsContainer() {
		return false
	}
	return o.Key() == other.Key()
}

// Merge adds other's quantity to o; other itself is left unchanged and
// removing it is up to the caller. Callers must check Stackable first.
func (o *Object) Merge(other *Object) {
	o.Quantity += other.Quantity
}

// IsContainer reports whether o can hold contents: it is flagged as a Bag
// of Holding, a Bag of Tricks, or a container. Class and Contents are
// not consulted.
func (o *Object) IsContainer() bool {
	return o.IsBagOfHold || o.IsBagOfTrick || o.containerFlag
}

// containerFlag lets non-bag containers (sacks, boxes, chests) opt in
// without needing a dedicated bool per type; set via MarkContainer.
func (o *Object) MarkContainer() { o.containerFlag = true }

// ContentsWeightScale returns the weight multiplier Bag of Holding
// contents are scaled by, keyed on the bag's BUC status: 1/4 blessed,
// 1/2 uncursed, 2x cursed. Non-BoH containers return 1.0.
func (o *Object) ContentsWeightScale() float64 {
	if !o.IsBagOfHold {
		return 1.0
	}
	switch o.BUC {
	case Blessed:
		return 0.25
	case Cursed:
		return 2.0
	default:
		return 0.5
	}
}

// TotalWeight returns o's own weight plus its contents, each scaled by
// the holder's ContentsWeightScale.
func (o *Object) TotalWeight() uint32 {
	total := o.Weight
	scale := o.ContentsWeightScale()
	for _, c := range o.Contents {
		total += uint32(float64(c.TotalWeight()) * scale)
	}
	return total
}

// ErrSelfContainment and ErrNestedBagOfHolding are returned by PutIn when
// an insertion would violate a container invariant.
var (
	ErrSelfContainment    = fmt.Errorf("container cannot contain itself")
	ErrNestedBagOfHolding = fmt.Errorf("a Bag of Holding or Bag of Tricks may not be placed inside a Bag of Holding")
)

// PutIn inserts item into o's contents, enforcing: o is a container, item
// is not o itself nor a transitive ancestor of o (no cycles), and item is
// not a Bag of Holding/Tricks if o is itself a Bag of Holding.
func (o *Object) PutIn(item *Object) error {
	if !o.IsContainer() {
		return fmt.Errorf("object %d is not a container", o.ID)
	}
	if item == o {
		return ErrSelfContainment
	}
	if o.IsBagOfHold && (item.IsBagOfHold || item.IsBagOfTrick) {
		return ErrNestedBagOfHolding
	}
	if item.containsTransitively(o.ID) {
		return ErrSelfContainment
	}
	o.Contents = append(o.Contents, item)
	return nil
}

// containsTransitively reports whether id appears anywhere in o's
// contents tree, used to reject cycles before they are created.
func (o *Object) containsTransitively(id ObjectID) bool {
	for _, c := range o.Contents {
		if c.ID == id || c.containsTransitively(id) {
			return true
		}
	}
	return false
}

// TakeFrom removes and returns the content at index i.
func (o *Object) TakeFrom(i int) (*Object, error) {
	if i < 0 || i >= len(o.Contents) {
		return nil, fmt.Errorf("content index %d out of range", i)
	}
	item := o.Contents[i]
	o.Contents = append(o.Contents[:i], o.Contents[i+1:]...)
	return item, nil
}

// Validate checks o's local invariants: quantity at
// least 1, and (recursively) the same for every content.
func (o *Object) Validate() error {
	if o.Quantity < 1 {
		return fmt.Errorf("object %d: quantity %d < 1", o.ID, o.Quantity)
	}
	for _, c := range o.Contents {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("object %d content: %w", o.ID, err)
		}
	}
	return nil
}
