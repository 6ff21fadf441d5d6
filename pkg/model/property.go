package model

import (
	"encoding/json"
	"strconv"
)

// Property is the closed set of intrinsic/extrinsic traits a player or
// monster may carry: resistances, senses, movement modes, and a handful
// of special abilities.
type Property int

const (
	PropFireRes Property = iota
	PropColdRes
	PropShockRes
	PropAcidRes
	PropPoisonRes
	PropSleepRes
	PropDrainRes
	PropStoneRes
	PropDisintRes
	PropMagicRes
	PropSickRes
	PropStunRes
	PropHallucRes

	PropTelepathy
	PropSeeInvisible
	PropInvisible
	PropWarning
	PropSearching
	PropInfravision
	PropClairvoyant
	PropDetectMonsters
	PropXRayVision

	PropFlying
	PropSwimming
	PropAmphibious
	PropWaterWalking
	PropPassesWalls
	PropTeleport
	PropTeleportControl
	PropJumping
	PropSpeed
	PropSlow
	PropLevitation
	PropRegeneration
	PropEnergyRegeneration

	PropFoodPoisonRes
	PropSickResistance
	PropHungerless
	PropReflection
	PropFreeAction
	PropFixedAbility
	PropHalfSpellDamage
	PropHalfPhysicalDamage
	PropAggravateMonster
	PropConflict
	PropProtection
	PropLifesaving
	PropMagicalBreathing
	PropUnchanging
	PropPolymorphControl
	PropPolymorph
	PropPoisonous
	PropDisplacedImage

	propertyCount
)

// PropertySource identifies where a Property's "has" bit comes from.
// Multiple sources may hold the bit simultaneously; revoking one (e.g.
// taking off a ring) must not clear bits held by another (e.g. an
// intrinsic gained at experience level 10).
type PropertySource uint32

const (
	SourceIntrinsic PropertySource = 1 << iota
	SourceBlocked                  // explicit negation, e.g. cursed item
	SourceTimeout                  // temporary, decremented by tick_timers
	SourceSlotWeapon
	SourceSlotShield
	SourceSlotArmor
	SourceSlotHelm
	SourceSlotGloves
	SourceSlotBoots
	SourceSlotCloak
	SourceSlotShirt
	SourceSlotAmulet
	SourceSlotRingLeft
	SourceSlotRingRight
	SourceSlotBlindfold
)

// equipmentSources are every source bit that SlotSourceFor(WornMask) can
// emit; used by PropertySet.RevokeSlotSources to know which bits are
// slot-derived versus intrinsic/timeout.
var equipmentSources = []PropertySource{
	SourceSlotWeapon, SourceSlotShield, SourceSlotArmor, SourceSlotHelm,
	SourceSlotGloves, SourceSlotBoots, SourceSlotCloak, SourceSlotShirt,
	SourceSlotAmulet, SourceSlotRingLeft, SourceSlotRingRight, SourceSlotBlindfold,
}

// SlotSourceFor maps an Object.WornMask bit to its PropertySource,
// so pkg/property can grant/revoke properties per equipment slot.
func SlotSourceFor(wornBit uint32) PropertySource {
	switch wornBit {
	case WornWeapon:
		return SourceSlotWeapon
	case WornShield:
		return SourceSlotShield
	case WornArmor:
		return SourceSlotArmor
	case WornHelm:
		return SourceSlotHelm
	case WornGloves:
		return SourceSlotGloves
	case WornBoots:
		return SourceSlotBoots
	case WornCloak:
		return SourceSlotCloak
	case WornShirt:
		return SourceSlotShirt
	case WornAmulet:
		return SourceSlotAmulet
	case WornRingLeft:
		return SourceSlotRingLeft
	case WornRingRight:
		return SourceSlotRingRight
	case WornBlindfold:
		return SourceSlotBlindfold
	default:
		return 0
	}
}

// propertyEntry is one Property's source bitset plus its timeout counter.
type propertyEntry struct {
	sources PropertySource
	timeout int32
}

// PropertySet holds, per Property, a bitset of sources and a timeout
// counter. has(p) is true iff any source bit is set and
// SourceBlocked is not.
type PropertySet struct {
	entries map[Property]*propertyEntry
}

// NewPropertySet returns an empty PropertySet.
func NewPropertySet() *PropertySet {
	return &PropertySet{entries: make(map[Property]*propertyEntry)}
}

func (ps *PropertySet) entry(p Property) *propertyEntry {
	e, ok := ps.entries[p]
	if !ok {
		e = &propertyEntry{}
		ps.entries[p] = e
	}
	return e
}

// Has reports whether p is currently active: some source bit set and
// SourceBlocked clear.
func (ps *PropertySet) Has(p Property) bool {
	e, ok := ps.entries[p]
	if !ok {
		return false
	}
	if e.sources&SourceBlocked != 0 {
		return false
	}
	return e.sources != 0
}

// Grant sets source on p. Multiple grants from different sources compose
// with bitwise OR and are independently revokable.
func (ps *PropertySet) Grant(p Property, source PropertySource) {
	ps.entry(p).sources |= source
}

// Revoke clears source from p, leaving any other source's bit untouched.
func (ps *PropertySet) Revoke(p Property, source PropertySource) {
	if e, ok := ps.entries[p]; ok {
		e.sources &^= source
	}
}

// GrantTimed grants p via SourceTimeout with the given duration in turns.
func (ps *PropertySet) GrantTimed(p Property, turns int32) {
	e := ps.entry(p)
	e.sources |= SourceTimeout
	if turns > e.timeout {
		e.timeout = turns
	}
}

// Timeout returns p's remaining timed duration.
func (ps *PropertySet) Timeout(p Property) int32 {
	if e, ok := ps.entries[p]; ok {
		return e.timeout
	}
	return 0
}

// TickTimeouts decrements every active timeout by one turn, clearing
// SourceTimeout (and thus possibly Has) for any that reach zero. Called
// once per turn from pkg/engine's timer phase.
func (ps *PropertySet) TickTimeouts() {
	for _, e := range ps.entries {
		if e.sources&SourceTimeout == 0 {
			continue
		}
		if e.timeout > 0 {
			e.timeout--
		}
		if e.timeout <= 0 {
			e.sources &^= SourceTimeout
		}
	}
}

// propertyEntryJSON is the serialized form of one property's entry.
type propertyEntryJSON struct {
	Sources PropertySource `json:"sources"`
	Timeout int32          `json:"timeout,omitempty"`
}

// MarshalJSON encodes the set as a map keyed by the Property's numeric
// value; string keys keep encoding/json's sorted-map ordering, so the
// save format stays deterministic.
func (ps *PropertySet) MarshalJSON() ([]byte, error) {
	out := make(map[string]propertyEntryJSON, len(ps.entries))
	for p, e := range ps.entries {
		if e.sources == 0 && e.timeout == 0 {
			continue
		}
		out[strconv.Itoa(int(p))] = propertyEntryJSON{Sources: e.sources, Timeout: e.timeout}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a set saved with MarshalJSON.
func (ps *PropertySet) UnmarshalJSON(data []byte) error {
	var in map[string]propertyEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	ps.entries = make(map[Property]*propertyEntry, len(in))
	for k, v := range in {
		p, err := strconv.Atoi(k)
		if err != nil {
			return err
		}
		ps.entries[Property(p)] = &propertyEntry{sources: v.Sources, timeout: v.Timeout}
	}
	return nil
}

// RevokeSlotSources clears every equipment-slot-derived source bit across
// all properties, used when an item with unknown granted-properties is
// removed and the caller re-applies only the properties the remaining
// equipment should still grant.
func (ps *PropertySet) RevokeSlotSources() {
	for _, e := range ps.entries {
		for _, s := range equipmentSources {
			e.sources &^= s
		}
	}
}
