package model

// DamageType is the closed set of damage categories combat and object
// effects can deal.
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageFire
	DamageCold
	DamageElectric
	DamageAcid
	DamagePoison
	DamageSleep
	DamageDrain
	DamageStone
	DamageDisintegrate
	DamageMagic
)

// String returns the damage type's display name.
func (d DamageType) String() string {
	names := [...]string{
		"physical", "fire", "cold", "electric", "acid",
		"poison", "sleep", "drain", "stone", "disintegrate", "magic",
	}
	if int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}

// Categorical reports whether this damage type has an all-or-nothing
// resisted effect (sleep, petrification) rather than a halved numeric
// effect.
func (d DamageType) Categorical() bool {
	return d == DamageSleep || d == DamageStone
}
