package combat

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// MaxErosion caps the per-object erosion counter.
const MaxErosion = 3

// ErosionType names the specific degradation a material suffers.
type ErosionType int

const (
	ErosionNone ErosionType = iota
	ErosionRust
	ErosionRot
	ErosionCorrode
	ErosionBurn
)

// erosionFor maps a material to the ErosionType it suffers: iron rusts,
// wood rots, metal corrodes, organic material burns.
var erosionFor = map[model.Material]ErosionType{
	model.MaterialIron:    ErosionRust,
	model.MaterialWood:    ErosionRot,
	model.MaterialMetal:   ErosionCorrode,
	model.MaterialOrganic: ErosionBurn,
	model.MaterialOther:   ErosionNone,
}

// ErosionTypeFor returns the erosion this material is vulnerable to,
// ErosionNone if it does not erode at all.
func ErosionTypeFor(m model.Material) ErosionType {
	return erosionFor[m]
}

// ErodeObj attempts to erode o by one step, subject to a save roll for
// greased or blessed items. It reports whether erosion was actually applied.
// Materials with ErosionNone never erode. Erosion never exceeds
// MaxErosion.
func ErodeObj(r *rng.Isaac64, o *model.Object) bool {
	if ErosionTypeFor(o.Material) == ErosionNone {
		return false
	}
	if o.Erosion >= MaxErosion {
		return false
	}
	if o.Greased || o.BUC == model.Blessed {
		if r.Rn2(2) == 0 {
			return false
		}
	}
	o.Erosion++
	return true
}
