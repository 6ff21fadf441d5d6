package parity

import "fmt"

// Severity classifies how much a StateDiff matters to convergence.
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityMajor
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityMajor:
		return "major"
	default:
		return "minor"
	}
}

// StateDiff records one field that disagreed between this
// implementation's and the C reference's snapshots.
type StateDiff struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	GotValue string   `json:"got_value"`
	CValue   string   `json:"c_value"`
}

func diff(field string, sev Severity, got, c any) StateDiff {
	return StateDiff{Severity: sev, Field: field, GotValue: fmt.Sprint(got), CValue: fmt.Sprint(c)}
}

// DiffSnapshots compares got and c, returning one StateDiff per
// disagreeing field. Critical covers
// position/alive/hp_max, Major covers inventory and monster counts,
// Minor covers attributes/energy/gold/nutrition.
func DiffSnapshots(got, c GameSnapshot) []StateDiff {
	var diffs []StateDiff

	if got.X != c.X || got.Y != c.Y {
		diffs = append(diffs, diff("position", SeverityCritical,
			fmt.Sprintf("(%d,%d)", got.X, got.Y), fmt.Sprintf("(%d,%d)", c.X, c.Y)))
	}
	if got.Alive != c.Alive {
		diffs = append(diffs, diff("alive", SeverityCritical, got.Alive, c.Alive))
	}
	if got.HPMax != c.HPMax {
		diffs = append(diffs, diff("hp_max", SeverityCritical, got.HPMax, c.HPMax))
	}

	if len(got.Inventory) != len(c.Inventory) {
		diffs = append(diffs, diff("inventory_count", SeverityMajor, len(got.Inventory), len(c.Inventory)))
	}
	if len(got.Monsters) != len(c.Monsters) {
		diffs = append(diffs, diff("monster_count", SeverityMajor, len(got.Monsters), len(c.Monsters)))
	}

	if got.Attributes != c.Attributes {
		diffs = append(diffs, diff("attributes", SeverityMinor, got.Attributes, c.Attributes))
	}
	if got.Energy != c.Energy {
		diffs = append(diffs, diff("energy", SeverityMinor, got.Energy, c.Energy))
	}
	if got.Gold != c.Gold {
		diffs = append(diffs, diff("gold", SeverityMinor, got.Gold, c.Gold))
	}
	if got.Nutrition != c.Nutrition {
		diffs = append(diffs, diff("nutrition", SeverityMinor, got.Nutrition, c.Nutrition))
	}
	if got.HP != c.HP {
		diffs = append(diffs, diff("hp", SeverityMinor, got.HP, c.HP))
	}
	if got.AC != c.AC {
		diffs = append(diffs, diff("ac", SeverityMinor, got.AC, c.AC))
	}

	return diffs
}

// CountBySeverity tallies diffs per severity tier.
func CountBySeverity(diffs []StateDiff) (critical, major, minor int) {
	for _, d := range diffs {
		switch d.Severity {
		case SeverityCritical:
			critical++
		case SeverityMajor:
			major++
		default:
			minor++
		}
	}
	return
}
