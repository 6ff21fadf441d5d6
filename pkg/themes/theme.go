package themes

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// WeightedEntry is one possible spawn or drop, with a selection weight.
type WeightedEntry struct {
	TypeName string `yaml:"type" json:"type"`
	Weight   int    `yaml:"weight" json:"weight"`
}

// EncounterTable maps a dungeon depth to weighted monster spawns.
type EncounterTable struct {
	Depth   int             `yaml:"depth" json:"depth"`
	Entries []WeightedEntry `yaml:"entries" json:"entries"`
}

// LootTable maps a room type to weighted object drops.
type LootTable struct {
	RoomType model.RoomType  `yaml:"room_type" json:"room_type"`
	Entries  []WeightedEntry `yaml:"entries" json:"entries"`
}

// BranchTheme is the complete set of encounter and loot tables for one
// dungeon branch.
type BranchTheme struct {
	Dungeon         model.DungeonID  `yaml:"dungeon" json:"dungeon"`
	Name            string           `yaml:"name" json:"name"`
	EncounterTables []EncounterTable `yaml:"encounter_tables" json:"encounter_tables"`
	LootTables      []LootTable      `yaml:"loot_tables" json:"loot_tables"`
	TrapTypes       []WeightedEntry  `yaml:"trap_types" json:"trap_types"`
}

// Pack is a loaded collection of BranchThemes, one per dungeon the
// generator understands how to populate.
type Pack struct {
	Themes []BranchTheme `yaml:"themes" json:"themes"`
}

// LoadPack reads and validates a YAML file describing every branch's
// theme.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme pack: %w", err)
	}
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing theme pack YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every encounter and loot table entry has a
// positive weight and a type name; trap types are not checked.
func (p *Pack) Validate() error {
	for _, theme := range p.Themes {
		for _, table := range theme.EncounterTables {
			for _, e := range table.Entries {
				if e.TypeName == "" {
					return errors.New("encounter entry missing type name")
				}
				if e.Weight <= 0 {
					return fmt.Errorf("encounter entry %q: weight must be positive", e.TypeName)
				}
			}
		}
		for _, table := range theme.LootTables {
			for _, e := range table.Entries {
				if e.TypeName == "" {
					return errors.New("loot entry missing type name")
				}
				if e.Weight <= 0 {
					return fmt.Errorf("loot entry %q: weight must be positive", e.TypeName)
				}
			}
		}
	}
	return nil
}

// Theme returns the BranchTheme for a dungeon, or nil if none is loaded.
func (p *Pack) Theme(d model.DungeonID) *BranchTheme {
	for i := range p.Themes {
		if p.Themes[i].Dungeon == d {
			return &p.Themes[i]
		}
	}
	return nil
}

// EncountersNear returns the encounter table whose Depth is closest to
// level, preferring an exact match and otherwise the nearest bracket.
func (t *BranchTheme) EncountersNear(level int) *EncounterTable {
	if len(t.EncounterTables) == 0 {
		return nil
	}
	best := &t.EncounterTables[0]
	bestDist := abs(best.Depth - level)
	for i := 1; i < len(t.EncounterTables); i++ {
		d := abs(t.EncounterTables[i].Depth - level)
		if d < bestDist {
			best = &t.EncounterTables[i]
			bestDist = d
		}
	}
	return best
}

// LootFor returns the loot table for a room type, or nil if none exists.
func (t *BranchTheme) LootFor(roomType model.RoomType) *LootTable {
	for i := range t.LootTables {
		if t.LootTables[i].RoomType == roomType {
			return &t.LootTables[i]
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SelectWeighted performs weighted random selection over entries using r,
// consuming exactly one Rn2 draw. Returns false if entries is empty or
// every weight is zero.
func SelectWeighted(entries []WeightedEntry, r *rng.Isaac64) (WeightedEntry, bool) {
	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return WeightedEntry{}, false
	}
	roll := int(r.Rn2(uint32(total)))
	cumulative := 0
	for _, e := range entries {
		cumulative += e.Weight
		if roll < cumulative {
			return e, true
		}
	}
	return entries[len(entries)-1], true
}

// DefaultPack returns a built-in theme pack covering the main dungeon,
// the Gnomish Mines, and Gehennom, used when no YAML override is
// supplied (mirrors the reference's compiled-in default tables).
func DefaultPack() *Pack {
	return &Pack{
		Themes: []BranchTheme{
			{
				Dungeon: model.DungeonMain,
				Name:    "Dungeons of Doom",
				EncounterTables: []EncounterTable{
					{Depth: 1, Entries: []WeightedEntry{
						{TypeName: "grid bug", Weight: 10},
						{TypeName: "lichen", Weight: 6},
						{TypeName: "newt", Weight: 4},
						{TypeName: "sewer rat", Weight: 8},
					}},
					{Depth: 10, Entries: []WeightedEntry{
						{TypeName: "gnome lord", Weight: 5},
						{TypeName: "dwarf", Weight: 6},
						{TypeName: "quantum mechanic", Weight: 2},
						{TypeName: "homunculus", Weight: 4},
					}},
					{Depth: 20, Entries: []WeightedEntry{
						{TypeName: "troll", Weight: 5},
						{TypeName: "ogre lord", Weight: 4},
						{TypeName: "winter wolf", Weight: 3},
					}},
				},
				LootTables: []LootTable{
					{RoomType: model.RoomOrdinary, Entries: []WeightedEntry{
						{TypeName: "food ration", Weight: 4},
						{TypeName: "dagger", Weight: 5},
						{TypeName: "potion of healing", Weight: 2},
						{TypeName: "gold", Weight: 10},
					}},
					{RoomType: model.RoomVault, Entries: []WeightedEntry{
						{TypeName: "gold", Weight: 20},
					}},
				},
				TrapTypes: []WeightedEntry{
					{TypeName: "arrow", Weight: 4},
					{TypeName: "dart", Weight: 4},
					{TypeName: "pit", Weight: 5},
					{TypeName: "sleeping gas", Weight: 2},
				},
			},
			{
				Dungeon: model.DungeonMines,
				Name:    "The Gnomish Mines",
				EncounterTables: []EncounterTable{
					{Depth: 1, Entries: []WeightedEntry{
						{TypeName: "gnome", Weight: 10},
						{TypeName: "dwarf", Weight: 6},
						{TypeName: "gnome lord", Weight: 4},
					}},
				},
				LootTables: []LootTable{
					{RoomType: model.RoomOrdinary, Entries: []WeightedEntry{
						{TypeName: "gem", Weight: 6},
						{TypeName: "gold", Weight: 10},
						{TypeName: "pick-axe", Weight: 1},
					}},
				},
				TrapTypes: []WeightedEntry{
					{TypeName: "rockfall", Weight: 5},
					{TypeName: "pit", Weight: 4},
				},
			},
			{
				Dungeon: model.DungeonGehennom,
				Name:    "Gehennom",
				EncounterTables: []EncounterTable{
					{Depth: 1, Entries: []WeightedEntry{
						{TypeName: "imp", Weight: 6},
						{TypeName: "horned devil", Weight: 5},
						{TypeName: "balrog", Weight: 1},
					}},
				},
				LootTables: []LootTable{
					{RoomType: model.RoomOrdinary, Entries: []WeightedEntry{
						{TypeName: "wand of fire", Weight: 1},
						{TypeName: "gold", Weight: 8},
					}},
				},
				TrapTypes: []WeightedEntry{
					{TypeName: "fire", Weight: 6},
					{TypeName: "pit", Weight: 3},
				},
			},
		},
	}
}
