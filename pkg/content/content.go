package content

import (
	"context"
	"fmt"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
	"github.com/ninehex/nhsim/pkg/themes"
)

// Pass populates lvl's monsters, objects, and traps based on room
// properties and the branch theme. The RNG must be used for every
// random decision so placement is reproducible given the same seed.
type Pass interface {
	Place(ctx context.Context, lvl *model.Level, theme *themes.BranchTheme, r *rng.Isaac64) error
}

// DefaultPass is the standard population pipeline: monster spawns, floor
// loot, and traps, each scaled by room count and dungeon depth.
type DefaultPass struct {
	MonstersPerRoom float64
	LootPerRoom     float64
	TrapChance      int
	nextObjectID    func() model.ObjectID
	nextMonsterID   func() model.MonsterID
}

// NewDefaultPass returns a population pass with the reference's rough
// per-room density, using the supplied ID allocators so placed entities
// never collide with existing IDs in the owning GameState.
func NewDefaultPass(nextObjectID func() model.ObjectID, nextMonsterID func() model.MonsterID) *DefaultPass {
	return &DefaultPass{
		MonstersPerRoom: 0.8,
		LootPerRoom:     1.2,
		TrapChance:      100,
		nextObjectID:    nextObjectID,
		nextMonsterID:   nextMonsterID,
	}
}

// Place implements Pass.
func (d *DefaultPass) Place(ctx context.Context, lvl *model.Level, theme *themes.BranchTheme, r *rng.Isaac64) error {
	if theme == nil {
		return fmt.Errorf("populating level %s: no theme supplied", lvl.DLevel)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.spawnMonsters(lvl, theme, r); err != nil {
		return fmt.Errorf("spawning monsters on %s: %w", lvl.DLevel, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.placeLoot(lvl, theme, r); err != nil {
		return fmt.Errorf("placing loot on %s: %w", lvl.DLevel, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.placeTraps(lvl, theme, r); err != nil {
		return fmt.Errorf("placing traps on %s: %w", lvl.DLevel, err)
	}
	return nil
}

func (d *DefaultPass) spawnMonsters(lvl *model.Level, theme *themes.BranchTheme, r *rng.Isaac64) error {
	table := theme.EncountersNear(lvl.DLevel.Level)
	if table == nil {
		return nil
	}
	for _, room := range lvl.Rooms {
		count := int(d.MonsterDensity(room, r))
		for i := 0; i < count; i++ {
			entry, ok := themes.SelectWeighted(table.Entries, r)
			if !ok {
				continue
			}
			pos := randomRoomPosition(room, r)
			if lvl.MonsterAt(pos) != nil {
				continue
			}
			m := &model.Monster{
				ID:          d.nextMonsterID(),
				Name:        entry.TypeName,
				Pos:         pos,
				HP:          8,
				HPMax:       8,
				AC:          10,
				State:       model.StateAlive | model.StateCanMove,
				Personality: model.Personality(r.Rn2(6)),
			}
			lvl.Monsters = append(lvl.Monsters, m)
		}
	}
	return nil
}

// MonsterDensity returns how many monster spawn attempts room gets,
// jittered by a single Rn2 draw so density is not perfectly uniform.
func (d *DefaultPass) MonsterDensity(room model.Room, r *rng.Isaac64) float64 {
	base := d.MonstersPerRoom
	if r.Rn2(2) == 0 {
		base += 1
	}
	return base
}

func (d *DefaultPass) placeLoot(lvl *model.Level, theme *themes.BranchTheme, r *rng.Isaac64) error {
	for _, room := range lvl.Rooms {
		table := theme.LootFor(room.Type)
		if table == nil {
			table = theme.LootFor(model.RoomOrdinary)
		}
		if table == nil {
			continue
		}
		count := int(d.LootPerRoom)
		if r.Rn2(2) == 0 {
			count++
		}
		for i := 0; i < count; i++ {
			entry, ok := themes.SelectWeighted(table.Entries, r)
			if !ok {
				continue
			}
			pos := randomRoomPosition(room, r)
			obj := &model.Object{
				ID:       d.nextObjectID(),
				Name:     entry.TypeName,
				Quantity: 1,
				BUC:      model.Uncursed,
			}
			obj.SetFloorPos(pos)
			lvl.Objects = append(lvl.Objects, obj)
		}
	}
	return nil
}

func (d *DefaultPass) placeTraps(lvl *model.Level, theme *themes.BranchTheme, r *rng.Isaac64) error {
	if d.TrapChance <= 0 || len(theme.TrapTypes) == 0 {
		return nil
	}
	for _, room := range lvl.Rooms {
		if r.Rn2(uint32(d.TrapChance)) != 0 {
			continue
		}
		entry, ok := themes.SelectWeighted(theme.TrapTypes, r)
		if !ok {
			continue
		}
		pos := randomRoomPosition(room, r)
		if lvl.TrapAt(pos) != nil {
			continue
		}
		lvl.Traps = append(lvl.Traps, &model.Trap{
			Pos:    pos,
			Type:   trapTypeFor(entry.TypeName),
			Hidden: true,
		})
	}
	return nil
}

func randomRoomPosition(room model.Room, r *rng.Isaac64) model.Position {
	x := room.X1 + int8(r.Rn2(uint32(room.Width())))
	y := room.Y1 + int8(r.Rn2(uint32(room.Height())))
	return model.Position{X: x, Y: y}
}

// trapTypeFor maps a theme's symbolic trap name to a model.TrapType,
// defaulting to a land mine equivalent for names it does not recognize.
func trapTypeFor(name string) model.TrapType {
	switch name {
	case "arrow":
		return model.TrapArrow
	case "dart":
		return model.TrapDart
	case "pit":
		return model.TrapPit
	case "sleeping gas":
		return model.TrapSleep
	case "rockfall":
		return model.TrapFallingRock
	case "fire":
		return model.TrapFire
	default:
		return model.TrapLand
	}
}
