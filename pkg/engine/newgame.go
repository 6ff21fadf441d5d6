package engine

import (
	"context"
	"fmt"

	"github.com/ninehex/nhsim/pkg/carving"
	"github.com/ninehex/nhsim/pkg/content"
	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/themes"
)

// NewGameOptions collects the parameters a front-end supplies to start a
// fresh run: the player's chosen identity plus the generation config for
// the starting level.
type NewGameOptions struct {
	Name      string
	Role      string
	Race      string
	Gender    string
	Alignment string

	DungeonConfig dungeon.Config
	Themes        *themes.Pack
}

// DefaultNewGameOptions returns the reference's default new-character
// setup: a Valkyrie on the default dungeon configuration with the
// built-in theme pack.
func DefaultNewGameOptions() NewGameOptions {
	return NewGameOptions{
		Name:          "Adventurer",
		Role:          "Valkyrie",
		Race:          "Human",
		Gender:        "Female",
		Alignment:     "Lawful",
		DungeonConfig: dungeon.DefaultConfig(),
		Themes:        themes.DefaultPack(),
	}
}

// NewGame wires together the dungeon generator, wall/door carving, and
// content population passes into a fresh
// GameState seeded from seed, with the player dropped at the first
// room's center on dlevel 1 of the main dungeon.
//
// Level generation lives here rather than behind a CLI because the game
// loop is what a front-end actually calls to start a run.
func NewGame(ctx context.Context, seed uint64, opts NewGameOptions) (*model.GameState, error) {
	gs := model.NewGameState(seed)
	gs.Player.Name = opts.Name
	gs.Player.Role = opts.Role
	gs.Player.Race = opts.Race
	gs.Player.Gender = opts.Gender
	gs.Player.Alignment = opts.Alignment
	gs.Player.Properties = model.NewPropertySet()

	start := model.DLevel{Dungeon: model.DungeonMain, Level: 0}
	gs.CurrentLevel = start

	lvl, err := generateAndPopulate(ctx, gs, start, opts)
	if err != nil {
		return nil, err
	}
	gs.Levels[start] = lvl

	if len(lvl.Rooms) > 0 {
		gs.Player.Pos = lvl.Rooms[0].Center()
	}
	return gs, nil
}

// generateAndPopulate runs the generate -> carve -> populate pipeline for
// one level. gs.RNG is consumed in a fixed order so two runs with the
// same seed produce byte-identical levels.
func generateAndPopulate(ctx context.Context, gs *model.GameState, dl model.DLevel, opts NewGameOptions) (*model.Level, error) {
	gen := dungeon.NewDefaultGenerator()
	lvl, err := gen.Generate(ctx, dl, opts.DungeonConfig, gs.RNG)
	if err != nil {
		return nil, fmt.Errorf("engine: generating level %s: %w", dl, err)
	}

	carving.Carve(lvl, opts.DungeonConfig, gs.RNG)

	pack := opts.Themes
	if pack == nil {
		pack = themes.DefaultPack()
	}
	theme := pack.Theme(dl.Dungeon)
	if theme != nil {
		pass := content.NewDefaultPass(gs.NextObjectID, gs.NextMonsterID)
		if !opts.DungeonConfig.AllowTraps {
			pass.TrapChance = 0
		} else if opts.DungeonConfig.TrapChance > 0 {
			pass.TrapChance = opts.DungeonConfig.TrapChance
		}
		if err := pass.Place(ctx, lvl, theme, gs.RNG); err != nil {
			return nil, fmt.Errorf("engine: populating level %s: %w", dl, err)
		}
	}

	return lvl, nil
}

// DescendTo generates dl if it has not been visited yet and switches the
// current level to it.
func DescendTo(ctx context.Context, gs *model.GameState, dl model.DLevel, opts NewGameOptions) (*model.Level, error) {
	if lvl, ok := gs.Levels[dl]; ok {
		gs.CurrentLevel = dl
		return lvl, nil
	}
	lvl, err := generateAndPopulate(ctx, gs, dl, opts)
	if err != nil {
		return nil, err
	}
	gs.Levels[dl] = lvl
	gs.CurrentLevel = dl
	return lvl, nil
}
