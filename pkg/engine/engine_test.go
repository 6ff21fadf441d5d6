package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/persist"
)

func freshLoop() *Loop {
	gs := model.NewGameState(42)
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 0})
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			lvl.At(model.NewPosition(x, y)).Type = model.CellRoom
		}
	}
	gs.Levels[lvl.DLevel] = lvl
	gs.CurrentLevel = lvl.DLevel
	gs.Player.Pos = model.NewPosition(5, 5)
	gs.Player.HP, gs.Player.HPMax = 20, 20
	gs.Player.Attributes[model.AttrStr] = model.AttributePair{Current: 16, Max: 16}
	gs.Player.Attributes[model.AttrCon] = model.AttributePair{Current: 14, Max: 14}
	gs.Player.MovementPoints = 12

	return NewLoop(gs, DefaultConfig())
}

func TestStepMoveAdvancesTurn(t *testing.T) {
	l := freshLoop()
	startTurns := l.GS.Turns
	res, end := l.Step(action.Command{Kind: action.CmdMove, Dir: model.DirE})
	require.Equal(t, action.ResultSuccess, res.Kind)
	assert.Equal(t, EndNone, end)
	assert.Equal(t, startTurns+1, l.GS.Turns)
}

func TestStepInsufficientPointsGrantsNoTime(t *testing.T) {
	l := freshLoop()
	l.GS.Player.MovementPoints = 0
	res, _ := l.Step(action.Command{Kind: action.CmdMove, Dir: model.DirE})
	assert.Equal(t, action.ResultNoTime, res.Kind)
	assert.Greater(t, l.GS.Player.MovementPoints, int32(0))
}

func TestCheckEndConditionsDeath(t *testing.T) {
	l := freshLoop()
	l.Config.BonesDir = t.TempDir()
	l.Config.HighScoreFile = filepath.Join(t.TempDir(), "record.json")
	l.GS.Flags.Dead = true
	assert.Equal(t, EndPlayerDied, l.checkEndConditions())

	entries, err := persist.LoadHighScores(l.Config.HighScoreFile)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestTickMonstersStableOrder(t *testing.T) {
	l := freshLoop()
	lvl := l.GS.Current()
	lvl.Monsters = append(lvl.Monsters,
		&model.Monster{ID: 2, Pos: model.NewPosition(1, 1), HP: 5, HPMax: 5, State: model.StateAlive},
		&model.Monster{ID: 1, Pos: model.NewPosition(2, 2), HP: 5, HPMax: 5, State: model.StateAlive},
	)
	require.NotPanics(t, func() { l.tickMonsters() })
}
