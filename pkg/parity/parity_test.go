package parity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

func TestDiffSnapshotsDetectsPositionAsCritical(t *testing.T) {
	got := GameSnapshot{X: 1, Y: 1, HPMax: 10, Alive: true}
	c := GameSnapshot{X: 2, Y: 1, HPMax: 10, Alive: true}

	diffs := DiffSnapshots(got, c)
	require.Len(t, diffs, 1)
	assert.Equal(t, "position", diffs[0].Field)
	assert.Equal(t, SeverityCritical, diffs[0].Severity)
}

func TestDiffSnapshotsInventoryCountIsMajor(t *testing.T) {
	got := GameSnapshot{HPMax: 10, Inventory: []InventoryItem{{ObjectType: 1}}}
	c := GameSnapshot{HPMax: 10}

	diffs := DiffSnapshots(got, c)
	critical, major, _ := CountBySeverity(diffs)
	assert.Equal(t, 0, critical)
	assert.Equal(t, 1, major)
}

func TestDiffSnapshotsNoDiffWhenEqual(t *testing.T) {
	s := GameSnapshot{X: 1, Y: 1, HPMax: 10, Alive: true}
	assert.Empty(t, DiffSnapshots(s, s))
}

func TestCompareTracesFindsDivergence(t *testing.T) {
	a := rng.NewIsaac64(1)
	b := rng.NewIsaac64(1)
	a.EnableTracing()
	b.EnableTracing()
	for i := 0; i < 10; i++ {
		a.Rn2(100)
		b.Rn2(100)
	}
	div := CompareTraces(a.Trace(), b.Trace())
	assert.Nil(t, div)

	bTrace := b.Trace()
	bTrace[5].Result = bTrace[5].Result + 1
	div = CompareTraces(a.Trace(), bTrace)
	require.NotNil(t, div)
	assert.Equal(t, 5, div.CallIndex)
}

func TestCompareTracesLengthMismatch(t *testing.T) {
	a := rng.NewIsaac64(1)
	a.EnableTracing()
	a.Rn2(10)
	a.Rn2(10)

	b := rng.NewIsaac64(1)
	b.EnableTracing()
	b.Rn2(10)

	div := CompareTraces(a.Trace(), b.Trace())
	require.NotNil(t, div)
	assert.Equal(t, 1, div.CallIndex)
}

func TestGateConfigValidate(t *testing.T) {
	cfg := DefaultGateConfig()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.SnapshotInterval = 0
	assert.Error(t, bad.Validate())
}

func TestRunScenarioPassesWhenIdentical(t *testing.T) {
	cfg := DefaultGateConfig()
	cfg.SnapshotInterval = 1
	scenario := Scenario{
		Name:  "noop",
		Seed:  7,
		Turns: 1,
		Program: []action.Command{
			{Kind: action.CmdSearch},
		},
	}

	gs := model.NewGameState(7)
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 0})
	gs.Levels[lvl.DLevel] = lvl
	gs.CurrentLevel = lvl.DLevel
	want := Snapshot(gs)

	result, err := RunScenario(cfg, scenario, []GameSnapshot{want})
	require.NoError(t, err)
	assert.True(t, result.Passes(cfg))
}
