package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/model"
)

func TestMoraleLowHPPenalty(t *testing.T) {
	full := MoraleTracker{}.Calculate(model.PersonalityAggressive, 10, 10, nil)
	low := MoraleTracker{}.Calculate(model.PersonalityAggressive, 2, 10, nil)
	assert.Greater(t, full, low)
}

func TestMoraleEventsDecay(t *testing.T) {
	recent := MoraleTracker{}.Calculate(model.PersonalityAggressive, 10, 10, []MoraleEvent{
		{Type: EventAlliedDeath, TurnsAgo: 0},
	})
	stale := MoraleTracker{}.Calculate(model.PersonalityAggressive, 10, 10, []MoraleEvent{
		{Type: EventAlliedDeath, TurnsAgo: 9},
	})
	expired := MoraleTracker{}.Calculate(model.PersonalityAggressive, 10, 10, []MoraleEvent{
		{Type: EventAlliedDeath, TurnsAgo: 10},
	})
	assert.Less(t, recent, stale)
	assert.Equal(t, int32(0), expired, "an event at the decay window's edge should contribute nothing")
}

func TestMoraleHPPenaltyGatesAtHalf(t *testing.T) {
	atHalf := MoraleTracker{}.Calculate(model.PersonalityAggressive, 5, 10, nil)
	assert.Equal(t, int32(0), atHalf, "no penalty at exactly half HP")
	below := MoraleTracker{}.Calculate(model.PersonalityAggressive, 45, 100, nil)
	assert.Equal(t, int32(-4), below, "(0.5-0.45)*80 = 4 morale points")
	floor := MoraleTracker{}.Calculate(model.PersonalityAggressive, 0, 100, nil)
	assert.Equal(t, int32(-40), floor, "penalty caps at 40")
}

func TestMoraleBerserkerHalvesNegatives(t *testing.T) {
	events := []MoraleEvent{{Type: EventTookHeavyDamage, TurnsAgo: 0}}
	berserker := MoraleTracker{}.Calculate(model.PersonalityBerserker, 10, 10, events)
	aggressive := MoraleTracker{}.Calculate(model.PersonalityAggressive, 10, 10, events)
	assert.Greater(t, berserker, aggressive)
}

func TestShouldRetreatLowHP(t *testing.T) {
	mon := &model.Monster{HP: 1, HPMax: 10, Intelligence: model.IntelligenceAnimal}
	reason := ShouldRetreat(mon, 0, 1, 1, 1)
	assert.Equal(t, RetreatLowHP, reason)
}

func TestShouldRetreatNoneWhenHealthy(t *testing.T) {
	mon := &model.Monster{HP: 10, HPMax: 10, Intelligence: model.IntelligenceAverage}
	reason := ShouldRetreat(mon, 50, 1, 1, 1)
	assert.Equal(t, RetreatNone, reason)
}

func TestTickMovesTowardPlayer(t *testing.T) {
	gs := model.NewGameState(1)
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

	mon := &model.Monster{
		ID:    1,
		Pos:   model.NewPosition(1, 1),
		HP:    10,
		HPMax: 10,
		State: model.StateAlive,
		Level: 1,
	}
	lvl.Monsters = append(lvl.Monsters, mon)

	start := mon.Pos.ChebyshevDistance(gs.Player.Pos)
	Tick(gs, mon)
	end := mon.Pos.ChebyshevDistance(gs.Player.Pos)
	require.LessOrEqual(t, end, start)
}

func TestTickSleepingMonsterDoesNotMove(t *testing.T) {
	gs := model.NewGameState(1)
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 0})
	gs.Levels[lvl.DLevel] = lvl
	gs.CurrentLevel = lvl.DLevel
	gs.Player.Pos = model.NewPosition(5, 5)
	gs.Player.HP, gs.Player.HPMax = 20, 20

	mon := &model.Monster{ID: 1, Pos: model.NewPosition(2, 2), HP: 10, HPMax: 10, State: model.StateAlive | model.StateSleeping}
	lvl.Monsters = append(lvl.Monsters, mon)

	Tick(gs, mon)
	assert.Equal(t, model.NewPosition(2, 2), mon.Pos)
}
