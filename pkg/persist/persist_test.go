package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	gs := model.NewGameState(42)
	gs.Player.Name = "Tester"
	gs.Player.HP, gs.Player.HPMax = 10, 10
	gs.Turns = 7

	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	require.NoError(t, Save(gs, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, gs.Player.Name, loaded.Player.Name)
	assert.Equal(t, gs.Turns, loaded.Turns)
	assert.Equal(t, gs.Seed, loaded.Seed)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	require.NoError(t, writeRaw(path, `{"header":{"magic":"XXXX","version":1},"state":{}}`))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	require.NoError(t, writeRaw(path, `{"header":{"magic":"NHRS","version":2},"state":{}}`))

	_, err := Load(path)
	var verr *IncompatibleVersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Expected)
	assert.Equal(t, 2, verr.Found)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSanitizeForBones(t *testing.T) {
	r := rng.NewIsaac64(1)
	gs := model.NewGameState(1)
	gs.Player.Name = "Hero"
	gs.Player.HPMax = 20
	gs.Player.ExpLevel = 5

	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 3})
	tame := &model.Monster{ID: 1, State: model.StateAlive | model.StateTame | model.StatePeaceful}
	hostile := &model.Monster{ID: 2, State: model.StateAlive}
	lvl.Monsters = append(lvl.Monsters, tame, hostile)

	item := &model.Object{ID: 1, Class: model.ClassWeapon, Quantity: 1}
	gs.Inventory = append(gs.Inventory, item)

	SanitizeForBones(r, gs, lvl, model.NewPosition(5, 5))

	for _, m := range lvl.Monsters {
		assert.NotEqual(t, model.MonsterID(1), m.ID, "tame monster should be removed")
	}
	assert.Empty(t, gs.Inventory)
	found := false
	for _, m := range lvl.Monsters {
		if m.Name == "ghost of Hero" {
			found = true
			assert.Equal(t, int32(10), m.HP)
			assert.True(t, m.State.Has(model.StateInvisible), "the ghost must be invisible")
		}
	}
	assert.True(t, found, "expected a ghost monster to be added")
}

func TestCalculateScore(t *testing.T) {
	score := CalculateScore(1000, 10, 5, false, false, 0)
	assert.Equal(t, int64(1000+1000+250), score)

	ascended := CalculateScore(1000, 10, 5, true, true, 2)
	assert.Greater(t, ascended, score)
}

func TestInsertHighScoreOrdersDescending(t *testing.T) {
	var entries []ScoreEntry
	entries = InsertHighScore(entries, ScoreEntry{PlayerName: "a", Score: 100})
	entries = InsertHighScore(entries, ScoreEntry{PlayerName: "b", Score: 500})
	entries = InsertHighScore(entries, ScoreEntry{PlayerName: "c", Score: 250})

	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].PlayerName)
	assert.Equal(t, "c", entries[1].PlayerName)
	assert.Equal(t, "a", entries[2].PlayerName)
}

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
