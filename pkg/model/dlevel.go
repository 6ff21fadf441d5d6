package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DungeonID identifies one of the eight predefined dungeons.
type DungeonID uint8

const (
	DungeonMain DungeonID = iota
	DungeonGehennom
	DungeonMines
	DungeonSokoban
	DungeonQuest
	DungeonFortLudios
	DungeonVladsTower
	DungeonEndgame

	dungeonCount
)

// String returns the dungeon's display name.
func (d DungeonID) String() string {
	switch d {
	case DungeonMain:
		return "The Dungeons of Doom"
	case DungeonGehennom:
		return "Gehennom"
	case DungeonMines:
		return "The Gnomish Mines"
	case DungeonSokoban:
		return "Sokoban"
	case DungeonQuest:
		return "Quest"
	case DungeonFortLudios:
		return "Fort Ludios"
	case DungeonVladsTower:
		return "Vlad's Tower"
	case DungeonEndgame:
		return "The Elemental Planes"
	default:
		return fmt.Sprintf("Dungeon(%d)", d)
	}
}

// DungeonInfo describes the static shape of one dungeon branch: how many
// levels it has and where it starts in the flat "ledger" numbering used for
// global depth comparisons and high scores.
type DungeonInfo struct {
	ID          DungeonID
	Name        string
	Depth       int // number of levels in this branch
	LedgerStart int // first ledger number occupied by this branch
	BonesOK     bool
}

// DungeonSystem enumerates every dungeon and the branches connecting them.
// It is built once (NewDungeonSystem) and treated as read-only afterward.
type DungeonSystem struct {
	Dungeons [dungeonCount]DungeonInfo
	Branches []BranchLink
}

// BranchKind is the mechanism connecting two dungeons.
type BranchKind int

const (
	BranchStairs BranchKind = iota
	BranchPortal
	BranchNoEnd1
	BranchNoEnd2
)

// BranchLink connects an entry DLevel in one dungeon to an entry DLevel in
// another via a BranchKind.
type BranchLink struct {
	Kind BranchKind
	From DLevel
	To   DLevel
}

// NewDungeonSystem builds the canonical eight-dungeon, seven-branch layout.
// Ledger numbering follows the reference: the main dungeon occupies
// ledger slots [0, mainDepth), and every other branch is appended after it
// in declaration order.
//
// The reference engine places Fort Ludios via a random range around
// dlevel 11-14; this implementation pins it to dlevel 12 as a single
// representative branch point.
func NewDungeonSystem() *DungeonSystem {
	const (
		mainDepth     = 30
		gehennomDepth = 22
		minesDepth    = 15
		sokobanDepth  = 6
		questDepth    = 5
		fortDepth     = 1
		towerDepth    = 3
		endgameDepth  = 9
	)

	ds := &DungeonSystem{}
	ledger := 0
	set := func(id DungeonID, name string, depth int, bones bool) {
		ds.Dungeons[id] = DungeonInfo{ID: id, Name: name, Depth: depth, LedgerStart: ledger, BonesOK: bones}
		ledger += depth
	}
	set(DungeonMain, DungeonMain.String(), mainDepth, true)
	set(DungeonGehennom, DungeonGehennom.String(), gehennomDepth, true)
	set(DungeonMines, DungeonMines.String(), minesDepth, true)
	set(DungeonSokoban, DungeonSokoban.String(), sokobanDepth, false)
	set(DungeonQuest, DungeonQuest.String(), questDepth, false)
	set(DungeonFortLudios, DungeonFortLudios.String(), fortDepth, false)
	set(DungeonVladsTower, DungeonVladsTower.String(), towerDepth, false)
	set(DungeonEndgame, DungeonEndgame.String(), endgameDepth, false)

	ds.Branches = []BranchLink{
		{Kind: BranchStairs, From: DLevel{Dungeon: DungeonMain, Level: 2}, To: DLevel{Dungeon: DungeonMines, Level: 0}},
		{Kind: BranchStairs, From: DLevel{Dungeon: DungeonMain, Level: 9}, To: DLevel{Dungeon: DungeonSokoban, Level: 0}},
		{Kind: BranchPortal, From: DLevel{Dungeon: DungeonMain, Level: 5}, To: DLevel{Dungeon: DungeonQuest, Level: 0}},
		{Kind: BranchPortal, From: DLevel{Dungeon: DungeonMain, Level: 12}, To: DLevel{Dungeon: DungeonFortLudios, Level: 0}},
		{Kind: BranchStairs, From: DLevel{Dungeon: DungeonMain, Level: mainDepth - 1}, To: DLevel{Dungeon: DungeonGehennom, Level: 0}},
		{Kind: BranchNoEnd1, From: DLevel{Dungeon: DungeonGehennom, Level: gehennomDepth - 3}, To: DLevel{Dungeon: DungeonVladsTower, Level: 0}},
		{Kind: BranchNoEnd2, From: DLevel{Dungeon: DungeonGehennom, Level: gehennomDepth - 1}, To: DLevel{Dungeon: DungeonEndgame, Level: 0}},
	}
	return ds
}

// Ledger returns the flat global depth number for dl, or -1 if dl is out
// of range for its dungeon.
func (ds *DungeonSystem) Ledger(dl DLevel) int {
	info := ds.Dungeons[dl.Dungeon]
	if dl.Level < 0 || dl.Level >= info.Depth {
		return -1
	}
	return info.LedgerStart + dl.Level
}

// BonesEligible reports whether a dungeon allows bones files.
func (ds *DungeonSystem) BonesEligible(dl DLevel) bool {
	return ds.Dungeons[dl.Dungeon].BonesOK
}

// DLevel identifies a unique map within the multi-branch dungeon system.
type DLevel struct {
	Dungeon DungeonID `json:"dungeon_num"`
	Level   int       `json:"level_num"`
}

// String renders dl as "dungeon:level".
func (dl DLevel) String() string {
	return fmt.Sprintf("%s:%d", dl.Dungeon, dl.Level)
}

// MarshalText renders dl as "<dungeon_num>:<level_num>", letting
// encoding/json use DLevel as a map key (GameState.Levels is
// map[DLevel]*Level) while keeping the save format's map ordering
// deterministic, since encoding/json sorts string-keyed maps before
// encoding.
func (dl DLevel) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d:%d", dl.Dungeon, dl.Level)), nil
}

// UnmarshalText parses the "<dungeon_num>:<level_num>" form MarshalText
// produces.
func (dl *DLevel) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid DLevel key %q", text)
	}
	dungeon, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid DLevel dungeon %q: %w", parts[0], err)
	}
	level, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid DLevel level %q: %w", parts[1], err)
	}
	dl.Dungeon = DungeonID(dungeon)
	dl.Level = level
	return nil
}
