package world

import (
	"context"
	"testing"

	"github.com/ninehex/nhsim/pkg/carving"
	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

type groundMover struct{}

func (groundMover) CanOccupy(c model.Cell) bool { return c.Walkable() }

func buildLevel(t *testing.T, seed uint64) *model.Level {
	t.Helper()
	cfg := dungeon.DefaultConfig()
	dl := model.DLevel{Dungeon: model.DungeonMain, Level: 2}
	r := rng.NewIsaac64(seed)
	lvl, err := dungeon.NewDefaultGenerator().Generate(context.Background(), dl, cfg, r)
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	carving.Carve(lvl, cfg, r)
	return lvl
}

func TestWalkableRejectsOutOfBounds(t *testing.T) {
	lvl := buildLevel(t, 1)
	if Walkable(lvl, groundMover{}, model.NewPosition(-1, 0)) {
		t.Error("expected out-of-bounds position to be unwalkable")
	}
	if Walkable(lvl, groundMover{}, model.NewPosition(model.MapWidth, 0)) {
		t.Error("expected out-of-bounds position to be unwalkable")
	}
}

func TestWalkableMatchesCellWalkable(t *testing.T) {
	lvl := buildLevel(t, 1)
	for y := 0; y < model.MapHeight; y++ {
		for x := 0; x < model.MapWidth; x++ {
			p := model.NewPosition(x, y)
			got := Walkable(lvl, groundMover{}, p)
			want := lvl.At(p).Walkable()
			if got != want {
				t.Fatalf("Walkable(%s) = %v, want %v", p, got, want)
			}
		}
	}
}

func TestNeighborsStaysInBounds(t *testing.T) {
	for _, p := range []model.Position{{X: 0, Y: 0}, {X: model.MapWidth - 1, Y: model.MapHeight - 1}} {
		for _, n := range Neighbors(p) {
			if !n.Valid() {
				t.Errorf("Neighbors(%s) produced out-of-bounds %s", p, n)
			}
		}
	}
}

func TestPassableRespectsOccupancy(t *testing.T) {
	lvl := buildLevel(t, 2)
	room := lvl.Rooms[0]
	pos := room.Center()
	lvl.Monsters = append(lvl.Monsters, &model.Monster{ID: 1, Pos: pos, HP: 5, State: model.StateAlive})

	if Passable(lvl, groundMover{}, pos, 2) {
		t.Error("expected position occupied by another monster to be impassable")
	}
	if !Passable(lvl, groundMover{}, pos, 1) {
		t.Error("expected a monster to be able to pass its own position")
	}
}

func TestDigConvertsStoneToCorridor(t *testing.T) {
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 1})
	pos := model.NewPosition(5, 5)
	if err := Dig(lvl, pos); err != nil {
		t.Fatalf("Dig() = %v", err)
	}
	if lvl.At(pos).Type != model.CellCorridor {
		t.Errorf("after Dig, cell type = %v, want CellCorridor", lvl.At(pos).Type)
	}
}

func TestDigRejectsNonDiggable(t *testing.T) {
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 1})
	pos := model.NewPosition(5, 5)
	lvl.At(pos).Type = model.CellDoor
	if err := Dig(lvl, pos); err == nil {
		t.Error("expected an error digging a door")
	}
}

func TestDoorLockOpenInvariants(t *testing.T) {
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 1})
	pos := model.NewPosition(5, 5)
	lvl.At(pos).Type = model.CellDoor

	if err := LockDoor(lvl, pos); err != nil {
		t.Fatalf("LockDoor() = %v", err)
	}
	if err := OpenDoor(lvl, pos); err == nil {
		t.Error("expected OpenDoor to fail on a locked door")
	}
	c := lvl.At(pos)
	c.Flags &^= model.CellFlagLocked
	if err := OpenDoor(lvl, pos); err != nil {
		t.Fatalf("OpenDoor() = %v", err)
	}
	if err := LockDoor(lvl, pos); err == nil {
		t.Error("expected LockDoor to fail on an open door")
	}
	if err := CloseDoor(lvl, pos); err != nil {
		t.Fatalf("CloseDoor() = %v", err)
	}
	if err := LockDoor(lvl, pos); err != nil {
		t.Fatalf("LockDoor() after close = %v", err)
	}
}

func TestBreakDoorUnblocksSight(t *testing.T) {
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 1})
	pos := model.NewPosition(5, 5)
	lvl.At(pos).Type = model.CellDoor

	a := model.NewPosition(3, 5)
	b := model.NewPosition(7, 5)
	for x := int8(3); x <= 7; x++ {
		if x == 5 {
			continue
		}
		lvl.At(model.NewPosition(int(x), 5)).Type = model.CellRoom
	}

	if Visible(lvl, a, b) {
		t.Error("expected a closed door to block sight")
	}
	if err := BreakDoor(lvl, pos); err != nil {
		t.Fatalf("BreakDoor() = %v", err)
	}
	if !Visible(lvl, a, b) {
		t.Error("expected a broken door to no longer block sight")
	}
}

func TestVisibleBlockedByWall(t *testing.T) {
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 1})
	for x := int8(0); x < 10; x++ {
		lvl.At(model.NewPosition(int(x), 5)).Type = model.CellRoom
	}
	lvl.At(model.NewPosition(5, 5)).Type = model.CellWall

	if Visible(lvl, model.NewPosition(0, 5), model.NewPosition(9, 5)) {
		t.Error("expected a wall to block sight across it")
	}
}

func TestVisibleSetIncludesOrigin(t *testing.T) {
	lvl := buildLevel(t, 3)
	origin := lvl.Rooms[0].Center()
	set := VisibleSet(lvl, origin, 5)
	if !set[origin] {
		t.Error("expected VisibleSet to include the origin")
	}
}

func TestFindPathWithinSameRoom(t *testing.T) {
	lvl := buildLevel(t, 4)
	room := lvl.Rooms[0]
	start := model.Position{X: room.X1, Y: room.Y1}
	goal := model.Position{X: room.X2, Y: room.Y2}

	path := FindPath(lvl, groundMover{}, start, goal)
	if path == nil {
		t.Fatal("expected a path within a single room")
	}
	if !path[0].Equal(start) || !path[len(path)-1].Equal(goal) {
		t.Errorf("path endpoints = %v..%v, want %s..%s", path[0], path[len(path)-1], start, goal)
	}
	for i := 1; i < len(path); i++ {
		if !path[i-1].Adjacent(path[i]) {
			t.Errorf("path step %d->%d (%s->%s) is not adjacent", i-1, i, path[i-1], path[i])
		}
	}
}

func TestFindPathAcrossLevel(t *testing.T) {
	lvl := buildLevel(t, 5)
	if len(lvl.Rooms) < 2 {
		t.Skip("need at least two rooms")
	}
	start := lvl.Rooms[0].Center()
	goal := lvl.Rooms[len(lvl.Rooms)-1].Center()

	path := FindPath(lvl, groundMover{}, start, goal)
	if path == nil {
		t.Fatal("expected a path to exist between two connected rooms")
	}
	for _, p := range path {
		if !Walkable(lvl, groundMover{}, p) && !p.Equal(goal) {
			t.Errorf("path passes through unwalkable position %s", p)
		}
	}
}

func TestFindPathUnreachableReturnsNil(t *testing.T) {
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 1})
	start := model.NewPosition(0, 0)
	goal := model.NewPosition(10, 10)
	lvl.At(start).Type = model.CellRoom
	lvl.At(goal).Type = model.CellRoom
	if path := FindPath(lvl, groundMover{}, start, goal); path != nil {
		t.Errorf("expected nil path across all-stone terrain, got %v", path)
	}
}

func TestFindPathSamePosition(t *testing.T) {
	lvl := buildLevel(t, 6)
	p := lvl.Rooms[0].Center()
	path := FindPath(lvl, groundMover{}, p, p)
	if len(path) != 1 || !path[0].Equal(p) {
		t.Errorf("FindPath(p, p) = %v, want single-element path at p", path)
	}
}
