package carving

import (
	"context"
	"testing"

	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

func generatedLevel(t *testing.T, seed uint64) (*model.Level, dungeon.Config) {
	t.Helper()
	cfg := dungeon.DefaultConfig()
	dl := model.DLevel{Dungeon: model.DungeonMain, Level: 1}
	lvl, err := dungeon.NewDefaultGenerator().Generate(context.Background(), dl, cfg, rng.NewIsaac64(seed))
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	return lvl, cfg
}

func TestGenerateWallsSurroundsRooms(t *testing.T) {
	lvl, _ := generatedLevel(t, 1)
	GenerateWalls(lvl)

	for _, room := range lvl.Rooms {
		for x := room.X1 - 1; x <= room.X2+1; x++ {
			for y := room.Y1 - 1; y <= room.Y2+1; y++ {
				p := model.Position{X: x, Y: y}
				if !p.Valid() || room.Contains(p) {
					continue
				}
				cellType := lvl.At(p).Type
				if cellType == model.CellStone {
					t.Errorf("cell %v adjacent to room should not remain bare stone", p)
				}
			}
		}
	}
}

func TestPlaceDoorsOnlyOnPerimeter(t *testing.T) {
	lvl, cfg := generatedLevel(t, 2)
	GenerateWalls(lvl)
	PlaceDoors(lvl, cfg, rng.NewIsaac64(2))

	for x := 0; x < model.MapWidth; x++ {
		for y := 0; y < model.MapHeight; y++ {
			p := model.Position{X: int8(x), Y: int8(y)}
			cellType := lvl.At(p).Type
			if cellType != model.CellDoor && cellType != model.CellSecretDoor {
				continue
			}
			onPerimeter := false
			for _, room := range lvl.Rooms {
				if (p.X == room.X1-1 || p.X == room.X2+1) && p.Y >= room.Y1 && p.Y <= room.Y2 {
					onPerimeter = true
				}
				if (p.Y == room.Y1-1 || p.Y == room.Y2+1) && p.X >= room.X1 && p.X <= room.X2 {
					onPerimeter = true
				}
			}
			if !onPerimeter {
				t.Errorf("door at %v is not on any room's perimeter", p)
			}
		}
	}
}

func TestCarveDeterministic(t *testing.T) {
	cfg := dungeon.DefaultConfig()
	dl := model.DLevel{Dungeon: model.DungeonMain, Level: 1}

	lvl1, _ := dungeon.NewDefaultGenerator().Generate(context.Background(), dl, cfg, rng.NewIsaac64(5))
	lvl2, _ := dungeon.NewDefaultGenerator().Generate(context.Background(), dl, cfg, rng.NewIsaac64(5))

	Carve(lvl1, cfg, rng.NewIsaac64(5))
	Carve(lvl2, cfg, rng.NewIsaac64(5))

	if lvl1.Cells != lvl2.Cells {
		t.Error("carving the same generated level with the same seed should be deterministic")
	}
}
