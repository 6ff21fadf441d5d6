package content

import (
	"context"
	"testing"

	"github.com/ninehex/nhsim/pkg/carving"
	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
	"github.com/ninehex/nhsim/pkg/themes"
)

func buildLevel(t *testing.T, seed uint64) *model.Level {
	t.Helper()
	cfg := dungeon.DefaultConfig()
	dl := model.DLevel{Dungeon: model.DungeonMain, Level: 3}
	r := rng.NewIsaac64(seed)
	lvl, err := dungeon.NewDefaultGenerator().Generate(context.Background(), dl, cfg, r)
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	carving.Carve(lvl, cfg, r)
	return lvl
}

func TestPlacePopulatesWithinBounds(t *testing.T) {
	lvl := buildLevel(t, 17)
	var objID model.ObjectID
	var monID model.MonsterID
	pass := NewDefaultPass(
		func() model.ObjectID { objID++; return objID },
		func() model.MonsterID { monID++; return monID },
	)
	theme := themes.DefaultPack().Theme(model.DungeonMain)
	r := rng.NewIsaac64(17)

	if err := pass.Place(context.Background(), lvl, theme, r); err != nil {
		t.Fatalf("Place() = %v", err)
	}

	for _, m := range lvl.Monsters {
		if !m.Pos.Valid() {
			t.Errorf("monster %d placed out of bounds at %v", m.ID, m.Pos)
		}
	}
	for _, o := range lvl.Objects {
		if !o.FloorPos().Valid() {
			t.Errorf("object %d placed out of bounds at %v", o.ID, o.FloorPos())
		}
	}
}

func TestPlaceRequiresTheme(t *testing.T) {
	lvl := buildLevel(t, 18)
	pass := NewDefaultPass(func() model.ObjectID { return 1 }, func() model.MonsterID { return 1 })
	if err := pass.Place(context.Background(), lvl, nil, rng.NewIsaac64(1)); err == nil {
		t.Error("expected an error when no theme is supplied")
	}
}

func TestPlaceDeterministic(t *testing.T) {
	theme := themes.DefaultPack().Theme(model.DungeonMain)

	run := func(seed uint64) *model.Level {
		lvl := buildLevel(t, seed)
		var objID model.ObjectID
		var monID model.MonsterID
		pass := NewDefaultPass(
			func() model.ObjectID { objID++; return objID },
			func() model.MonsterID { monID++; return monID },
		)
		if err := pass.Place(context.Background(), lvl, theme, rng.NewIsaac64(seed)); err != nil {
			t.Fatalf("Place() = %v", err)
		}
		return lvl
	}

	l1 := run(99)
	l2 := run(99)
	if len(l1.Monsters) != len(l2.Monsters) {
		t.Fatalf("monster counts differ across identical seeds: %d vs %d", len(l1.Monsters), len(l2.Monsters))
	}
	if len(l1.Objects) != len(l2.Objects) {
		t.Fatalf("object counts differ across identical seeds: %d vs %d", len(l1.Objects), len(l2.Objects))
	}
}
