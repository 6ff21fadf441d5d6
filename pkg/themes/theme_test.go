package themes

import (
	"testing"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

func TestDefaultPackValidates(t *testing.T) {
	p := DefaultPack()
	if err := p.Validate(); err != nil {
		t.Fatalf("default pack should validate, got %v", err)
	}
}

func TestThemeLookup(t *testing.T) {
	p := DefaultPack()
	if th := p.Theme(model.DungeonMain); th == nil {
		t.Error("expected a theme for the main dungeon")
	}
	if th := p.Theme(model.DungeonQuest); th != nil {
		t.Error("did not expect a theme for the quest branch in the default pack")
	}
}

func TestEncountersNearPicksClosest(t *testing.T) {
	th := DefaultPack().Theme(model.DungeonMain)
	table := th.EncountersNear(9)
	if table.Depth != 10 {
		t.Errorf("EncountersNear(9).Depth = %d, want 10", table.Depth)
	}
	table = th.EncountersNear(1)
	if table.Depth != 1 {
		t.Errorf("EncountersNear(1).Depth = %d, want 1", table.Depth)
	}
}

func TestSelectWeightedDeterministic(t *testing.T) {
	entries := []WeightedEntry{{TypeName: "a", Weight: 1}, {TypeName: "b", Weight: 9}}
	r1 := rng.NewIsaac64(123)
	r2 := rng.NewIsaac64(123)
	e1, ok1 := SelectWeighted(entries, r1)
	e2, ok2 := SelectWeighted(entries, r2)
	if !ok1 || !ok2 {
		t.Fatal("expected a selection from non-empty entries")
	}
	if e1.TypeName != e2.TypeName {
		t.Error("identical seeds should select the same entry")
	}
}

func TestSelectWeightedEmpty(t *testing.T) {
	if _, ok := SelectWeighted(nil, rng.NewIsaac64(1)); ok {
		t.Error("expected false for empty entries")
	}
}
