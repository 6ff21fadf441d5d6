package action

import (
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/world"
)

// searchBonus returns the player's flat reduction to the search roll's
// divisor, currently granted only by PropSearching (a ring of searching
// or similar).
func searchBonus(you *model.You) uint32 {
	if you.Properties != nil && you.Properties.Has(model.PropSearching) {
		return 1
	}
	return 0
}

// revealAt reveals whatever hidden feature (if any) sits at pos: a secret
// door, a secret corridor, a hiding monster, or an unseen trap. It
// reports whether anything was found.
func revealAt(gs *model.GameState, lvl *model.Level, pos model.Position) bool {
	switch lvl.At(pos).Type {
	case model.CellSecretDoor:
		if world.RevealSecretDoor(lvl, pos) == nil {
			gs.Log("you find a hidden door.")
			return true
		}
	case model.CellSecretCorridor:
		if world.SetTerrain(lvl, pos, model.CellCorridor) == nil {
			gs.Log("you find a hidden passage.")
			return true
		}
	}
	if mon := lvl.MonsterAt(pos); mon != nil && mon.State.Has(model.StateHiding) {
		mon.State &^= model.StateHiding
		gs.Log("you find a hidden monster!")
		return true
	}
	if trap := lvl.TrapAt(pos); trap != nil && trap.Hidden {
		trap.Hidden = false
		trap.Seen = true
		gs.Log("you find a trap!")
		return true
	}
	return false
}

// doSearch implements dosearch0(autosearch=false):
// for each of the player's 8 neighbors, a chance of rnl(7-search_bonus,
// luck) == 0 reveals whatever is hidden there.
func doSearch(gs *model.GameState) Result {
	you := &gs.Player
	lvl := gs.Current()
	bonus := searchBonus(you)
	divisor := uint32(7)
	if bonus < divisor {
		divisor -= bonus
	} else {
		divisor = 1
	}

	for _, n := range world.Neighbors(you.Pos) {
		if gs.RNG.Rnl(divisor, int32(you.Luck)) == 0 {
			revealAt(gs, lvl, n)
		}
	}
	return Success()
}

// findItRadius is the bolt-limit radius used for magical search.
const findItRadius = 8

// FindIt performs a magical search across findItRadius, used by scrolls
// of magic mapping / certain spells rather than the ordinary Search
// command, so it is exported for callers outside this package.
func FindIt(gs *model.GameState) int {
	you := &gs.Player
	lvl := gs.Current()
	found := 0
	for dy := -findItRadius; dy <= findItRadius; dy++ {
		for dx := -findItRadius; dx <= findItRadius; dx++ {
			p := model.NewPosition(int(you.Pos.X)+dx, int(you.Pos.Y)+dy)
			if !p.Valid() || you.Pos.ChebyshevDistance(p) > findItRadius {
				continue
			}
			if gs.RNG.Rnl(7, int32(you.Luck)) == 0 && revealAt(gs, lvl, p) {
				found++
			}
		}
	}
	return found
}
