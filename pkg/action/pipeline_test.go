package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/model"
)

func freshState() *model.GameState {
	gs := model.NewGameState(1)
	lvl := model.NewLevel(model.DLevel{Dungeon: model.DungeonMain, Level: 0})
	for x := 5; x <= 10; x++ {
		for y := 2; y <= 6; y++ {
			lvl.At(model.NewPosition(x, y)).Type = model.CellRoom
		}
	}
	gs.Levels[lvl.DLevel] = lvl
	gs.CurrentLevel = lvl.DLevel
	gs.Player.Pos = model.NewPosition(6, 3)
	gs.Player.HP, gs.Player.HPMax = 12, 12
	gs.Player.Attributes[model.AttrStr] = model.AttributePair{Current: 16, Max: 16}
	gs.Player.Attributes[model.AttrCon] = model.AttributePair{Current: 14, Max: 14}
	return gs
}

func TestDoMoveIntoOpenFloor(t *testing.T) {
	gs := freshState()
	res := Dispatch(gs, Command{Kind: CmdMove, Dir: model.DirE})
	require.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, model.NewPosition(7, 3), gs.Player.Pos)
}

func TestDoMoveOutOfBoundsFails(t *testing.T) {
	gs := freshState()
	gs.Player.Pos = model.NewPosition(0, 0)
	res := Dispatch(gs, Command{Kind: CmdMove, Dir: model.DirNW})
	assert.Equal(t, ResultFailed, res.Kind)
}

func TestPickupAndDrop(t *testing.T) {
	gs := freshState()
	obj := &model.Object{ID: 1, Class: model.ClassWeapon, Quantity: 1, Weight: 10, Name: "dagger"}
	obj.SetFloorPos(gs.Player.Pos)
	gs.Current().Objects = append(gs.Current().Objects, obj)

	res := Dispatch(gs, Command{Kind: CmdPickup})
	require.Equal(t, ResultSuccess, res.Kind)
	require.Len(t, gs.Inventory, 1)

	gs.Inventory[0].InvLetter = 'a'
	res = Dispatch(gs, Command{Kind: CmdDrop, Letter: 'a'})
	require.Equal(t, ResultSuccess, res.Kind)
	assert.Empty(t, gs.Inventory)
	assert.Len(t, gs.Current().Objects, 1)
}

func TestWieldRequiresWeaponClass(t *testing.T) {
	gs := freshState()
	armor := &model.Object{ID: 2, Class: model.ClassArmor, Quantity: 1, InvLetter: 'b'}
	gs.Inventory = append(gs.Inventory, armor)
	res := Dispatch(gs, Command{Kind: CmdWield, Letter: 'b'})
	assert.Equal(t, ResultFailed, res.Kind)
}

func TestJumpTwoCellsAcrossOpenFloor(t *testing.T) {
	gs := freshState()
	res := Dispatch(gs, Command{Kind: CmdJump, Dir: model.DirE})
	require.Equal(t, ResultSuccess, res.Kind)
	assert.Equal(t, model.NewPosition(8, 3), gs.Player.Pos)
}

func TestJumpBlockedByWall(t *testing.T) {
	gs := freshState()
	gs.Current().At(model.NewPosition(7, 3)).Type = model.CellWall
	res := Dispatch(gs, Command{Kind: CmdJump, Dir: model.DirE})
	assert.Equal(t, ResultFailed, res.Kind)
}

func TestUnimplementedCommandsFail(t *testing.T) {
	gs := freshState()
	for _, k := range []Kind{CmdThrow, CmdFire, CmdKick, CmdChat, CmdOffer} {
		res := Dispatch(gs, Command{Kind: k})
		assert.Equal(t, ResultFailed, res.Kind)
		assert.Equal(t, "unimplemented", res.Reason)
	}
}

func TestPray(t *testing.T) {
	gs := freshState()
	gs.Player.HP = 1
	res := Dispatch(gs, Command{Kind: CmdPray})
	require.Equal(t, ResultSuccess, res.Kind)
	res = Dispatch(gs, Command{Kind: CmdPray})
	assert.Equal(t, ResultFailed, res.Kind)
}
