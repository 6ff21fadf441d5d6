package action

import "github.com/ninehex/nhsim/pkg/model"

// Dispatch routes cmd through the Command -> ActionResult pipeline.
// Throw/Fire/Kick/Chat/Offer are left as Failed("unimplemented") rather
// than silently succeeding, since their effect tables are only partially
// settled.
func Dispatch(gs *model.GameState, cmd Command) Result {
	switch cmd.Kind {
	case CmdMove:
		return doMove(gs, cmd.Dir)
	case CmdRest:
		return doRest(gs)
	case CmdSearch:
		return doSearch(gs)
	case CmdJump:
		return doJumpDir(gs, cmd.Dir)
	case CmdPickup:
		return doPickup(gs)
	case CmdDrop:
		return doDrop(gs, cmd.Letter)
	case CmdEat:
		return doEat(gs, cmd.Letter)
	case CmdQuaff:
		return doQuaff(gs, cmd.Letter)
	case CmdRead:
		return doRead(gs, cmd.Letter)
	case CmdZap:
		return doZap(gs, cmd.Letter, cmd.Dir)
	case CmdApply:
		return doApply(gs, cmd.Letter)
	case CmdWield:
		return doWield(gs, cmd.Letter)
	case CmdWear:
		return doWear(gs, cmd.Letter)
	case CmdTakeOff:
		return doTakeOff(gs, cmd.Letter)
	case CmdPutOn:
		return doPutOn(gs, cmd.Letter)
	case CmdRemove:
		return doRemove(gs, cmd.Letter)
	case CmdGoUp:
		return doGoUp(gs)
	case CmdGoDown:
		return doGoDown(gs)
	case CmdPray:
		return doPray(gs)
	case CmdThrow, CmdFire, CmdKick, CmdChat, CmdOffer:
		return Failed("unimplemented")
	case CmdSave, CmdQuit, CmdLook, CmdInventory, CmdHelp, CmdHistory:
		return NoTime()
	default:
		return Failed("unknown command")
	}
}
