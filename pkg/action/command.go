package action

import "github.com/ninehex/nhsim/pkg/model"

// Kind is the closed set of player commands.
type Kind int

const (
	CmdMove Kind = iota
	CmdRest
	CmdPickup
	CmdDrop
	CmdEat
	CmdQuaff
	CmdRead
	CmdZap
	CmdApply
	CmdWield
	CmdWear
	CmdTakeOff
	CmdPutOn
	CmdRemove
	CmdThrow
	CmdFire
	CmdKick
	CmdChat
	CmdOffer
	CmdSearch
	CmdJump
	CmdGoUp
	CmdGoDown
	CmdPray
	CmdSave
	CmdQuit
	CmdLook
	CmdInventory
	CmdHelp
	CmdHistory
)

// Command is one player input. Not every Kind uses every field: Dir is
// used by Move/Jump/Zap/Throw/Fire, Letter by every inventory-item
// command.
type Command struct {
	Kind   Kind
	Dir    model.Direction
	Letter rune
}

// Cost returns the action-point price of cmd: movement,
// attack, and search cost NORMAL_SPEED (12); quicker actions cost half
// that. pkg/engine consults this before invoking Dispatch.
func Cost(cmd Command) int32 {
	switch cmd.Kind {
	case CmdMove, CmdSearch, CmdJump, CmdThrow, CmdFire, CmdZap, CmdKick:
		return 12
	case CmdSave, CmdQuit, CmdLook, CmdInventory, CmdHelp, CmdHistory:
		return 0
	default:
		return 6
	}
}

// ResultKind is the closed set of outcomes an action can produce.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultNoTime
	ResultFailed
)

// Result is what Dispatch returns: a Kind plus, for ResultFailed, a
// player-facing reason message.
type Result struct {
	Kind   ResultKind
	Reason string
}

// Success builds a successful result: the only kind that advances game
// time.
func Success() Result { return Result{Kind: ResultSuccess} }

// NoTime builds a result meaning no action was committed (e.g. a bad
// target was supplied) and no time should pass.
func NoTime() Result { return Result{Kind: ResultNoTime} }

// Failed builds a user-facing failure with reason, consuming no time.
func Failed(reason string) Result { return Result{Kind: ResultFailed, Reason: reason} }
