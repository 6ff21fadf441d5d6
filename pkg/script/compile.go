package script

import (
	"fmt"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/model"
)

var VerbKinds = map[string]action.Kind{
	"move":      action.CmdMove,
	"rest":      action.CmdRest,
	"pickup":    action.CmdPickup,
	"drop":      action.CmdDrop,
	"eat":       action.CmdEat,
	"quaff":     action.CmdQuaff,
	"read":      action.CmdRead,
	"zap":       action.CmdZap,
	"apply":     action.CmdApply,
	"wield":     action.CmdWield,
	"wear":      action.CmdWear,
	"takeoff":   action.CmdTakeOff,
	"puton":     action.CmdPutOn,
	"remove":    action.CmdRemove,
	"throw":     action.CmdThrow,
	"fire":      action.CmdFire,
	"kick":      action.CmdKick,
	"chat":      action.CmdChat,
	"offer":     action.CmdOffer,
	"search":    action.CmdSearch,
	"jump":      action.CmdJump,
	"up":        action.CmdGoUp,
	"down":      action.CmdGoDown,
	"pray":      action.CmdPray,
	"save":      action.CmdSave,
	"quit":      action.CmdQuit,
	"look":      action.CmdLook,
	"inventory": action.CmdInventory,
}

var DirNames = map[string]model.Direction{
	"n": model.DirN, "ne": model.DirNE, "e": model.DirE, "se": model.DirSE,
	"s": model.DirS, "sw": model.DirSW, "w": model.DirW, "nw": model.DirNW,
}

// Compile converts a Program into the []action.Command sequence it
// describes. A statement's Count repeats the resulting Command that
// many times (default 1); "rest" without a direction or letter always
// uses DirSelf.
func Compile(p *Program) ([]action.Command, error) {
	var cmds []action.Command
	for _, st := range p.Statements {
		cmd, err := compileStatement(st)
		if err != nil {
			return nil, err
		}
		n := 1
		if st.Count != nil {
			n = *st.Count
		}
		for i := 0; i < n; i++ {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func compileStatement(st *Statement) (action.Command, error) {
	kind, ok := VerbKinds[st.Verb]
	if !ok {
		return action.Command{}, fmt.Errorf("script: unknown verb %q", st.Verb)
	}

	cmd := action.Command{Kind: kind}
	if kind == action.CmdRest {
		cmd.Dir = model.DirSelf
	}
	if st.Direction != nil {
		dir, ok := DirNames[*st.Direction]
		if !ok {
			return action.Command{}, fmt.Errorf("script: unknown direction %q", *st.Direction)
		}
		cmd.Dir = dir
	}
	if st.Letter != nil {
		r := []rune(*st.Letter)[0]
		cmd.Letter = r
	}
	return cmd, nil
}

// CompileSource parses and compiles source in one step.
func CompileSource(source string) ([]action.Command, error) {
	p, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("script: parse error: %w", err)
	}
	return Compile(p)
}
