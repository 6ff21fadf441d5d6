package worker

import "github.com/ninehex/nhsim/pkg/action"

// AsRequest encodes cmd as the Request a convergence-gate harness sends
// to a worker subprocess, using ExecCmdDir for movement (so diagonals
// never depend on a keymap) and ExecCmd for the small set of other
// actions both this server and a C reference worker understand. ok is
// false for command kinds this side leaves unimplemented,
// which the harness should simply not replay against the reference.
func AsRequest(cmd action.Command) (Request, bool) {
	if cmd.Kind == action.CmdMove {
		dx, dy := cmd.Dir.Delta()
		return Request{Type: ReqExecCmdDir, Dx: int32(dx), Dy: int32(dy)}, true
	}
	switch cmd.Kind {
	case action.CmdRest:
		return Request{Type: ReqExecCmd, Cmd: "."}, true
	case action.CmdSearch:
		return Request{Type: ReqExecCmd, Cmd: "s"}, true
	case action.CmdPickup:
		return Request{Type: ReqExecCmd, Cmd: ","}, true
	default:
		return Request{}, false
	}
}
