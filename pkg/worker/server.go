package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/dungeon"
	"github.com/ninehex/nhsim/pkg/engine"
	"github.com/ninehex/nhsim/pkg/export"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// Server drives an engine.Loop from the worker protocol, so
// `cmd/nhsim -worker` can stand in for a C reference build in a parity
// run that talks to both over the same wire format.
type Server struct {
	loop  *engine.Loop
	dlCfg dungeon.Config
	out   *bufio.Writer
}

// NewServer wraps loop for protocol-driven play.
func NewServer(loop *engine.Loop) *Server {
	return &Server{loop: loop, dlCfg: dungeon.DefaultConfig()}
}

var moveKeys = map[byte]model.Direction{
	'h': model.DirW, 'j': model.DirS, 'k': model.DirN, 'l': model.DirE,
	'y': model.DirNW, 'u': model.DirNE, 'b': model.DirSW, 'n': model.DirSE,
}

// Serve reads newline-delimited JSON Requests from r and writes
// "JSON:"-prefixed Responses to w until Exit or EOF.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	s.out = bufio.NewWriter(w)
	defer s.out.Flush()

	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.reply(Response{Type: RespError, Str: err.Error()})
			continue
		}
		resp := s.handle(req)
		s.reply(resp)
		s.out.Flush()
		if req.Type == ReqExit {
			return nil
		}
	}
	return sc.Err()
}

func (s *Server) reply(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		fmt.Fprintf(s.out, "%s{\"type\":\"Error\",\"str\":%q}\n", responseLinePrefix, err.Error())
		return
	}
	fmt.Fprintf(s.out, "%s%s\n", responseLinePrefix, data)
}

func (s *Server) handle(req Request) Response {
	gs := s.loop.GS
	switch req.Type {
	case ReqInit:
		gs.Player.Role = req.Role
		gs.Player.Race = req.Race
		gs.Player.Gender = req.Gender
		gs.Player.Alignment = req.Align
		return Response{Type: RespOk}

	case ReqReset:
		*gs = *model.NewGameState(req.Seed)
		return Response{Type: RespOk}

	case ReqResetRng:
		gs.RNG = rngFromSeed(req.Seed)
		return Response{Type: RespOk}

	case ReqGenerateLevel:
		lvl, err := dungeon.NewDefaultGenerator().Generate(context.Background(), gs.CurrentLevel, s.dlCfg, gs.RNG)
		if err != nil {
			return Response{Type: RespError, Str: err.Error()}
		}
		gs.Levels[lvl.DLevel] = lvl
		return Response{Type: RespOk}

	case ReqExecCmd:
		return s.execChar(req.Cmd)

	case ReqExecCmdDir:
		cmd := action.Command{Kind: action.CmdMove, Dir: dirFromDelta(req.Dx, req.Dy)}
		res := action.Dispatch(gs, cmd)
		if res.Kind == action.ResultFailed {
			return Response{Type: RespError, Str: res.Reason}
		}
		return Response{Type: RespOk}

	case ReqGetStateJson:
		return s.jsonResponse(gs)

	case ReqGetMapJson:
		return s.jsonResponse(gs.Current())

	case ReqGetInventoryJson:
		return s.jsonResponse(gs.Inventory)

	case ReqGetMonstersJson:
		return s.jsonResponse(gs.Current().Monsters)

	case ReqEnableRngTracing:
		gs.RNG.EnableTracing()
		return Response{Type: RespOk}

	case ReqGetRngTrace:
		return s.jsonResponse(gs.RNG.Trace())

	case ReqSetDLevel:
		gs.CurrentLevel = model.DLevel{Dungeon: model.DungeonID(req.Dnum), Level: int(req.Dlevel)}
		return Response{Type: RespOk}

	case ReqExit:
		return Response{Type: RespOk}

	default:
		return Response{Type: RespError, Str: fmt.Sprintf("unknown request type %q", req.Type)}
	}
}

func (s *Server) execChar(ch string) Response {
	if ch == "" {
		return Response{Type: RespError, Str: "ExecCmd: empty cmd"}
	}
	b := ch[0]
	if dir, ok := moveKeys[b]; ok {
		res := action.Dispatch(s.loop.GS, action.Command{Kind: action.CmdMove, Dir: dir})
		if res.Kind == action.ResultFailed {
			return Response{Type: RespError, Str: res.Reason}
		}
		return Response{Type: RespOk}
	}
	switch b {
	case '.':
		action.Dispatch(s.loop.GS, action.Command{Kind: action.CmdRest, Dir: model.DirSelf})
		return Response{Type: RespOk}
	case 's':
		action.Dispatch(s.loop.GS, action.Command{Kind: action.CmdSearch})
		return Response{Type: RespOk}
	case ',':
		action.Dispatch(s.loop.GS, action.Command{Kind: action.CmdPickup})
		return Response{Type: RespOk}
	default:
		return Response{Type: RespError, Str: fmt.Sprintf("ExecCmd: unmapped key %q", ch)}
	}
}

func (s *Server) jsonResponse(v any) Response {
	data, err := export.MarshalDeterministic(v)
	if err != nil {
		return Response{Type: RespError, Str: err.Error()}
	}
	return Response{Type: RespStr, Str: string(data)}
}

func dirFromDelta(dx, dy int32) model.Direction {
	for _, d := range model.AllDirections {
		ddx, ddy := d.Delta()
		if int32(ddx) == dx && int32(ddy) == dy {
			return d
		}
	}
	return model.DirNone
}

func rngFromSeed(seed uint64) *rng.Isaac64 {
	return rng.NewIsaac64(seed)
}
