// Package httpapi exposes the external command surface for
// out-of-process front-ends: submit a Command and receive an
// ActionResult plus new messages, query GameState read-only, and
// toggle/read RNG tracing. It is a transport binding over pkg/engine's
// Loop, not a rendering front-end.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/engine"
	"github.com/ninehex/nhsim/pkg/export"
	"github.com/ninehex/nhsim/pkg/logging"
	"github.com/ninehex/nhsim/pkg/script"
)

// Server binds a Loop to a set of gorilla/mux routes.
type Server struct {
	loop *engine.Loop
	mux  *mux.Router
}

// NewServer builds the route table around loop.
func NewServer(loop *engine.Loop) *Server {
	s := &Server{loop: loop, mux: mux.NewRouter()}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler by delegating to the mux router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/command", s.handleCommand).Methods(http.MethodPost)
	s.mux.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	s.mux.HandleFunc("/map", s.handleMap).Methods(http.MethodGet)
	s.mux.HandleFunc("/inventory", s.handleInventory).Methods(http.MethodGet)
	s.mux.HandleFunc("/messages", s.handleMessages).Methods(http.MethodGet)
	s.mux.HandleFunc("/trace", s.handleTraceGet).Methods(http.MethodGet)
	s.mux.HandleFunc("/trace/enable", s.handleTraceEnable).Methods(http.MethodPost)
}

// commandRequest is the JSON shape of a Command submission: a verb name
// matching pkg/script's VerbKinds table, plus optional direction and
// inventory letter, so the HTTP wire format stays in lockstep with the
// scripting DSL's vocabulary.
type commandRequest struct {
	Verb      string `json:"verb"`
	Direction string `json:"direction,omitempty"`
	Letter    string `json:"letter,omitempty"`
}

// commandResponse reports the outcome of one submitted Command plus every
// message appended to the log since before it ran.
type commandResponse struct {
	Result   string   `json:"result"`
	Reason   string   `json:"reason,omitempty"`
	End      string   `json:"end_condition"`
	Turns    uint64   `json:"turns"`
	Messages []string `json:"messages"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("httpapi: decoding command: %w", err))
		return
	}

	kind, ok := script.VerbKinds[req.Verb]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("httpapi: unknown verb %q", req.Verb))
		return
	}
	cmd := action.Command{Kind: kind}
	if req.Direction != "" {
		dir, ok := script.DirNames[req.Direction]
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Errorf("httpapi: unknown direction %q", req.Direction))
			return
		}
		cmd.Dir = dir
	}
	if req.Letter != "" {
		cmd.Letter = []rune(req.Letter)[0]
	}

	before := len(s.loop.GS.Messages)
	result, end := s.loop.Step(cmd)

	resp := commandResponse{
		Result:   resultName(result.Kind),
		Reason:   result.Reason,
		End:      end.String(),
		Turns:    s.loop.GS.Turns,
		Messages: append([]string(nil), s.loop.GS.Messages[before:]...),
	}
	writeJSON(w, http.StatusOK, resp)
}

func resultName(k action.ResultKind) string {
	switch k {
	case action.ResultSuccess:
		return "Success"
	case action.ResultNoTime:
		return "NoTime"
	default:
		return "Failed"
	}
}

// handleState returns the full GameState read-only.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeDeterministic(w, s.loop.GS)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	writeDeterministic(w, s.loop.GS.Current())
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	writeDeterministic(w, s.loop.GS.Inventory)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	writeDeterministic(w, s.loop.GS.Messages)
}

// handleTraceEnable turns on RNG call tracing.
func (s *Server) handleTraceEnable(w http.ResponseWriter, r *http.Request) {
	s.loop.GS.RNG.EnableTracing()
	writeJSON(w, http.StatusOK, map[string]bool{"tracing": true})
}

// handleTraceGet returns the trace recorded so far.
func (s *Server) handleTraceGet(w http.ResponseWriter, r *http.Request) {
	writeDeterministic(w, s.loop.GS.RNG.Trace())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("httpapi: encoding response", "error", err)
	}
}

func writeDeterministic(w http.ResponseWriter, v any) {
	data, err := export.MarshalDeterministic(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logging.Warn("httpapi: request error", "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
