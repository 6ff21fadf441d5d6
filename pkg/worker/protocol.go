// Package worker implements the C-reference worker wire protocol: a
// newline-delimited JSON request/response exchange over a
// subprocess's stdin/stdout, used by cmd/nhparity and cmd/nhsim to drive both this
// simulation and a C reference build through an identical interface.
package worker

// RequestType discriminates the tagged Request union.
type RequestType string

const (
	ReqInit             RequestType = "Init"
	ReqReset            RequestType = "Reset"
	ReqResetRng         RequestType = "ResetRng"
	ReqGenerateLevel    RequestType = "GenerateLevel"
	ReqExecCmd          RequestType = "ExecCmd"
	ReqExecCmdDir       RequestType = "ExecCmdDir"
	ReqGetStateJson     RequestType = "GetStateJson"
	ReqGetMapJson       RequestType = "GetMapJson"
	ReqGetInventoryJson RequestType = "GetInventoryJson"
	ReqGetMonstersJson  RequestType = "GetMonstersJson"
	ReqEnableRngTracing RequestType = "EnableRngTracing"
	ReqGetRngTrace      RequestType = "GetRngTrace"
	ReqSetDLevel        RequestType = "SetDLevel"
	ReqExit             RequestType = "Exit"
)

// Request is one line sent to the worker. Only the fields relevant to
// Type are populated; the rest are zero values.
type Request struct {
	Type   RequestType `json:"type"`
	Role   string      `json:"role,omitempty"`
	Race   string      `json:"race,omitempty"`
	Gender string      `json:"gender,omitempty"`
	Align  string      `json:"align,omitempty"`
	Seed   uint64      `json:"seed,omitempty"`
	Cmd    string      `json:"cmd,omitempty"`
	Dx     int32       `json:"dx,omitempty"`
	Dy     int32       `json:"dy,omitempty"`
	Dnum   int32       `json:"dnum,omitempty"`
	Dlevel int32       `json:"dlevel,omitempty"`
}

// ResponseType discriminates the tagged Response union: Ok, Int, Pos,
// Long, String, Bool, or Error.
type ResponseType string

const (
	RespOk    ResponseType = "Ok"
	RespInt   ResponseType = "Int"
	RespPos   ResponseType = "Pos"
	RespLong  ResponseType = "Long"
	RespStr   ResponseType = "String"
	RespBool  ResponseType = "Bool"
	RespError ResponseType = "Error"
)

// Response is one "JSON:"-prefixed line read back from the worker.
type Response struct {
	Type ResponseType `json:"type"`
	Int  int32        `json:"int,omitempty"`
	X    int32        `json:"x,omitempty"`
	Y    int32        `json:"y,omitempty"`
	Long uint64       `json:"long,omitempty"`
	Str  string       `json:"str,omitempty"`
	Bool bool         `json:"bool,omitempty"`
}

// responseLinePrefix is prepended to every encoded Response line.
const responseLinePrefix = "JSON:"

// maxLineBytes bounds a single protocol line on both sides of the pipe.
// State snapshots carry a full level grid plus RNG state, so this is
// deliberately generous.
const maxLineBytes = 16 * 1024 * 1024
