package parity

import (
	"fmt"

	"github.com/ninehex/nhsim/pkg/rng"
)

// RngDivergence reports the first point at which two RNG traces
// disagree, with a window of surrounding entries for diagnosis.
type RngDivergence struct {
	CallIndex   int              `json:"call_index"`
	Description string           `json:"description"`
	GotContext  []rng.TraceEntry `json:"got_context"`
	CContext    []rng.TraceEntry `json:"c_context"`
}

const traceContextRadius = 5

// CompareTraces walks got and c call-for-call and returns the first
// divergence found, or nil if the traces agree. A length mismatch
// itself counts as a divergence at the shorter trace's length.
func CompareTraces(got, c []rng.TraceEntry) *RngDivergence {
	n := len(got)
	if len(c) < n {
		n = len(c)
	}
	for i := 0; i < n; i++ {
		if got[i] != c[i] {
			return newDivergence(i, fmt.Sprintf("call %d: %s(%d) = %d, expected %d",
				i, got[i].Func, got[i].Arg, got[i].Result, c[i].Result), got, c)
		}
	}
	if len(got) != len(c) {
		return newDivergence(n, fmt.Sprintf("trace length mismatch: got=%d c=%d", len(got), len(c)), got, c)
	}
	return nil
}

func newDivergence(idx int, desc string, got, c []rng.TraceEntry) *RngDivergence {
	return &RngDivergence{
		CallIndex:   idx,
		Description: desc,
		GotContext:  contextWindow(got, idx),
		CContext:    contextWindow(c, idx),
	}
}

func contextWindow(trace []rng.TraceEntry, idx int) []rng.TraceEntry {
	lo := idx - traceContextRadius
	if lo < 0 {
		lo = 0
	}
	hi := idx + traceContextRadius + 1
	if hi > len(trace) {
		hi = len(trace)
	}
	if lo > hi {
		return nil
	}
	out := make([]rng.TraceEntry, hi-lo)
	copy(out, trace[lo:hi])
	return out
}
