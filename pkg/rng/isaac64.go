package rng

import "encoding/json"

// szLog is log2 of the ISAAC64 state size; sz is the state size itself (256).
const (
	szLog = 8
	sz    = 1 << szLog
)

// goldenRatio seeds the mix() scramble rounds during initialization.
const goldenRatio = 0x9E3779B97F4A7C13

// mixShift is the per-lane shift table applied by mix(), in the order the
// eight lanes are processed. Every entry must match the reference
// implementation bit-for-bit: a divergence here produces a different
// (but still "valid looking") stream, which is exactly the failure mode
// the parity harness in pkg/parity exists to catch.
var mixShift = [8]uint{9, 9, 23, 15, 14, 20, 17, 14}

// Isaac64 is a bit-exact ISAAC64 stream (Bob Jenkins), seeded from a single
// uint64 and consumed one next_u64 draw at a time. It is the only source
// of randomness in the simulation core: every distribution in this package
// routes through next_u64, and GameState owns exactly one instance.
//
// Isaac64 is not safe for concurrent use; the core is single-threaded by
// design, so no locking is provided.
type Isaac64 struct {
	r [sz]uint64 // result buffer
	m [sz]uint64 // memory state
	a uint64
	b uint64
	c uint64
	n int // number of unconsumed results remaining in r

	callCount uint64
	tracing   bool
	trace     []TraceEntry
}

// TraceEntry records one distribution call for parity diagnostics.
type TraceEntry struct {
	Seq    uint64 `json:"seq"`
	Func   string `json:"func"`
	Arg    uint64 `json:"arg"`
	Result uint64 `json:"result"`
	Raw    uint64 `json:"raw"`
}

// NewIsaac64 creates a new stream seeded from a single uint64. Two streams
// created with the same seed and called in the same sequence are
// guaranteed to produce identical results.
func NewIsaac64(seed uint64) *Isaac64 {
	iso := &Isaac64{}
	var seedBytes [8]byte
	s := seed
	for i := range seedBytes {
		seedBytes[i] = byte(s & 0xFF)
		s >>= 8
	}
	iso.reseed(seedBytes[:])
	return iso
}

// reseed mixes seed bytes into r[], then fills m[] in two passes, ending
// with one call to update() so the first batch of results is ready.
func (iso *Isaac64) reseed(seed []byte) {
	nseed := len(seed)
	if nseed > sz*8 {
		nseed = sz * 8
	}

	fullWords := nseed / 8
	for i := 0; i < fullWords; i++ {
		base := i * 8
		val := uint64(seed[base]) |
			uint64(seed[base+1])<<8 |
			uint64(seed[base+2])<<16 |
			uint64(seed[base+3])<<24 |
			uint64(seed[base+4])<<32 |
			uint64(seed[base+5])<<40 |
			uint64(seed[base+6])<<48 |
			uint64(seed[base+7])<<56
		iso.r[i] ^= val
	}
	remaining := nseed - fullWords*8
	if remaining > 0 {
		base := fullWords * 8
		val := uint64(seed[base])
		for j := 1; j < remaining; j++ {
			val |= uint64(seed[base+j]) << uint(j*8)
		}
		iso.r[fullWords] ^= val
	}

	var x [8]uint64
	for i := range x {
		x[i] = goldenRatio
	}
	for i := 0; i < 4; i++ {
		mix(&x)
	}

	for i := 0; i < sz; i += 8 {
		for j := 0; j < 8; j++ {
			x[j] += iso.r[i+j]
		}
		mix(&x)
		for j := 0; j < 8; j++ {
			iso.m[i+j] = x[j]
		}
	}

	for i := 0; i < sz; i += 8 {
		for j := 0; j < 8; j++ {
			x[j] += iso.m[i+j]
		}
		mix(&x)
		for j := 0; j < 8; j++ {
			iso.m[i+j] = x[j]
		}
	}

	iso.update()
}

// mix applies the 8-step scramble round used during seeding. The lane
// indices wrap modulo 8 so consecutive pairs of lanes feed each other.
func mix(x *[8]uint64) {
	for i := 0; i < 8; i += 2 {
		x[i] -= x[(i+4)&7]
		x[(i+5)&7] ^= x[(i+7)&7] >> mixShift[i]
		x[(i+7)&7] += x[i]

		j := i + 1
		x[j] -= x[(j+4)&7]
		x[(j+5)&7] ^= x[(j+7)&7] << mixShift[j]
		x[(j+7)&7] += x[j]
	}
}

func lowerBits(x uint64) int {
	return int((x & uint64((sz-1)<<3)) >> 3)
}

func upperBits(y uint64) int {
	return int((y >> (szLog + 3)) & (sz - 1))
}

// update runs the 256-step refill, alternating the shift pattern
// [21L, 5R, 12L, 33R] across two halves of m[]: the lower half mixes in
// m[i+128], the upper half mixes in m[i-128].
func (iso *Isaac64) update() {
	a := iso.a
	iso.c++
	b := iso.b + iso.c

	for i := 0; i < sz/2; i += 4 {
		x := iso.m[i]
		a = (^a ^ (a << 21)) + iso.m[i+sz/2]
		y := iso.m[lowerBits(x)] + a + b
		iso.m[i] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i] = b

		x = iso.m[i+1]
		a = (a ^ (a >> 5)) + iso.m[i+1+sz/2]
		y = iso.m[lowerBits(x)] + a + b
		iso.m[i+1] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i+1] = b

		x = iso.m[i+2]
		a = (a ^ (a << 12)) + iso.m[i+2+sz/2]
		y = iso.m[lowerBits(x)] + a + b
		iso.m[i+2] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i+2] = b

		x = iso.m[i+3]
		a = (a ^ (a >> 33)) + iso.m[i+3+sz/2]
		y = iso.m[lowerBits(x)] + a + b
		iso.m[i+3] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i+3] = b
	}

	for i := sz / 2; i < sz; i += 4 {
		x := iso.m[i]
		a = (^a ^ (a << 21)) + iso.m[i-sz/2]
		y := iso.m[lowerBits(x)] + a + b
		iso.m[i] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i] = b

		x = iso.m[i+1]
		a = (a ^ (a >> 5)) + iso.m[i+1-sz/2]
		y = iso.m[lowerBits(x)] + a + b
		iso.m[i+1] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i+1] = b

		x = iso.m[i+2]
		a = (a ^ (a << 12)) + iso.m[i+2-sz/2]
		y = iso.m[lowerBits(x)] + a + b
		iso.m[i+2] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i+2] = b

		x = iso.m[i+3]
		a = (a ^ (a >> 33)) + iso.m[i+3-sz/2]
		y = iso.m[lowerBits(x)] + a + b
		iso.m[i+3] = y
		b = iso.m[upperBits(y)] + x
		iso.r[i+3] = b
	}

	iso.b = b
	iso.a = a
	iso.n = sz
}

// NextU64 draws the next raw 64-bit value from the stream, refilling via
// update() whenever the result buffer is exhausted.
func (iso *Isaac64) NextU64() uint64 {
	if iso.n == 0 {
		iso.update()
	}
	iso.n--
	val := iso.r[iso.n]
	iso.callCount++
	return val
}

// CallCount returns the number of NextU64 draws consumed so far.
func (iso *Isaac64) CallCount() uint64 {
	return iso.callCount
}

// EnableTracing starts recording every distribution call. Existing trace
// entries are discarded.
func (iso *Isaac64) EnableTracing() {
	iso.tracing = true
	iso.trace = nil
}

// DisableTracing stops recording new trace entries; prior entries remain
// available via Trace.
func (iso *Isaac64) DisableTracing() {
	iso.tracing = false
}

// Trace returns a copy of the recorded call trace.
func (iso *Isaac64) Trace() []TraceEntry {
	out := make([]TraceEntry, len(iso.trace))
	copy(out, iso.trace)
	return out
}

// isaac64State mirrors Isaac64's internal state for serialization, so a
// restored stream continues exactly where the saved one stopped. The
// trace buffer is deliberately not carried across a save.
type isaac64State struct {
	R         [sz]uint64 `json:"r"`
	M         [sz]uint64 `json:"m"`
	A         uint64     `json:"a"`
	B         uint64     `json:"b"`
	C         uint64     `json:"c"`
	N         int        `json:"n"`
	CallCount uint64     `json:"call_count"`
}

// MarshalJSON encodes the full generator state.
func (iso *Isaac64) MarshalJSON() ([]byte, error) {
	return json.Marshal(isaac64State{
		R: iso.r, M: iso.m, A: iso.a, B: iso.b, C: iso.c,
		N: iso.n, CallCount: iso.callCount,
	})
}

// UnmarshalJSON restores a generator saved with MarshalJSON.
func (iso *Isaac64) UnmarshalJSON(data []byte) error {
	var st isaac64State
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	iso.r, iso.m = st.R, st.M
	iso.a, iso.b, iso.c, iso.n = st.A, st.B, st.C, st.N
	iso.callCount = st.CallCount
	iso.tracing = false
	iso.trace = nil
	return nil
}

func (iso *Isaac64) record(fn string, arg, result, raw uint64) {
	if !iso.tracing {
		return
	}
	iso.trace = append(iso.trace, TraceEntry{
		Seq:    iso.callCount - 1,
		Func:   fn,
		Arg:    arg,
		Result: result,
		Raw:    raw,
	})
}
