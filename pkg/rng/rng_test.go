package rng

import "testing"

// TestIsaac64_Determinism verifies that two streams seeded identically
// produce bitwise-identical draws.
func TestIsaac64_Determinism(t *testing.T) {
	const seed = uint64(12345)
	a := NewIsaac64(seed)
	b := NewIsaac64(seed)

	for i := 0; i < 1000; i++ {
		va := a.NextU64()
		vb := b.NextU64()
		if va != vb {
			t.Fatalf("draw %d diverged: %d vs %d", i, va, vb)
		}
	}
}

// TestIsaac64_DifferentSeedsDiverge is a sanity check that distinct seeds
// do not trivially collide on the first draw.
func TestIsaac64_DifferentSeedsDiverge(t *testing.T) {
	a := NewIsaac64(1)
	b := NewIsaac64(2)
	if a.NextU64() == b.NextU64() {
		t.Fatal("distinct seeds produced the same first draw (suspicious)")
	}
}

// TestRn2_Range checks rn2 stays within [0, x) across many draws.
func TestRn2_Range(t *testing.T) {
	iso := NewIsaac64(42)
	for i := 0; i < 10000; i++ {
		v := iso.Rn2(7)
		if v >= 7 {
			t.Fatalf("rn2(7) returned out-of-range value %d", v)
		}
	}
}

// TestRn2_ZeroModulus matches the reference's degenerate behavior.
func TestRn2_ZeroModulus(t *testing.T) {
	iso := NewIsaac64(1)
	if v := iso.Rn2(0); v != 0 {
		t.Fatalf("rn2(0) = %d, want 0", v)
	}
}

// TestRnd_Range checks rnd stays within [1, x].
func TestRnd_Range(t *testing.T) {
	iso := NewIsaac64(99)
	for i := 0; i < 10000; i++ {
		v := iso.Rnd(20)
		if v < 1 || v > 20 {
			t.Fatalf("rnd(20) returned out-of-range value %d", v)
		}
	}
}

// TestDice_ConsumesNDraws verifies dice(n, x) = n + sum of n rn2(x) draws.
func TestDice_ConsumesNDraws(t *testing.T) {
	seed := uint64(7)
	direct := NewIsaac64(seed)
	want := uint32(3)
	for i := 0; i < 3; i++ {
		want += direct.Rn2(6)
	}

	viaDice := NewIsaac64(seed)
	got := viaDice.Dice(3, 6)
	if got != want {
		t.Fatalf("dice(3,6) = %d, want %d", got, want)
	}
}

// TestRnl_Range ensures luck-adjusted rolls never leave [0, x).
func TestRnl_Range(t *testing.T) {
	iso := NewIsaac64(5)
	for _, x := range []uint32{1, 3, 10, 15, 20, 100} {
		for _, luck := range []int32{-13, -5, 0, 5, 13} {
			for i := 0; i < 200; i++ {
				v := iso.Rnl(x, luck)
				if v >= x {
					t.Fatalf("rnl(%d,%d) = %d out of range", x, luck, v)
				}
			}
		}
	}
}

// TestRne_RespectsCap checks the level-scaled cap.
func TestRne_RespectsCap(t *testing.T) {
	iso := NewIsaac64(3)
	for i := 0; i < 500; i++ {
		v := iso.Rne(2, 10)
		if v < 1 || v > 5 {
			t.Fatalf("rne(2,10) = %d, want in [1,5]", v)
		}
	}
	iso2 := NewIsaac64(3)
	for i := 0; i < 500; i++ {
		v := iso2.Rne(2, 30)
		if v < 1 || v > 10 {
			t.Fatalf("rne(2,30) = %d, want in [1,10]", v)
		}
	}
}

// TestIsaac64_SerializeResumesStream verifies a stream saved mid-run and
// restored continues exactly where the original left off.
func TestIsaac64_SerializeResumesStream(t *testing.T) {
	a := NewIsaac64(777)
	for i := 0; i < 300; i++ {
		a.NextU64()
	}

	data, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() = %v", err)
	}
	b := &Isaac64{}
	if err := b.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() = %v", err)
	}

	for i := 0; i < 600; i++ {
		va, vb := a.NextU64(), b.NextU64()
		if va != vb {
			t.Fatalf("restored stream diverged at draw %d: %d vs %d", i, va, vb)
		}
	}
	if a.CallCount() != b.CallCount() {
		t.Fatalf("call counts differ: %d vs %d", a.CallCount(), b.CallCount())
	}
}

// TestTrace_RecordsEveryCall verifies tracing captures each distribution
// call with matching func/arg/result/raw tuples, and that two identically
// seeded streams produce identical traces.
func TestTrace_RecordsEveryCall(t *testing.T) {
	a := NewIsaac64(2026)
	b := NewIsaac64(2026)
	a.EnableTracing()
	b.EnableTracing()

	for i := 0; i < 50; i++ {
		a.Rn2(100)
		b.Rn2(100)
		a.Rnd(20)
		b.Rnd(20)
	}

	ta := a.Trace()
	tb := b.Trace()
	if len(ta) != len(tb) {
		t.Fatalf("trace length mismatch: %d vs %d", len(ta), len(tb))
	}
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("trace entry %d diverged: %+v vs %+v", i, ta[i], tb[i])
		}
	}
}
