package rng

// Rn2 returns a value in [0, x), consuming exactly one NextU64 draw.
// Rn2(0) returns 0 without consuming a draw's worth of meaning beyond the
// raw value — matching the reference's degenerate-modulus behavior.
func (iso *Isaac64) Rn2(x uint32) uint32 {
	raw := iso.NextU64()
	if x == 0 {
		iso.record("rn2", uint64(x), 0, raw)
		return 0
	}
	res := uint32(raw % uint64(x))
	iso.record("rn2", uint64(x), uint64(res), raw)
	return res
}

// Rnd returns a value in [1, x], consuming exactly one NextU64 draw.
func (iso *Isaac64) Rnd(x uint32) uint32 {
	raw := iso.NextU64()
	if x == 0 {
		iso.record("rnd", uint64(x), 0, raw)
		return 0
	}
	res := uint32(raw%uint64(x)) + 1
	iso.record("rnd", uint64(x), uint64(res), raw)
	return res
}

// Dice rolls n dice of x sides: n + sum(rn2(x) for n draws). Consumes
// exactly n draws, each traced as its own "rn2" entry; dice itself pushes
// nothing to the trace.
func (iso *Isaac64) Dice(n, x uint32) uint32 {
	result := n
	for i := uint32(0); i < n; i++ {
		result += iso.Rn2(x)
	}
	return result
}

// Rnl is rn2 biased by luck. For x <= 15 the luck adjustment is scaled by
// (|luck|+1)/3 * sign(luck); for larger x the raw luck value is used
// directly. With probability 1 - 1/(37+|adjustment|) the adjustment is
// subtracted from the draw, clamped into [0, x). Consumes one Rn2 draw,
// plus one more draw of the gating rn2(37+|adjustment|) when adjustment
// is nonzero.
func (iso *Isaac64) Rnl(x uint32, luck int32) uint32 {
	i := int32(iso.Rn2(x))

	var adjustment int32
	if x <= 15 {
		sign := int32(0)
		switch {
		case luck > 0:
			sign = 1
		case luck < 0:
			sign = -1
		}
		adjustment = (abs32(luck) + 1) / 3 * sign
	} else {
		adjustment = luck
	}

	if adjustment != 0 {
		gate := uint32(37 + abs32(adjustment))
		if iso.Rn2(gate) != 0 {
			i -= adjustment
			if i < 0 {
				i = 0
			} else if i >= int32(x) {
				i = int32(x) - 1
			}
		}
	}
	return uint32(i)
}

// Rne returns the smallest k >= 1 such that any of the first k draws of
// rn2(x) is nonzero, capped at 5 if level < 15 else level/3. Consumes
// between 1 and cap-1 draws.
func (iso *Isaac64) Rne(x uint32, level uint32) uint32 {
	cap := uint32(5)
	if level >= 15 {
		cap = level / 3
	}
	tmp := uint32(1)
	for tmp < cap && iso.Rn2(x) == 0 {
		tmp++
	}
	return tmp
}

// Rnz multiplies i by a ratio of two Rne-perturbed factors with a 50/50
// flip, matching the reference rnz(i) used for variable-magnitude damage
// and nutrition effects.
func (iso *Isaac64) Rnz(i int32, level uint32) int32 {
	x := int64(i)
	tmp := int64(1000)
	tmp += int64(iso.Rn2(1000))
	tmp *= int64(iso.Rne(4, level))
	if iso.Rn2(2) != 0 {
		x = x * tmp / 1000
	} else {
		x = x * 1000 / tmp
	}
	return int32(x)
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
