// Package rng provides the bit-exact ISAAC64 stream that drives every
// random decision in the simulation core, plus the convenience
// distributions (rn2, rnd, rnl, rne, rnz, dice) the rest of the engine
// consumes.
//
// Determinism is the entire point of this package: two Isaac64 values
// seeded identically and called in the same sequence MUST produce
// identical results and, with tracing enabled, identical traces. Every
// call site elsewhere in the module that consumes randomness must do so
// through this package and must document how many draws it performs per
// branch, since a single stray draw shifts the rest of the run's trace.
package rng
