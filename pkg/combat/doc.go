// Package combat resolves to-hit rolls, damage, resistances, erosion, and
// artifact effects for player-versus-monster, monster-versus-player, and
// monster-versus-monster encounters. Every random decision is drawn from
// the caller's rng.Isaac64 so a fight replays identically given the same
// seed and command sequence.
package combat
