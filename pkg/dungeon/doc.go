// Package dungeon implements deterministic level generation: rectangle
// subdivision for room placement and the four-phase corridor algorithm
// that connects them, driven entirely by a caller-supplied rng.Isaac64 so
// that the same seed and Config always yield byte-identical Levels.
package dungeon
