// Package content populates a generated Level with monsters, objects,
// and traps, querying pkg/themes for per-branch, per-depth tables and
// drawing every placement decision from the caller's rng.Isaac64.
package content
