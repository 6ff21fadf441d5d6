// Package world answers the geometric questions every other behavior
// package depends on: can an actor stand here, what can it see from here,
// and how does it get from here to there. Nothing in this package mutates
// a model.Level except through the invariant-checked helpers in
// mutate.go, so callers never have to re-derive the walkability or
// room-membership rules by hand.
package world
