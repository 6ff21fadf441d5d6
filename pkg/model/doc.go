// Package model defines the value types the simulation core operates on:
// positions, dungeon levels and branches, terrain cells, objects, monsters,
// the player ("You"), properties, and the top-level GameState that owns
// them all.
//
// Types in this package carry no behavior beyond invariant-preserving
// accessors and small derived-value helpers (Encumbrance, HungerState).
// The subsystems that mutate these types in response to player/monster
// actions live in sibling packages (pkg/world, pkg/property, pkg/combat,
// pkg/action, pkg/ai, pkg/engine) so that model stays free of import
// cycles with the behavior packages that depend on it.
//
// Monsters and objects never hold pointers to each other: cross-references
// (grabber, steed, owner, container contents aside) are (holder, id)
// lookups through MonsterID/ObjectID newtypes.
package model
