// Package carving finishes a Level's raw room/corridor floor plan: it
// surrounds floor tiles with walls, converts the corridor-into-wall
// punch-throughs left by pkg/dungeon into proper doors (closed, locked,
// or secret). It places no open doors and does not mark walls as
// diggable or non-diggable.
package carving
