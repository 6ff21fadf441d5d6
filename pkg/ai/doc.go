// Package ai implements the monster AI tick: morale
// tracking, retreat checks, target selection weighted by personality and
// intelligence, and the move-or-attack step that drives a single
// monster's turn. No special abilities are dispatched.
package ai
