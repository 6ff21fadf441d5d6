// Package themes holds per-dungeon-branch encounter and loot tables: what
// monster and object types populate a generated level, and in what
// proportion. Tables are loaded from YAML and queried by pkg/content
// during level population.
package themes
