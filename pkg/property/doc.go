// Package property grants and revokes model.Property bits as equipment is
// worn and removed, and applies the per-turn side effects of cursed gear
// (fumbling, armor class penalties, stuck items). It is the one place
// that decides which properties a given model.Object grants, so
// pkg/action's wear/wield/put-on/remove commands stay thin wrappers
// around Equip/Unequip.
package property
