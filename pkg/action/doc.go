// Package action implements the turn/action pipeline:
// Command -> ActionResult, covering movement, searching, jumping, and the
// per-item-class effect dispatch (eat/quaff/read/zap/wield/wear/putOn/
// remove/pickup/drop/pray). Only a Success result advances game time;
// pkg/engine is responsible for granting/spending action points and for
// advancing turns once a command succeeds.
package action
