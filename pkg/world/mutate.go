package world

import (
	"fmt"

	"github.com/ninehex/nhsim/pkg/model"
)

// doorTypes is the set of cell types OpenDoor/CloseDoor/LockDoor/BreakDoor
// are allowed to operate on.
var doorTypes = map[model.CellType]bool{
	model.CellDoor:       true,
	model.CellSecretDoor: true,
}

// SetTerrain overwrites pos's cell type, preserving its other fields,
// after checking that pos is in bounds. The other helpers in this file
// do their own bounds checks and do not call it.
func SetTerrain(lvl *model.Level, pos model.Position, t model.CellType) error {
	if !pos.Valid() {
		return fmt.Errorf("world: position %s out of bounds", pos)
	}
	lvl.At(pos).Type = t
	return nil
}

// Dig converts stone or a wall into corridor, the terrain
// mutation a pick-axe or digging wand performs mid-game. It refuses to
// dig terrain that was never meant to be solid (doors, floors, water),
// since that would indicate the caller mis-targeted the dig.
func Dig(lvl *model.Level, pos model.Position) error {
	if !pos.Valid() {
		return fmt.Errorf("world: position %s out of bounds", pos)
	}
	c := lvl.At(pos)
	switch c.Type {
	case model.CellStone, model.CellWall:
		c.Type = model.CellCorridor
		c.Explored = true
		return nil
	default:
		return fmt.Errorf("world: cannot dig terrain %v at %s", c.Type, pos)
	}
}

// RevealSecretDoor converts a found secret door into an ordinary door,
// leaving its lock/trap flags untouched.
func RevealSecretDoor(lvl *model.Level, pos model.Position) error {
	if !pos.Valid() {
		return fmt.Errorf("world: position %s out of bounds", pos)
	}
	c := lvl.At(pos)
	if c.Type != model.CellSecretDoor {
		return fmt.Errorf("world: %s is not a secret door", pos)
	}
	c.Type = model.CellDoor
	return nil
}

// OpenDoor clears a door's locked flag, sets its open flag, and marks it
// explored. It is an error to call on anything but a door cell,
// including a secret one that has not yet been found.
func OpenDoor(lvl *model.Level, pos model.Position) error {
	c, err := requireDoor(lvl, pos)
	if err != nil {
		return err
	}
	if c.Type == model.CellSecretDoor {
		return fmt.Errorf("world: %s is not a door", pos)
	}
	if c.Flags&model.CellFlagLocked != 0 {
		return fmt.Errorf("world: door at %s is locked", pos)
	}
	c.Flags |= model.CellFlagOpen
	c.Explored = true
	return nil
}

// CloseDoor clears a door's open flag. It refuses to close a broken
// door, which has no leaf left to swing shut.
func CloseDoor(lvl *model.Level, pos model.Position) error {
	c, err := requireDoor(lvl, pos)
	if err != nil {
		return err
	}
	if c.Flags&model.CellFlagBroken != 0 {
		return fmt.Errorf("world: door at %s is broken and cannot be closed", pos)
	}
	c.Flags &^= model.CellFlagOpen
	return nil
}

// LockDoor sets a door's locked flag; a door must be closed to lock.
func LockDoor(lvl *model.Level, pos model.Position) error {
	c, err := requireDoor(lvl, pos)
	if err != nil {
		return err
	}
	if c.Flags&model.CellFlagOpen != 0 {
		return fmt.Errorf("world: door at %s is open and cannot be locked", pos)
	}
	c.Flags |= model.CellFlagLocked
	return nil
}

// BreakDoor converts a locked or closed door into broken rubble that no
// longer blocks movement or sight; the reference marks kicked-open doors
// this way rather than deleting them.
func BreakDoor(lvl *model.Level, pos model.Position) error {
	c, err := requireDoor(lvl, pos)
	if err != nil {
		return err
	}
	c.Flags &^= model.CellFlagLocked
	c.Flags |= model.CellFlagBroken | model.CellFlagOpen
	c.Type = model.CellDoor
	return nil
}

func requireDoor(lvl *model.Level, pos model.Position) (*model.Cell, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("world: position %s out of bounds", pos)
	}
	c := lvl.At(pos)
	if !doorTypes[c.Type] {
		return nil, fmt.Errorf("world: %s is not a door", pos)
	}
	return c, nil
}
