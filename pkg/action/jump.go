package action

import (
	"fmt"

	"github.com/ninehex/nhsim/pkg/model"
)

// CheckJump validates a proposed jump target: distance^2 <= 9^2 for a
// physical jump, or
// (6+3*magic)^2 for a magical one; a knight's jump is restricted to
// exactly dx^2+dy^2 == 5 (the chess-knight L-shape). The path is then
// traced cell by cell: walls block unless the player PassesWalls, and a
// closed door blocks unless the jump's axis matches the door's
// orientation.
func CheckJump(gs *model.GameState, target model.Position, knight, magic bool) error {
	you := &gs.Player
	if !target.Valid() {
		return fmt.Errorf("you can't jump there")
	}
	dx := int(target.X) - int(you.Pos.X)
	dy := int(target.Y) - int(you.Pos.Y)
	distSq := dx*dx + dy*dy

	if knight {
		if distSq != 5 {
			return fmt.Errorf("that is not a knight's jump")
		}
	} else {
		maxDist := 9
		if magic {
			maxDist = 6 + 3
		}
		if distSq > maxDist*maxDist {
			return fmt.Errorf("you can't jump that far")
		}
	}

	lvl := gs.Current()
	for _, p := range traceJumpPath(you.Pos, target) {
		if p.Equal(you.Pos) {
			continue
		}
		cell := lvl.At(p)
		if !p.Valid() {
			return fmt.Errorf("you can't jump there")
		}
		if cell.Type == model.CellWall && !you.CanOccupy(*cell) {
			return fmt.Errorf("something is in the way")
		}
		if cell.Type == model.CellDoor && cell.Flags&model.CellFlagOpen == 0 {
			horizontalJump := dy == 0
			if cell.Horizontal != horizontalJump {
				return fmt.Errorf("the door blocks your jump")
			}
		}
	}
	return nil
}

// traceJumpPath returns the integer cells a straight jump from start to
// end crosses, using the same Bresenham approach pkg/world's LOS uses so
// jump-blocking and visibility agree on what "in the way" means.
func traceJumpPath(start, end model.Position) []model.Position {
	x0, y0 := int(start.X), int(start.Y)
	x1, y1 := int(end.X), int(end.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var points []model.Position
	x, y := x0, y0
	for {
		points = append(points, model.NewPosition(x, y))
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// doJumpDir implements the Jump command for a directional hop two cells
// out: boots of jumping make it a magical jump, whose distance bound
// (squared distance 9) is the same as the physical one.
func doJumpDir(gs *model.GameState, dir model.Direction) Result {
	if dir == model.DirNone || dir == model.DirSelf {
		return NoTime()
	}
	target := gs.Player.Pos.Apply(dir).Apply(dir)
	magic := gs.Player.Properties != nil && gs.Player.Properties.Has(model.PropJumping)
	return doJump(gs, target, false, magic)
}

// doJump validates then relocates the player, consuming the turn on
// success.
func doJump(gs *model.GameState, target model.Position, knight, magic bool) Result {
	if err := CheckJump(gs, target, knight, magic); err != nil {
		return Failed(err.Error())
	}
	you := &gs.Player
	you.PrevPos = you.Pos
	you.Pos = target
	return Success()
}
