package dungeon

import (
	"context"
	"fmt"

	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// Generator produces a Level's room/corridor topology for a given
// dungeon position. Implementations must be deterministic: the same
// Config, DLevel, and Isaac64 draw sequence must always yield the same
// rooms, corridors, and stairs.
type Generator interface {
	Generate(ctx context.Context, dl model.DLevel, cfg Config, r *rng.Isaac64) (*model.Level, error)
}

// DefaultGenerator implements the reference's room-and-corridor pipeline:
// repeated rectangle subdivision for room placement followed by the
// four-phase corridor algorithm.
type DefaultGenerator struct{}

// NewDefaultGenerator returns the standard room/corridor generator.
func NewDefaultGenerator() *DefaultGenerator { return &DefaultGenerator{} }

// Generate builds one Level. It returns an error only when no room at
// all could be placed; a level with a single room is returned as is,
// with both staircases in that room.
func (g *DefaultGenerator) Generate(ctx context.Context, dl model.DLevel, cfg Config, r *rng.Isaac64) (*model.Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generating level %s: %w", dl, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lvl := model.NewLevel(dl)
	lvl.Flags.Mazelike = cfg.Mazelike

	target := cfg.RoomsMin
	if spread := cfg.RoomsMax - cfg.RoomsMin; spread > 0 {
		target += int(r.Rn2(uint32(spread + 1)))
	}

	rects := NewRectManager(model.MapWidth, model.MapHeight)
	var rooms []model.Room

	for attempt := 0; attempt < cfg.RoomAttempts && len(rooms) < target; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !rects.HasSpace() {
			break
		}
		wSpread := cfg.MaxRoomSize - cfg.MinRoomSize
		w := cfg.MinRoomSize
		if wSpread > 0 {
			w += int(r.Rn2(uint32(wSpread + 1)))
		}
		h := cfg.MinRoomSize
		if wSpread > 0 {
			h += int(r.Rn2(uint32(wSpread + 1)))
		}

		_, x, y, ok := rects.PickRoomPosition(int8(w), int8(h), r)
		if !ok {
			continue
		}
		room := model.Room{X1: x, Y1: y, X2: x + int8(w) - 1, Y2: y + int8(h) - 1, Type: model.RoomOrdinary, Lit: r.Rn2(2) == 0}
		if overlapsAny(room, rooms) {
			continue
		}
		stampRoom(lvl, room)
		rects.SplitRects(Rect{LX: room.X1 - 1, LY: room.Y1 - 1, HX: room.X2 + 1, HY: room.Y2 + 1})
		rooms = append(rooms, room)
	}

	if len(rooms) == 0 {
		return nil, fmt.Errorf("generating level %s: no rooms could be placed", dl)
	}

	lvl.Rooms = rooms
	GenerateCorridors(lvl, rooms, r)
	placeStairs(lvl, rooms, r)
	return lvl, nil
}

func overlapsAny(room model.Room, rooms []model.Room) bool {
	for _, other := range rooms {
		if room.X1 <= other.X2+2 && room.X2+2 >= other.X1 && room.Y1 <= other.Y2+2 && room.Y2+2 >= other.Y1 {
			return true
		}
	}
	return false
}

// stampRoom marks every interior cell of room as floor, to be bordered
// with walls and doors by pkg/carving once corridor generation has
// decided where doors need to break through.
func stampRoom(lvl *model.Level, room model.Room) {
	for x := room.X1; x <= room.X2; x++ {
		for y := room.Y1; y <= room.Y2; y++ {
			cell := lvl.At(model.Position{X: x, Y: y})
			cell.Type = model.CellRoom
			cell.Lit = room.Lit
		}
	}
}

// placeStairs picks one random room for the down staircase and (if this
// is not the first level) another for the up staircase, matching the
// reference's rule that stairs never share a room on generated levels
// when more than one room exists.
func placeStairs(lvl *model.Level, rooms []model.Room, r *rng.Isaac64) {
	downIdx := int(r.Rn2(uint32(len(rooms))))
	downPos := randPosInRoom(rooms[downIdx], r)
	lvl.At(downPos).Type = model.CellStaircaseDown
	lvl.DownStairs = append(lvl.DownStairs, downPos)

	if lvl.DLevel.Level == 0 {
		return
	}
	upIdx := downIdx
	if len(rooms) > 1 {
		for upIdx == downIdx {
			upIdx = int(r.Rn2(uint32(len(rooms))))
		}
	}
	upPos := randPosInRoom(rooms[upIdx], r)
	lvl.At(upPos).Type = model.CellStaircaseUp
	lvl.UpStairs = append(lvl.UpStairs, upPos)
}

func randPosInRoom(room model.Room, r *rng.Isaac64) model.Position {
	x := room.X1 + int8(r.Rn2(uint32(room.Width())))
	y := room.Y1 + int8(r.Rn2(uint32(room.Height())))
	return model.Position{X: x, Y: y}
}
