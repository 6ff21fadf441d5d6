package dungeon

import "github.com/ninehex/nhsim/pkg/rng"

// Generation constants, matching the reference's rect.c.
const (
	MaxRect = 50
	XLim    = 4
	YLim    = 3
)

// Rect is a rectangle of free (unallocated) map space.
type Rect struct {
	LX, LY, HX, HY int8
}

// Width returns the rectangle's width in columns.
func (r Rect) Width() int8 {
	if r.HX >= r.LX {
		return r.HX - r.LX + 1
	}
	return 0
}

// Height returns the rectangle's height in rows.
func (r Rect) Height() int8 {
	if r.HY >= r.LY {
		return r.HY - r.LY + 1
	}
	return 0
}

// Valid reports whether the rectangle has positive area.
func (r Rect) Valid() bool {
	return r.HX >= r.LX && r.HY >= r.LY
}

// Contains reports whether r fully encloses other.
func (r Rect) Contains(other Rect) bool {
	return r.LX <= other.LX && r.HX >= other.HX && r.LY <= other.LY && r.HY >= other.HY
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.HX < other.LX || r.LX > other.HX || r.HY < other.LY || r.LY > other.HY)
}

// minRoomWidth and minRoomHeight are the smallest free-rectangle size
// that can still host a room plus its margin (2*lim + room minimum of 5).
func minRoomWidth() int8  { return 2*XLim + 5 }
func minRoomHeight() int8 { return 2*YLim + 5 }

// IsRoomSize reports whether r is large enough to place a room in.
func (r Rect) IsRoomSize() bool {
	return r.Width() >= minRoomWidth() && r.Height() >= minRoomHeight()
}

// RectManager tracks the free rectangles available for room placement,
// splitting them as rooms are carved.
type RectManager struct {
	rects []Rect
}

// NewRectManager returns a manager covering [XLim,YLim]..[width-XLim-1,
// height-YLim-1], the reference's bordered starting rectangle.
func NewRectManager(width, height int8) *RectManager {
	m := &RectManager{rects: make([]Rect, 0, MaxRect)}
	r := Rect{LX: XLim, LY: YLim, HX: width - XLim - 1, HY: height - YLim - 1}
	if r.Valid() {
		m.rects = append(m.rects, r)
	}
	return m
}

// Count returns the number of free rectangles currently tracked.
func (m *RectManager) Count() int { return len(m.rects) }

// Rects returns the manager's free rectangles.
func (m *RectManager) Rects() []Rect { return m.rects }

// RoomRectCount returns how many tracked rectangles are large enough to
// host a room.
func (m *RectManager) RoomRectCount() int {
	n := 0
	for _, r := range m.rects {
		if r.IsRoomSize() {
			n++
		}
	}
	return n
}

// HasSpace reports whether any tracked rectangle can still host a room.
func (m *RectManager) HasSpace() bool { return m.RoomRectCount() > 0 }

// AddRect appends r to the free list if it is valid and there is room.
func (m *RectManager) AddRect(r Rect) {
	if len(m.rects) < MaxRect && r.Valid() {
		m.rects = append(m.rects, r)
	}
}

// RndRect returns a random free rectangle large enough for a room, or
// false if none remain.
func (m *RectManager) RndRect(r *rng.Isaac64) (Rect, bool) {
	var candidates []Rect
	for _, rect := range m.rects {
		if rect.IsRoomSize() {
			candidates = append(candidates, rect)
		}
	}
	if len(candidates) == 0 {
		return Rect{}, false
	}
	idx := r.Rn2(uint32(len(candidates)))
	return candidates[idx], true
}

// PickRoomPosition chooses a free rectangle able to host a room of the
// given width/height plus a two-cell margin on every side, and a random top-left
// position for that room within it.
func (m *RectManager) PickRoomPosition(width, height int8, r *rng.Isaac64) (Rect, int8, int8, bool) {
	const margin = int8(2)
	neededW := width + margin*2
	neededH := height + margin*2

	var candidates []Rect
	for _, rect := range m.rects {
		if rect.Width() >= neededW && rect.Height() >= neededH {
			candidates = append(candidates, rect)
		}
	}
	if len(candidates) == 0 {
		return Rect{}, 0, 0, false
	}
	rect := candidates[r.Rn2(uint32(len(candidates)))]

	maxX := rect.HX - width - margin
	maxY := rect.HY - height - margin
	if maxX < rect.LX+margin || maxY < rect.LY+margin {
		return Rect{}, 0, 0, false
	}
	x := rect.LX + margin + int8(r.Rn2(uint32(maxX-rect.LX-margin+1)))
	y := rect.LY + margin + int8(r.Rn2(uint32(maxY-rect.LY-margin+1)))
	return rect, x, y, true
}

// SplitRects removes every rectangle overlapping room and re-adds the
// up-to-four surviving strips (left/right/top/bottom). Removal swaps the
// last element into the removed slot, highest index first: RndRect and
// PickRoomPosition index the free list with an RNG draw, so the list's
// ordering after a split must match the reference generator's exactly or
// the same draw selects a different rectangle.
func (m *RectManager) SplitRects(room Rect) {
	var toRemove []int
	var toAdd []Rect
	for i, rect := range m.rects {
		if !rect.Intersects(room) {
			continue
		}
		toRemove = append(toRemove, i)
		if rect.LX < room.LX {
			left := Rect{LX: rect.LX, LY: rect.LY, HX: room.LX - 1, HY: rect.HY}
			if left.Valid() && left.IsRoomSize() {
				toAdd = append(toAdd, left)
			}
		}
		if rect.HX > room.HX {
			right := Rect{LX: room.HX + 1, LY: rect.LY, HX: rect.HX, HY: rect.HY}
			if right.Valid() && right.IsRoomSize() {
				toAdd = append(toAdd, right)
			}
		}
		if rect.LY < room.LY {
			topLX, topHX := maxI8(rect.LX, room.LX), minI8(rect.HX, room.HX)
			top := Rect{LX: topLX, LY: rect.LY, HX: topHX, HY: room.LY - 1}
			if top.Valid() && top.IsRoomSize() {
				toAdd = append(toAdd, top)
			}
		}
		if rect.HY > room.HY {
			botLX, botHX := maxI8(rect.LX, room.LX), minI8(rect.HX, room.HX)
			bottom := Rect{LX: botLX, LY: room.HY + 1, HX: botHX, HY: rect.HY}
			if bottom.Valid() && bottom.IsRoomSize() {
				toAdd = append(toAdd, bottom)
			}
		}
	}
	for j := len(toRemove) - 1; j >= 0; j-- {
		m.removeRect(toRemove[j])
	}
	for _, r := range toAdd {
		m.AddRect(r)
	}
}

// removeRect removes the rectangle at idx by moving the list's last
// element into its slot.
func (m *RectManager) removeRect(idx int) {
	if idx >= len(m.rects) {
		return
	}
	last := len(m.rects) - 1
	m.rects[idx] = m.rects[last]
	m.rects = m.rects[:last]
}

func maxI8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

func minI8(a, b int8) int8 {
	if a < b {
		return a
	}
	return b
}
