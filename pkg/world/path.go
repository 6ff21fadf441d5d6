package world

import (
	"container/heap"

	"github.com/ninehex/nhsim/pkg/model"
)

// FindPath runs A* from start to goal over lvl's 8-connected grid,
// restricted to cells mover can stand on, using the Chebyshev distance
// (max(|dx|, |dy|)) as both the step cost and the heuristic — the same
// metric Position.ChebyshevDistance already exposes, so the heuristic is
// always admissible and the search terminates with a shortest path under
// king-move cost. It returns nil if no
// path exists or either endpoint is out of bounds.
func FindPath(lvl *model.Level, mover Mover, start, goal model.Position) []model.Position {
	if !start.Valid() || !goal.Valid() {
		return nil
	}
	if start.Equal(goal) {
		return []model.Position{start}
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{pos: start, g: 0, f: start.ChebyshevDistance(goal)})

	cameFrom := make(map[model.Position]model.Position)
	bestG := map[model.Position]int{start: 0}
	closed := make(map[model.Position]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if closed[current.pos] {
			continue
		}
		if current.pos.Equal(goal) {
			return reconstructPath(cameFrom, current.pos, start)
		}
		closed[current.pos] = true

		for _, n := range Neighbors(current.pos) {
			if closed[n] {
				continue
			}
			if !n.Equal(goal) && !Walkable(lvl, mover, n) {
				continue
			}
			tentativeG := current.g + 1
			if g, ok := bestG[n]; ok && g <= tentativeG {
				continue
			}
			bestG[n] = tentativeG
			cameFrom[n] = current.pos
			heap.Push(open, &pathNode{pos: n, g: tentativeG, f: tentativeG + n.ChebyshevDistance(goal)})
		}
	}
	return nil
}

func reconstructPath(cameFrom map[model.Position]model.Position, goal, start model.Position) []model.Position {
	path := []model.Position{goal}
	for cur := goal; !cur.Equal(start); {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathNode is one entry in the A* open set's priority queue.
type pathNode struct {
	pos   model.Position
	g, f  int
	index int
}

// pathQueue is a container/heap min-heap ordered by f-score, breaking
// ties toward the higher g-score (the node closer to the goal estimate).
type pathQueue []*pathNode

func (q pathQueue) Len() int { return len(q) }
func (q pathQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].g > q[j].g
}
func (q pathQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *pathQueue) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
