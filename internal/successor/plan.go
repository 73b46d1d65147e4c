package successor

import (
	"container/heap"

	"github.com/wbrown/janus-lift/internal/task"
)

// schemaPlan is the precompiled per-schema query plan shared by both
// generator strategies: the ordered list of positive non-nullary
// preconditions to select from the state, an optional full-reducer program
// (empty for the naive strategy), and the join order in which the selected
// tables are finally hash-joined.
type schemaPlan struct {
	positivePreconditions []task.SchemaAtom
	reducerProgram        [][2]int // (i, j): semi-join table i by table j
	joinOrder             []int    // indices into positivePreconditions
	isGround              bool
}

// compileFullReducer builds the GYO full-reducer plan for schema.
func compileFullReducer(schema *task.ActionSchema) *schemaPlan {
	positive := schema.NonNullaryPositivePreconditions()
	plan := &schemaPlan{positivePreconditions: positive, isGround: len(schema.Parameters) == 0}
	if plan.isGround {
		return plan
	}

	h := buildHypergraph(positive)
	program, remaining := gyoEarRemoval(h)

	// The reducer program runs forward then backward so every surviving
	// table is restricted by the whole chain of semi-joins in both
	// directions before the final hash join.
	back := make([][2]int, len(program))
	for i, pair := range program {
		back[len(program)-1-i] = [2]int{pair[1], pair[0]}
	}
	plan.reducerProgram = append(append([][2]int{}, program...), back...)

	// Join order: the removed edges in reverse-removal order, then any
	// precondition with no free parameters, then whatever hyperedges
	// survived ear removal (cyclic remainder).
	joinOrder := make([]int, 0, len(positive))
	seen := make([]bool, len(positive))
	for i := len(program) - 1; i >= 0; i-- {
		idx := program[i][0]
		if !seen[idx] {
			seen[idx] = true
			joinOrder = append(joinOrder, idx)
		}
	}
	for _, idx := range h.missingPreconds {
		if !seen[idx] {
			seen[idx] = true
			joinOrder = append(joinOrder, idx)
		}
	}

	if len(remaining) == 1 {
		idx := h.edgesToPreconds[remaining[0]]
		if !seen[idx] {
			seen[idx] = true
			joinOrder = append(joinOrder, idx)
		}
	} else if len(remaining) > 1 {
		pq := &arityQueue{}
		heap.Init(pq)
		for _, e := range remaining {
			idx := h.edgesToPreconds[e]
			heap.Push(pq, arityItem{preconditionIndex: idx, arity: len(h.hyperedges[e])})
		}
		for pq.Len() > 0 {
			item := heap.Pop(pq).(arityItem)
			if !seen[item.preconditionIndex] {
				seen[item.preconditionIndex] = true
				joinOrder = append(joinOrder, item.preconditionIndex)
			}
		}
	}
	// Any precondition not yet placed (pure nullary-equivalent or otherwise
	// untouched) is appended last so every table is eventually consumed.
	for i := range positive {
		if !seen[i] {
			joinOrder = append(joinOrder, i)
		}
	}

	plan.joinOrder = joinOrder
	return plan
}

// compileNaive builds the trivial plan used by the naive-join strategy:
// select every positive precondition, then hash-join them left to right in
// declaration order, with no full-reducer pass.
func compileNaive(schema *task.ActionSchema) *schemaPlan {
	positive := schema.NonNullaryPositivePreconditions()
	joinOrder := make([]int, len(positive))
	for i := range positive {
		joinOrder[i] = i
	}
	return &schemaPlan{
		positivePreconditions: positive,
		joinOrder:             joinOrder,
		isGround:              len(schema.Parameters) == 0,
	}
}

type arityItem struct {
	preconditionIndex int
	arity             int
}

// arityQueue orders the GYO remainder smallest-arity-first: cyclic schemas
// leave a remainder joined smallest-arity-first.
type arityQueue []arityItem

func (q arityQueue) Len() int            { return len(q) }
func (q arityQueue) Less(i, j int) bool  { return q[i].arity < q[j].arity }
func (q arityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *arityQueue) Push(x interface{}) { *q = append(*q, x.(arityItem)) }
func (q *arityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
