package search

import (
	"container/heap"

	"github.com/wbrown/janus-lift/internal/task"
	"github.com/wbrown/janus-lift/internal/termination"
)

// Problem is the adapter signature shared by both problem formulations:
// InitialNode/IsGoal/Expand/ExtractPlan.
type Problem interface {
	InitialNode() int
	IsGoal(nodeID int) bool
	Expand(nodeID int) []int
	ExtractPlan(goalID int) task.Plan
}

// Outcome is the result class of a search run: search outcomes are
// values, never errors.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUnsolvable
	OutcomeTimeLimit
	OutcomeMemoryLimit
)

type Result struct {
	Outcome  Outcome
	Plan     task.Plan
	Expanded int
	Generated int
}

type frontierItem struct {
	nodeID int
	h      float64
}

type frontier []frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].h < f[j].h }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// OnExpand, if set, is called after every pop for progress reporting
// (e.g. internal/planlog.Logger.Banner); it may be nil.
type OnExpand func(expanded, generated int, h float64)

// Run executes the single min-priority-queue greedy best-first loop over
// problem, polling term after every pop.
func Run(problem Problem, space *Space, term *termination.Checker, onExpand OnExpand) Result {
	pq := &frontier{}
	heap.Init(pq)

	root := problem.InitialNode()
	heap.Push(pq, frontierItem{nodeID: root, h: space.Node(root).H})

	expanded, generated := 0, 0

	for pq.Len() > 0 {
		item := heap.Pop(pq).(frontierItem)
		node := space.Node(item.nodeID)
		if node.Status == StatusClosed {
			continue
		}
		space.Close(item.nodeID)
		expanded++

		if onExpand != nil {
			onExpand(expanded, generated, node.H)
		}

		if problem.IsGoal(item.nodeID) {
			return Result{
				Outcome:   OutcomeSuccess,
				Plan:      problem.ExtractPlan(item.nodeID),
				Expanded:  expanded,
				Generated: generated,
			}
		}

		if outcome, tripped := term.Check(); tripped {
			return Result{Outcome: translateTermination(outcome), Expanded: expanded, Generated: generated}
		}

		children := problem.Expand(item.nodeID)
		generated += len(children)
		for _, childID := range children {
			child := space.Node(childID)
			if child.Status == StatusClosed {
				continue
			}
			heap.Push(pq, frontierItem{nodeID: childID, h: child.H})
		}
	}

	return Result{Outcome: OutcomeUnsolvable, Expanded: expanded, Generated: generated}
}

func translateTermination(outcome termination.Outcome) Outcome {
	if outcome == termination.MemoryLimitExceeded {
		return OutcomeMemoryLimit
	}
	return OutcomeTimeLimit
}
