// Package search implements the generic best-first search engine: an
// index-stable node array shared by both problem formulations, greedy
// best-first search over an abstract Problem, and the
// state-space/partial-action-space adapters.
package search

import "math"

type NodeStatus int

const (
	StatusNew NodeStatus = iota
	StatusClosed
)

// NoParent marks a root node (empty transition chain).
const NoParent = -1

// Node is the per-node bookkeeping: g, h, status, parent, and the
// transition that produced it. Transition is opaque to Space —
// each ProblemFormulation knows how to interpret its own transitions
// (task.Action for state-space, task.PartialActionDiff for
// partial-action-space).
type Node struct {
	ID         int
	Status     NodeStatus
	G          float64
	H          float64
	Parent     int
	Transition interface{}
}

// Space is the growable, index-stable node array plus the packed-state ->
// node id dictionary. Node ids are never recycled. The key
// passed to InsertOrGet must already uniquely identify the underlying
// search state (for state-space search, the packed state's Key(); for
// partial-action search, the packed state's key concatenated with the
// partial action's own identity).
type Space struct {
	nodes     []Node
	keyToID   map[string]int
}

func NewSpace() *Space {
	return &Space{keyToID: map[string]int{}}
}

// InsertOrGet returns the existing node for key if known, else allocates a
// new node in status New with the given parent/transition/g. When the node
// already exists and g is strictly smaller than its current g, the node is
// reopened (its g, h, parent, and transition are updated and its status is
// reset to New) so the engine will reconsider it — the "g_parent + 1 <
// g_child" reopening rule.
func (sp *Space) InsertOrGet(key string, parent int, transition interface{}, g, h float64) (id int, isNew bool) {
	if existing, ok := sp.keyToID[key]; ok {
		n := &sp.nodes[existing]
		if g < n.G {
			n.G = g
			n.H = h
			n.Parent = parent
			n.Transition = transition
			n.Status = StatusNew
			return existing, true
		}
		return existing, false
	}
	id = len(sp.nodes)
	sp.nodes = append(sp.nodes, Node{
		ID:         id,
		Status:     StatusNew,
		G:          g,
		H:          h,
		Parent:     parent,
		Transition: transition,
	})
	sp.keyToID[key] = id
	return id, true
}

func (sp *Space) Node(id int) *Node { return &sp.nodes[id] }

func (sp *Space) Close(id int) { sp.nodes[id].Status = StatusClosed }

// ExtractTransitions walks parent pointers from goalID back to the root,
// emitting transitions in reverse order then reversing the result.
func (sp *Space) ExtractTransitions(goalID int) []interface{} {
	var rev []interface{}
	for id := goalID; id != NoParent; id = sp.nodes[id].Parent {
		n := &sp.nodes[id]
		if n.Parent == NoParent {
			break
		}
		rev = append(rev, n.Transition)
	}
	out := make([]interface{}, len(rev))
	for i, t := range rev {
		out[len(rev)-1-i] = t
	}
	return out
}

func isInf(h float64) bool { return math.IsInf(h, 1) }
