package search

import (
	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/statepack"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/task"
)

// Heuristic is the thin interface problem formulations consume:
// goal-counting, zero, and the relax-package h_add/h_max/h_ff heuristics
// all satisfy it.
type Heuristic interface {
	Evaluate(s *state.DBState) float64
}

// StateSpace is the state-space problem formulation: nodes are packed
// DBStates, transitions are ground Actions.
type StateSpace struct {
	t         *task.Task
	generator *successor.Generator
	packer    *statepack.Packer
	heuristic Heuristic
	space     *Space

	packedOf map[int]*statepack.PackedState
}

func NewStateSpace(t *task.Task, gen *successor.Generator, packer *statepack.Packer, h Heuristic) *StateSpace {
	sp := &StateSpace{
		t:         t,
		generator: gen,
		packer:    packer,
		heuristic: h,
		space:     NewSpace(),
		packedOf:  map[int]*statepack.PackedState{},
	}
	return sp
}

func (sp *StateSpace) Space() *Space { return sp.space }

func (sp *StateSpace) InitialNode() int {
	packed := sp.packer.Pack(sp.t.InitialState)
	h := sp.heuristic.Evaluate(sp.t.InitialState)
	id, _ := sp.space.InsertOrGet(packed.Key(), NoParent, nil, 0, h)
	sp.packedOf[id] = packed
	return id
}

func (sp *StateSpace) IsGoal(nodeID int) bool {
	s := sp.packer.Unpack(sp.packedOf[nodeID])
	return sp.t.Goal.IsSatisfied(s)
}

func (sp *StateSpace) Expand(nodeID int) []int {
	node := sp.space.Node(nodeID)
	s := sp.packer.Unpack(sp.packedOf[nodeID])

	var children []int
	for schemaIdx := range sp.t.ActionSchemas {
		for _, action := range sp.generator.ApplicableActions(s, schemaIdx) {
			successorState := sp.generator.GenerateSuccessor(s, action)
			packed := sp.packer.Pack(successorState)
			h := sp.heuristic.Evaluate(successorState)
			g := node.G + 1
			childID, isNew := sp.space.InsertOrGet(packed.Key(), nodeID, action, g, h)
			if isNew {
				sp.packedOf[childID] = packed
				children = append(children, childID)
			}
		}
	}
	return children
}

func (sp *StateSpace) ExtractPlan(goalID int) task.Plan {
	transitions := sp.space.ExtractTransitions(goalID)
	steps := make([]task.Action, len(transitions))
	for i, t := range transitions {
		steps[i] = t.(task.Action)
	}
	return task.Plan{Steps: steps}
}
