package search

import (
	"fmt"
	"strings"

	"github.com/wbrown/janus-lift/internal/statepack"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/task"
)

// PartialSpace is the partial-action problem formulation: nodes are
// (packed DBState, PartialAction) pairs, transitions are
// PartialActionDiffs (choose a schema, or bind the next free parameter).
//
// This implementation always inserts one Space node per transition rather
// than collapsing a schema's singleton "only one outgoing transition"
// chains via eager recursion: state is unchanged across every Bind
// transition, so the heuristic is simply reused rather than recomputed,
// which gets the same asymptotic win (no redundant grounding) without the
// extra control flow of skipping queue insertions for singleton chains.
type PartialSpace struct {
	t         *task.Task
	generator *successor.Generator
	packer    *statepack.Packer
	heuristic Heuristic
	space     *Space

	packedOf  map[int]*statepack.PackedState
	partialOf map[int]task.PartialAction
}

func NewPartialSpace(t *task.Task, gen *successor.Generator, packer *statepack.Packer, h Heuristic) *PartialSpace {
	return &PartialSpace{
		t:         t,
		generator: gen,
		packer:    packer,
		heuristic: h,
		space:     NewSpace(),
		packedOf:  map[int]*statepack.PackedState{},
		partialOf: map[int]task.PartialAction{},
	}
}

func (ps *PartialSpace) Space() *Space { return ps.space }

func partialKey(p task.PartialAction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "|%d[", p.SchemaIndex)
	for _, v := range p.PartialInstantiation {
		fmt.Fprintf(&b, "%d,", v)
	}
	b.WriteByte(']')
	return b.String()
}

func (ps *PartialSpace) InitialNode() int {
	packed := ps.packer.Pack(ps.t.InitialState)
	h := ps.heuristic.Evaluate(ps.t.InitialState)
	id, _ := ps.space.InsertOrGet(packed.Key()+partialKey(task.NoPartial), NoParent, nil, 0, h)
	ps.packedOf[id] = packed
	ps.partialOf[id] = task.NoPartial
	return id
}

func (ps *PartialSpace) IsGoal(nodeID int) bool {
	partial := ps.partialOf[nodeID]
	s := ps.packer.Unpack(ps.packedOf[nodeID])
	switch {
	case partial.IsNone():
		return ps.t.Goal.IsSatisfied(s)
	case partial.IsComplete(ps.t):
		succ := ps.generator.GenerateSuccessor(s, partial.ToAction())
		return ps.t.Goal.IsSatisfied(succ)
	default:
		return false
	}
}

func (ps *PartialSpace) Expand(nodeID int) []int {
	node := ps.space.Node(nodeID)
	partial := ps.partialOf[nodeID]
	s := ps.packer.Unpack(ps.packedOf[nodeID])

	var children []int

	if partial.IsNone() || partial.IsComplete(ps.t) {
		cur := s
		if partial.IsComplete(ps.t) {
			cur = ps.generator.GenerateSuccessor(s, partial.ToAction())
		}
		packed := ps.packer.Pack(cur)
		h := ps.heuristic.Evaluate(cur)

		for schemaIdx := range ps.t.ActionSchemas {
			if len(ps.generator.ApplicableActions(cur, schemaIdx)) == 0 {
				continue
			}
			newPartial := task.PartialAction{SchemaIndex: schemaIdx, PartialInstantiation: []int{}}
			key := packed.Key() + partialKey(newPartial)
			id, isNew := ps.space.InsertOrGet(key, nodeID, task.SchemaDiff(schemaIdx), node.G+1, h)
			if isNew {
				ps.packedOf[id] = packed
				ps.partialOf[id] = newPartial
				children = append(children, id)
			}
		}
		return children
	}

	schemaIdx := partial.SchemaIndex
	depth := len(partial.PartialInstantiation)
	seen := map[int]bool{}
	for _, a := range ps.generator.ApplicableFromPartial(s, schemaIdx, partial.PartialInstantiation) {
		nextObj := a.Instantiation[depth]
		if seen[nextObj] {
			continue
		}
		seen[nextObj] = true
		newPartial := partial.AddInstantiation(nextObj)
		packed := ps.packedOf[nodeID]
		key := packed.Key() + partialKey(newPartial)
		id, isNew := ps.space.InsertOrGet(key, nodeID, task.BindDiff(nextObj), node.G+1, node.H)
		if isNew {
			ps.packedOf[id] = packed
			ps.partialOf[id] = newPartial
			children = append(children, id)
		}
	}
	return children
}

// ExtractPlan replays the PartialActionDiff sequence, emitting a ground
// Action every time the running PartialAction reaches completion.
func (ps *PartialSpace) ExtractPlan(goalID int) task.Plan {
	transitions := ps.space.ExtractTransitions(goalID)
	var steps []task.Action
	cur := task.NoPartial
	for _, raw := range transitions {
		diff := raw.(task.PartialActionDiff)
		switch diff.Kind {
		case task.DiffSchema:
			cur = task.PartialAction{SchemaIndex: diff.Value, PartialInstantiation: []int{}}
		case task.DiffBind:
			cur = cur.AddInstantiation(diff.Value)
		}
		if cur.IsComplete(ps.t) {
			steps = append(steps, cur.ToAction())
			cur = task.NoPartial
		}
	}
	return task.Plan{Steps: steps}
}
