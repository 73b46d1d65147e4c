package task

import "math"

// PartialAction is a pair (schema index, prefix of parameter bindings), the
// node label of the partial-action search space.
type PartialAction struct {
	SchemaIndex          int
	PartialInstantiation []int
}

// NoPartial is the sentinel root of the partial-action search space: no
// schema chosen yet.
var NoPartial = PartialAction{SchemaIndex: math.MaxInt32}

func (p PartialAction) IsNone() bool {
	return p.SchemaIndex == math.MaxInt32
}

// FromAction truncates a ground action's instantiation to depth parameters,
// producing the partial action that is its ancestor at that depth.
func FromAction(a Action, depth int) PartialAction {
	prefix := make([]int, depth)
	copy(prefix, a.Instantiation[:depth])
	return PartialAction{SchemaIndex: a.Index, PartialInstantiation: prefix}
}

// IsComplete reports whether p's prefix already covers every parameter of
// its schema, i.e. it denotes a fully ground action.
func (p PartialAction) IsComplete(t *Task) bool {
	if p.IsNone() {
		return false
	}
	return len(p.PartialInstantiation) == len(t.ActionSchemas[p.SchemaIndex].Parameters)
}

// ToAction converts a complete PartialAction into an Action.
func (p PartialAction) ToAction() Action {
	inst := make([]int, len(p.PartialInstantiation))
	copy(inst, p.PartialInstantiation)
	return Action{Index: p.SchemaIndex, Instantiation: inst}
}

// AddInstantiation extends the prefix by one more bound object, returning
// the child partial action.
func (p PartialAction) AddInstantiation(objectIndex int) PartialAction {
	next := make([]int, len(p.PartialInstantiation)+1)
	copy(next, p.PartialInstantiation)
	next[len(next)-1] = objectIndex
	return PartialAction{SchemaIndex: p.SchemaIndex, PartialInstantiation: next}
}

// IsPrefixOf reports whether p's bound prefix agrees with action's
// instantiation on every bound position, i.e. action is one of the ground
// actions p could still become.
func (p PartialAction) IsPrefixOf(a Action) bool {
	if p.SchemaIndex != a.Index || len(p.PartialInstantiation) > len(a.Instantiation) {
		return false
	}
	for i, v := range p.PartialInstantiation {
		if a.Instantiation[i] != v {
			return false
		}
	}
	return true
}

// GroupID buckets a partial action for reporting purposes: schema index
// and prefix length together summarise partial-action search progress
// without distinguishing every individual binding.
func (p PartialAction) GroupID() int {
	return p.SchemaIndex*100 + len(p.PartialInstantiation)
}

// PartialActionDiffKind distinguishes the two kinds of transition in the
// partial-action search space: picking a schema, or binding the next free
// parameter to an object.
type PartialActionDiffKind int

const (
	DiffSchema PartialActionDiffKind = iota
	DiffBind
)

type PartialActionDiff struct {
	Kind  PartialActionDiffKind
	Value int // schema index, or object index
}

func SchemaDiff(schemaIndex int) PartialActionDiff {
	return PartialActionDiff{Kind: DiffSchema, Value: schemaIndex}
}

func BindDiff(objectIndex int) PartialActionDiff {
	return PartialActionDiff{Kind: DiffBind, Value: objectIndex}
}

var NoTransition = PartialActionDiff{Kind: DiffSchema, Value: math.MaxInt32}
