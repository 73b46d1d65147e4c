package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

func TestGoalIsSatisfied(t *testing.T) {
	g := task.Goal{
		Atoms:                []task.GoalAtom{{PredicateIndex: 0, Arguments: []int{1, 2}}},
		PositiveNullaryGoals: []int{1},
		NegativeNullaryGoals: []int{2},
	}

	s := state.New(3)
	s.InsertTuple(0, state.GroundAtom{1, 2})
	s.SetNullary(1, true)

	assert.True(t, g.IsSatisfied(s))

	s.SetNullary(2, true) // violates the negative nullary goal
	assert.False(t, g.IsSatisfied(s))
}

func TestObjectHasType(t *testing.T) {
	o := task.Object{Index: 0, Name: "b1", Types: []int{2, 5}}
	assert.True(t, o.HasType(2))
	assert.False(t, o.HasType(3))
}

func TestActionStringRendersPlanLine(t *testing.T) {
	tsk := &task.Task{
		Objects: []task.Object{{Index: 0, Name: "b1"}, {Index: 1, Name: "b2"}},
		ActionSchemas: []task.ActionSchema{
			{Index: 0, Name: "stack", Parameters: []task.SchemaParameter{{Index: 0}, {Index: 1}}},
		},
	}
	a := task.Action{Index: 0, Instantiation: []int{0, 1}}
	assert.Equal(t, "(stack b1 b2)", a.String(tsk))
}

func TestPartialActionLifecycle(t *testing.T) {
	tsk := &task.Task{
		ActionSchemas: []task.ActionSchema{
			{Index: 0, Parameters: []task.SchemaParameter{{Index: 0}, {Index: 1}}},
		},
	}

	p := task.NoPartial
	assert.True(t, p.IsNone())

	p = task.PartialAction{SchemaIndex: 0, PartialInstantiation: []int{}}
	assert.False(t, p.IsComplete(tsk))

	p = p.AddInstantiation(7)
	assert.False(t, p.IsComplete(tsk))

	p = p.AddInstantiation(9)
	assert.True(t, p.IsComplete(tsk))

	a := p.ToAction()
	assert.Equal(t, task.Action{Index: 0, Instantiation: []int{7, 9}}, a)
}

func TestPartialActionIsPrefixOf(t *testing.T) {
	p := task.PartialAction{SchemaIndex: 0, PartialInstantiation: []int{7}}
	a := task.Action{Index: 0, Instantiation: []int{7, 9}}
	assert.True(t, p.IsPrefixOf(a))

	other := task.Action{Index: 0, Instantiation: []int{8, 9}}
	assert.False(t, p.IsPrefixOf(other))

	wrongSchema := task.Action{Index: 1, Instantiation: []int{7, 9}}
	assert.False(t, p.IsPrefixOf(wrongSchema))
}
