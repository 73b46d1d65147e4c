package pddl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/pddltest"
	"github.com/wbrown/janus-lift/internal/task"
)

func TestLoadBlocksworld13(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	assert.Equal(t, "blocksworld", tsk.DomainName)
	assert.Equal(t, "blocksworld-13", tsk.ProblemName)
	assert.Len(t, tsk.Objects, 4)
	assert.Len(t, tsk.Predicates, 5)
	assert.Len(t, tsk.ActionSchemas, 4)

	names := make([]string, len(tsk.ActionSchemas))
	for i, s := range tsk.ActionSchemas {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"pickup", "putdown", "stack", "unstack"}, names)

	assert.Len(t, tsk.Goal.Atoms, 5)
	assert.Empty(t, tsk.Goal.PositiveNullaryGoals)
	assert.Empty(t, tsk.Goal.NegativeNullaryGoals)

	armEmptyIdx := -1
	for _, p := range tsk.Predicates {
		if p.Name == "arm-empty" {
			armEmptyIdx = p.Index
		}
	}
	require.NotEqual(t, -1, armEmptyIdx)
	assert.True(t, tsk.InitialState.Nullary[armEmptyIdx])
	assert.True(t, tsk.NullaryPredicates[armEmptyIdx])
}

func TestLoadSpanner10Typing(t *testing.T) {
	tsk, err := pddl.Load(pddltest.SpannerDomain, pddltest.SpannerProblem10)
	require.NoError(t, err)

	assert.Len(t, tsk.Objects, 1+4+2+8) // bob, 4 spanners, 2 nuts, 8 locations
	assert.Len(t, tsk.ActionSchemas, 3)
	assert.Len(t, tsk.Goal.Atoms, 2)

	var bob *int
	for _, o := range tsk.Objects {
		if o.Name == "bob" {
			idx := o.Index
			bob = &idx
		}
	}
	require.NotNil(t, bob)
	obj := tsk.Objects[*bob]
	// bob is a man, and a man is a locatable, which is an object: every
	// ancestor type index must be present in its type set.
	typeName := func(idx int) string { return tsk.TypeNames[idx] }
	var typeNames []string
	for _, idx := range obj.Types {
		typeNames = append(typeNames, typeName(idx))
	}
	assert.Contains(t, typeNames, "man")
	assert.Contains(t, typeNames, "locatable")
	assert.Contains(t, typeNames, "object")
}

func TestLoadRejectsDisjunction(t *testing.T) {
	domain := `
(define (domain bad)
(:predicates (p) (q))
(:action a
  :parameters ()
  :precondition (or (p) (q))
  :effect (p)))
`
	problem := `
(define (problem bad-1)
(:domain bad)
(:init)
(:goal (p)))
`
	_, err := pddl.Load(domain, problem)
	require.Error(t, err)
	var unsupported *pddl.UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
}

func TestLoadRejectsNegativeNonNullaryGoal(t *testing.T) {
	domain := `
(define (domain bad)
(:predicates (p ?x))
(:action a
  :parameters (?x)
  :precondition (p ?x)
  :effect (not (p ?x))))
`
	problem := `
(define (problem bad-2)
(:domain bad)
(:objects o1 - object)
(:init (p o1))
(:goal (not (p o1))))
`
	_, err := pddl.Load(domain, problem)
	require.Error(t, err)
	var unsupported *pddl.UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
}

func TestWriteAndReadPlanRoundTrip(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	pickup := -1
	for i, s := range tsk.ActionSchemas {
		if s.Name == "pickup" {
			pickup = i
		}
	}
	require.NotEqual(t, -1, pickup)

	b1 := -1
	for _, o := range tsk.Objects {
		if o.Name == "b1" {
			b1 = o.Index
		}
	}
	require.NotEqual(t, -1, b1)

	original := task.Plan{Steps: []task.Action{{Index: pickup, Instantiation: []int{b1}}}}

	path := t.TempDir() + "/out.plan"
	require.NoError(t, pddl.WritePlan(path, tsk, original))

	readBack, err := pddl.ReadPlan(path, tsk)
	require.NoError(t, err)
	assert.Equal(t, original.Steps, readBack.Steps)
}
