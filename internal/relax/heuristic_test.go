package relax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/pddltest"
	"github.com/wbrown/janus-lift/internal/relax"
)

// Expected h_add/h_ff values below are known-correct fixed points for the
// blocksworld-13 and spanner-10 fixtures.

func TestHaddBlocksworld13Initial(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	h := relax.NewHeuristic(tsk, relax.Hadd)
	assert.Equal(t, 15.0, h.Evaluate(tsk.InitialState))
}

func TestHffBlocksworld13Initial(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	h := relax.NewHeuristic(tsk, relax.Hff)
	value, plan := h.RelaxedPlan(tsk.InitialState)
	assert.Equal(t, 7.0, value)
	assert.Len(t, plan, 7)
}

func TestHaddSpanner10Initial(t *testing.T) {
	tsk, err := pddl.Load(pddltest.SpannerDomain, pddltest.SpannerProblem10)
	require.NoError(t, err)

	h := relax.NewHeuristic(tsk, relax.Hadd)
	assert.Equal(t, 6.0, h.Evaluate(tsk.InitialState))
}

func TestHffSpanner10Initial(t *testing.T) {
	tsk, err := pddl.Load(pddltest.SpannerDomain, pddltest.SpannerProblem10)
	require.NoError(t, err)

	h := relax.NewHeuristic(tsk, relax.Hff)
	value, plan := h.RelaxedPlan(tsk.InitialState)
	assert.Equal(t, 10.0, value)
	assert.Len(t, plan, 10)
}

// h_max never exceeds h_add: the max of a set of achiever costs can never
// be larger than their sum.
func TestHmaxNeverExceedsHadd(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	hmax := relax.NewHeuristic(tsk, relax.Hmax)
	hadd := relax.NewHeuristic(tsk, relax.Hadd)
	assert.LessOrEqual(t, hmax.Evaluate(tsk.InitialState), hadd.Evaluate(tsk.InitialState))
}

func TestGoalAlreadySatisfiedIsZero(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	// Trivial goal: the initial state already satisfies "arm-empty".
	tsk.Goal.PositiveNullaryGoals = []int{}
	for idx, p := range tsk.Predicates {
		if p.Name == "arm-empty" {
			tsk.Goal.PositiveNullaryGoals = []int{idx}
		}
	}
	require.Len(t, tsk.Goal.PositiveNullaryGoals, 1)
	tsk.Goal.Atoms = nil

	h := relax.NewHeuristic(tsk, relax.Hadd)
	assert.Equal(t, 0.0, h.Evaluate(tsk.InitialState))
}
