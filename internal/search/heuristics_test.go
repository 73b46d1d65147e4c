package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/pddltest"
	"github.com/wbrown/janus-lift/internal/search"
)

func TestGoalCountingBlocksworld13Initial(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	h := search.NewGoalCounting(tsk)
	assert.Equal(t, 4.0, h.Evaluate(tsk.InitialState))
}

func TestZeroHeuristicIsAlwaysZero(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	var z search.Zero
	assert.Equal(t, 0.0, z.Evaluate(tsk.InitialState))
}

func TestGoalCountingZeroWhenGoalSatisfied(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	h := search.NewGoalCounting(tsk)
	assert.Equal(t, 4.0, h.Evaluate(tsk.InitialState))

	tsk.Goal.Atoms = nil
	tsk.Goal.PositiveNullaryGoals = nil
	tsk.Goal.NegativeNullaryGoals = nil
	h2 := search.NewGoalCounting(tsk)
	assert.Equal(t, 0.0, h2.Evaluate(tsk.InitialState))
}
