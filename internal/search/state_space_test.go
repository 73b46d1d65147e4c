package search_test

import (
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/pddltest"
	"github.com/wbrown/janus-lift/internal/relax"
	"github.com/wbrown/janus-lift/internal/search"
	"github.com/wbrown/janus-lift/internal/statepack"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/termination"
	"github.com/wbrown/janus-lift/internal/validate"
)

func TestStateSpaceSolvesBlocksworld13WithFf(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	gen := successor.New(tsk, successor.FullReducer)
	packer := statepack.New(tsk)
	h := relax.NewHeuristic(tsk, relax.Hff)

	problem := search.NewStateSpace(tsk, gen, packer, h)
	term := termination.New(30*time.Second, 0, nil)

	result := search.Run(problem, problem.Space(), term, nil)

	require.Equal(t, search.OutcomeSuccess, result.Outcome)
	assert.NotEmpty(t, result.Plan.Steps)

	_, failure := validate.Validate(tsk, gen, result.Plan)
	assert.Nil(t, failure, "plan should validate: %v", failure)
}

func TestStateSpaceUnsolvableGoalReportsUnsolvable(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	// No object has index 999, so this copied conjunct holds in no
	// reachable state: an impossible conjunct makes the whole goal unreachable.
	tsk.Goal.Atoms = append(tsk.Goal.Atoms, tsk.Goal.Atoms[0])
	tsk.Goal.Atoms[len(tsk.Goal.Atoms)-1].Arguments = []int{999}

	gen := successor.New(tsk, successor.FullReducer)
	packer := statepack.New(tsk)
	var zero search.Zero
	problem := search.NewStateSpace(tsk, gen, packer, zero)
	term := termination.New(5*time.Second, 0, nil)

	result := search.Run(problem, problem.Space(), term, nil)
	assert.Equal(t, search.OutcomeUnsolvable, result.Outcome)
}

func TestStateSpaceTimeLimitExceeded(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	// A goal that is never satisfied keeps the search running until the
	// near-instant time limit trips.
	tsk.Goal.Atoms = append(tsk.Goal.Atoms, tsk.Goal.Atoms[0])
	tsk.Goal.Atoms[len(tsk.Goal.Atoms)-1].Arguments = []int{999}

	gen := successor.New(tsk, successor.FullReducer)
	packer := statepack.New(tsk)
	var zero search.Zero
	problem := search.NewStateSpace(tsk, gen, packer, zero)
	term := termination.New(1*time.Nanosecond, 0, nil)

	result := search.Run(problem, problem.Space(), term, nil)
	assert.Equal(t, search.OutcomeTimeLimit, result.Outcome)
}
