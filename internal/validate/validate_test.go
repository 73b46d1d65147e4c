package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/pddltest"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/task"
	"github.com/wbrown/janus-lift/internal/validate"
)

func firstApplicable(t *testing.T, gen *successor.Generator, tsk *task.Task) task.Action {
	t.Helper()
	for i := range tsk.ActionSchemas {
		if actions := gen.ApplicableActions(tsk.InitialState, i); len(actions) > 0 {
			return actions[0]
		}
	}
	t.Fatal("no applicable action found in initial state")
	return task.NoAction
}

func TestValidateAcceptsApplicableStep(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	gen := successor.New(tsk, successor.FullReducer)
	a := firstApplicable(t, gen, tsk)

	_, failure := validate.Validate(tsk, gen, task.Plan{Steps: []task.Action{a}})
	if failure != nil {
		assert.Equal(t, "final state does not satisfy goal", failure.Reason)
	}
}

func TestValidateRejectsInapplicableAction(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	gen := successor.New(tsk, successor.FullReducer)
	a := firstApplicable(t, gen, tsk)

	// Run the same action twice in a row: its second application is not
	// applicable once the first has consumed its preconditions.
	plan := task.Plan{Steps: []task.Action{a, a}}
	_, failure := validate.Validate(tsk, gen, plan)
	require.NotNil(t, failure)
	assert.Equal(t, 1, failure.StepIndex)
	assert.Equal(t, "action not applicable in current state", failure.Reason)
	assert.Contains(t, failure.Error(), "step 1")
}

func TestValidateRejectsUnsatisfiedGoal(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	gen := successor.New(tsk, successor.FullReducer)

	_, failure := validate.Validate(tsk, gen, task.Plan{})
	require.NotNil(t, failure)
	assert.Equal(t, "final state does not satisfy goal", failure.Reason)
	assert.Equal(t, 0, failure.StepIndex)
}
