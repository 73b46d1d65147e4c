package successor_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/pddltest"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/task"
)

func actionKeys(actions []task.Action) []string {
	keys := make([]string, len(actions))
	for i, a := range actions {
		keys[i] = fmt.Sprintf("%d%v", a.Index, a.Instantiation)
	}
	sort.Strings(keys)
	return keys
}

func allApplicable(gen *successor.Generator, tsk *task.Task) []task.Action {
	var out []task.Action
	for i := range tsk.ActionSchemas {
		out = append(out, gen.ApplicableActions(tsk.InitialState, i)...)
	}
	return out
}

func TestFullReducerAndNaiveJoinAgree(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	full := successor.New(tsk, successor.FullReducer)
	naive := successor.New(tsk, successor.NaiveJoin)

	assert.Equal(t, actionKeys(allApplicable(full, tsk)), actionKeys(allApplicable(naive, tsk)))
}

func TestApplicableActionsNonEmptyInInitialState(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	gen := successor.New(tsk, successor.FullReducer)
	assert.NotEmpty(t, allApplicable(gen, tsk))
}

func TestApplicableFromPartialRestrictsToPrefix(t *testing.T) {
	tsk, err := pddl.Load(pddltest.BlocksworldDomain, pddltest.BlocksworldProblem13)
	require.NoError(t, err)

	gen := successor.New(tsk, successor.FullReducer)

	for schemaIdx := range tsk.ActionSchemas {
		actions := gen.ApplicableActions(tsk.InitialState, schemaIdx)
		if len(actions) == 0 || len(actions[0].Instantiation) == 0 {
			continue
		}
		prefix := []int{actions[0].Instantiation[0]}
		restricted := gen.ApplicableFromPartial(tsk.InitialState, schemaIdx, prefix)
		require.NotEmpty(t, restricted)
		for _, a := range restricted {
			assert.Equal(t, prefix[0], a.Instantiation[0])
		}
		return
	}
	t.Skip("no schema with at least one parameter had an applicable action")
}

func TestStrategyFromName(t *testing.T) {
	s, err := successor.StrategyFromName("full-reducer")
	assert.NoError(t, err)
	assert.Equal(t, successor.FullReducer, s)

	s, err = successor.StrategyFromName("naive-join")
	assert.NoError(t, err)
	assert.Equal(t, successor.NaiveJoin, s)

	_, err = successor.StrategyFromName("bogus")
	assert.Error(t, err)
}
