package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbrown/janus-lift/internal/state"
)

func TestRelationInsertKeepsSortedAndDeduplicates(t *testing.T) {
	r := state.NewRelation(0)
	assert.True(t, r.Insert(state.GroundAtom{2, 1}))
	assert.True(t, r.Insert(state.GroundAtom{1, 1}))
	assert.False(t, r.Insert(state.GroundAtom{1, 1})) // duplicate

	assert.Equal(t, []state.GroundAtom{{1, 1}, {2, 1}}, r.Tuples)
}

func TestRelationRemove(t *testing.T) {
	r := state.NewRelation(0)
	r.Insert(state.GroundAtom{1, 2})
	assert.True(t, r.Remove(state.GroundAtom{1, 2}))
	assert.False(t, r.Remove(state.GroundAtom{1, 2}))
	assert.False(t, r.Contains(state.GroundAtom{1, 2}))
}

func TestRelationCloneIsIndependent(t *testing.T) {
	r := state.NewRelation(0)
	r.Insert(state.GroundAtom{1, 2})
	clone := r.Clone()
	clone.Insert(state.GroundAtom{3, 4})

	assert.Len(t, r.Tuples, 1)
	assert.Len(t, clone.Tuples, 2)
}

func TestDBStateEqualIgnoresInsertionOrder(t *testing.T) {
	a := state.New(2)
	a.InsertTuple(0, state.GroundAtom{1})
	a.InsertTuple(0, state.GroundAtom{2})

	b := state.New(2)
	b.InsertTuple(0, state.GroundAtom{2})
	b.InsertTuple(0, state.GroundAtom{1})

	assert.True(t, a.Equal(b))
}

func TestDBStateCloneIsIndependent(t *testing.T) {
	a := state.New(1)
	a.SetNullary(0, true)
	b := a.Clone()
	b.SetNullary(0, false)

	assert.True(t, a.Nullary[0])
	assert.False(t, b.Nullary[0])
	assert.False(t, a.Equal(b))
}

func TestDBStateRemoveTuple(t *testing.T) {
	s := state.New(1)
	s.InsertTuple(0, state.GroundAtom{1, 2})
	assert.True(t, s.RemoveTuple(0, state.GroundAtom{1, 2}))
	assert.False(t, s.Relations[0].Contains(state.GroundAtom{1, 2}))
}
