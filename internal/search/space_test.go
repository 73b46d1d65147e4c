package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertOrGetAllocatesThenReuses(t *testing.T) {
	sp := NewSpace()

	id1, isNew := sp.InsertOrGet("a", NoParent, nil, 0, 5)
	assert.True(t, isNew)
	assert.Equal(t, 0, id1)

	id2, isNew := sp.InsertOrGet("a", NoParent, nil, 3, 5)
	assert.False(t, isNew) // same key, g not smaller: no reopen
	assert.Equal(t, id1, id2)
}

func TestInsertOrGetReopensOnLowerG(t *testing.T) {
	sp := NewSpace()
	id, _ := sp.InsertOrGet("a", NoParent, nil, 10, 5)
	sp.Close(id)

	id2, isNew := sp.InsertOrGet("a", 99, "transition", 2, 5)
	assert.True(t, isNew)
	assert.Equal(t, id, id2)
	assert.Equal(t, StatusNew, sp.Node(id2).Status)
	assert.Equal(t, 2.0, sp.Node(id2).G)
	assert.Equal(t, 99, sp.Node(id2).Parent)
}

func TestExtractTransitionsWalksParentChain(t *testing.T) {
	sp := NewSpace()
	root, _ := sp.InsertOrGet("root", NoParent, nil, 0, 0)
	mid, _ := sp.InsertOrGet("mid", root, "t1", 1, 0)
	leaf, _ := sp.InsertOrGet("leaf", mid, "t2", 2, 0)

	transitions := sp.ExtractTransitions(leaf)
	assert.Equal(t, []interface{}{"t1", "t2"}, transitions)
}

func TestExtractTransitionsAtRootIsEmpty(t *testing.T) {
	sp := NewSpace()
	root, _ := sp.InsertOrGet("root", NoParent, nil, 0, 0)
	assert.Empty(t, sp.ExtractTransitions(root))
}
