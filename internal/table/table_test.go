package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbrown/janus-lift/internal/table"
)

func tbl(labels []int, rows ...[]int) table.Table {
	return table.Table{Labels: labels, Tuples: rows}
}

func TestHashJoinOnSharedColumn(t *testing.T) {
	a := tbl([]int{0, 1}, []int{1, 10}, []int{2, 20})
	b := tbl([]int{1, 2}, []int{10, 100}, []int{99, 999})

	table.HashJoin(&a, b)

	assert.Equal(t, []int{0, 1, 2}, a.Labels)
	assert.Equal(t, [][]int{{1, 10, 100}}, a.Tuples)
}

func TestHashJoinNoSharedColumnIsCartesianProduct(t *testing.T) {
	a := tbl([]int{0}, []int{1}, []int{2})
	b := tbl([]int{1}, []int{10}, []int{20})

	table.HashJoin(&a, b)

	assert.Equal(t, []int{0, 1}, a.Labels)
	assert.ElementsMatch(t, [][]int{{1, 10}, {1, 20}, {2, 10}, {2, 20}}, a.Tuples)
}

func TestHashJoinEmptyOperandShortCircuits(t *testing.T) {
	a := table.Empty
	b := tbl([]int{0}, []int{1})

	table.HashJoin(&a, b)
	assert.True(t, a.IsEmpty())
}

func TestHashJoinFanOutProducesIndependentRows(t *testing.T) {
	// Every row of a joins against the same b row: the join must copy b's
	// tail into each output row rather than sharing a backing array.
	a := tbl([]int{0, 1}, []int{1, 5}, []int{2, 5})
	b := tbl([]int{1, 2}, []int{5, 50})

	table.HashJoin(&a, b)

	require := assert.New(t)
	require.Len(a.Tuples, 2)
	a.Tuples[0][2] = 999
	require.Equal(50, a.Tuples[1][2])
}

func TestProjectKeepsFirstRowPerDistinctCombination(t *testing.T) {
	a := tbl([]int{0, 1}, []int{1, 10}, []int{1, 10}, []int{2, 20})
	table.Project(&a, map[int]bool{0: true, 1: true})
	assert.Len(t, a.Tuples, 2)
}

func TestSemiJoinKeepsOnlyMatchingRows(t *testing.T) {
	a := tbl([]int{0}, []int{1}, []int{2}, []int{3})
	b := tbl([]int{0}, []int{2}, []int{3})

	n := table.SemiJoin(&a, b)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, [][]int{{2}, {3}}, a.Tuples)
}

func TestSemiJoinNoSharedColumnsLeavesUnchanged(t *testing.T) {
	a := tbl([]int{0}, []int{1}, []int{2})
	b := tbl([]int{1}, []int{100})

	n := table.SemiJoin(&a, b)
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]int{{1}, {2}}, a.Tuples)
}
