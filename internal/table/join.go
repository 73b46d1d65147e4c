package table

import (
	"strconv"
	"strings"
)

// HashJoin joins a with b in place: a becomes the join result. If the two
// tables share no labelled columns the result is their Cartesian product;
// otherwise b is hashed on its matching columns and each row of a is
// extended with every matching row of b, with b's matching columns dropped
// from the output.
//
// CONCURRENCY: both operands must be owned exclusively by the caller; this
// mutates a and reads b without synchronization.
func HashJoin(a *Table, b Table) {
	if a.IsEmpty() || b.IsEmpty() {
		*a = Empty
		return
	}

	pairs := ComputeMatchingColumns(*a, b)
	if len(pairs) == 0 {
		cartesianProduct(a, b)
		return
	}

	bMatchCols := columnSet(pairs, 1)
	var bKeepCols []int
	for i := range b.Labels {
		if !bMatchCols[i] {
			bKeepCols = append(bKeepCols, i)
		}
	}

	type key = string
	index := map[key][][]int{}
	for _, row := range b.Tuples {
		k := joinKey(row, pairs, 1)
		index[k] = append(index[k], row)
	}

	aMatchCols := make([]int, len(pairs))
	for i, p := range pairs {
		aMatchCols[i] = p[0]
	}

	var joined [][]int
	for _, aRow := range a.Tuples {
		k := joinKeyFromCols(aRow, aMatchCols)
		for _, bRow := range index[k] {
			// bRow is shared across matching a-rows, so copy it rather than
			// reslicing it into the output.
			row := make([]int, 0, len(aRow)+len(bKeepCols))
			row = append(row, aRow...)
			for _, c := range bKeepCols {
				row = append(row, bRow[c])
			}
			joined = append(joined, row)
		}
	}

	newLabels := make([]int, 0, len(a.Labels)+len(bKeepCols))
	newLabels = append(newLabels, a.Labels...)
	for _, c := range bKeepCols {
		newLabels = append(newLabels, b.Labels[c])
	}

	a.Tuples = joined
	a.Labels = newLabels
}

func cartesianProduct(a *Table, b Table) {
	var joined [][]int
	for _, aRow := range a.Tuples {
		for _, bRow := range b.Tuples {
			row := make([]int, 0, len(aRow)+len(bRow))
			row = append(row, aRow...)
			row = append(row, bRow...)
			joined = append(joined, row)
		}
	}
	newLabels := make([]int, 0, len(a.Labels)+len(b.Labels))
	newLabels = append(newLabels, a.Labels...)
	newLabels = append(newLabels, b.Labels...)
	a.Tuples = joined
	a.Labels = newLabels
}

func joinKey(row []int, pairs [][2]int, colIndex int) string {
	cols := make([]int, len(pairs))
	for i, p := range pairs {
		cols[i] = p[colIndex]
	}
	return joinKeyFromCols(row, cols)
}

func joinKeyFromCols(row []int, cols []int) string {
	var b strings.Builder
	for _, c := range cols {
		b.WriteString(strconv.Itoa(row[c]))
		b.WriteByte('|')
	}
	return b.String()
}
