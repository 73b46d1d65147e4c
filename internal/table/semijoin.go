package table

// SemiJoin retains only the rows of a that have at least one matching row
// in b on their shared labelled columns. It mutates a and
// returns its new row count. If a and b share no labelled columns, a is
// left unchanged (every row trivially "matches").
func SemiJoin(a *Table, b Table) int {
	if a.IsEmpty() {
		return 0
	}
	if b.IsEmpty() {
		*a = Empty
		return 0
	}

	pairs := ComputeMatchingColumns(*a, b)
	if len(pairs) == 0 {
		return len(a.Tuples)
	}

	bCols := make([]int, len(pairs))
	aCols := make([]int, len(pairs))
	for i, p := range pairs {
		aCols[i] = p[0]
		bCols[i] = p[1]
	}

	keys := map[string]bool{}
	for _, row := range b.Tuples {
		keys[joinKeyFromCols(row, bCols)] = true
	}

	kept := a.Tuples[:0]
	for _, row := range a.Tuples {
		if keys[joinKeyFromCols(row, aCols)] {
			kept = append(kept, row)
		}
	}
	a.Tuples = kept
	return len(a.Tuples)
}
