// Package successor implements the lifted successor generator: GYO
// full-reducer precompilation per schema, the applicability query, and
// ground successor computation.
package successor

import "github.com/wbrown/janus-lift/internal/task"

// hypergraph has one node per free parameter mentioned in a schema's
// positive non-nullary preconditions, and one hyperedge per such
// precondition (the set of parameters it mentions). Negative non-nullary
// preconditions are not part of the join hypergraph: they are evaluated as
// a post-filter against each candidate binding (see generator.go), mirroring
// how the reference successor generator tests ground-action applicability
// directly against the state relation rather than joining on them.
type hypergraph struct {
	hyperedges      []map[int]bool
	nodeCounters    map[int]int
	edgesToPreconds []int // hyperedge index -> index into the positive-precondition slice
	missingPreconds []int // precondition indices with no free parameters at all
}

func buildHypergraph(preconditions []task.SchemaAtom) *hypergraph {
	h := &hypergraph{nodeCounters: map[int]int{}}
	for preIdx, pre := range preconditions {
		vars := pre.FreeVariables()
		if len(vars) == 0 {
			h.missingPreconds = append(h.missingPreconds, preIdx)
			continue
		}
		edge := map[int]bool{}
		for _, v := range vars {
			edge[v] = true
			h.nodeCounters[v]++
		}
		h.hyperedges = append(h.hyperedges, edge)
		h.edgesToPreconds = append(h.edgesToPreconds, preIdx)
	}
	return h
}

func setMinus(a, b map[int]bool) map[int]bool {
	out := map[int]bool{}
	for k := range a {
		if !b[k] {
			out[k] = true
		}
	}
	return out
}

// gyoEarRemoval runs Ullman-style GYO ear removal: repeatedly finds a
// hyperedge e and a distinct hyperedge f such that every node in e\f has no
// other occurrence, removes e, and records (e, f) (as precondition indices)
// into the reducer program. Returns the removal order (as precondition
// index pairs) and the list of surviving hyperedge indices (into the
// original hyperedges slice).
func gyoEarRemoval(h *hypergraph) (program [][2]int, remaining []int) {
	removed := make([]bool, len(h.hyperedges))
	counters := map[int]int{}
	for k, v := range h.nodeCounters {
		counters[k] = v
	}

	removedAny := true
	for removedAny {
		removedAny = false
		for i := range h.hyperedges {
			if removed[i] {
				continue
			}
			for j := range h.hyperedges {
				if i == j || removed[j] {
					continue
				}
				diff := setMinus(h.hyperedges[i], h.hyperedges[j])
				isEar := true
				for node := range diff {
					if counters[node] > 1 {
						isEar = false
						break
					}
				}
				if !isEar {
					continue
				}
				program = append(program, [2]int{h.edgesToPreconds[i], h.edgesToPreconds[j]})
				for node := range h.hyperedges[i] {
					counters[node]--
				}
				removed[i] = true
				removedAny = true
				break
			}
			if removedAny {
				break
			}
		}
	}

	for i := range h.hyperedges {
		if !removed[i] {
			remaining = append(remaining, i)
		}
	}
	return program, remaining
}
