package relax

// Normalize runs the rule-shape transformation pipeline (static-fact
// generation and the goal rule are separate program-level steps performed
// by Translate/GenerateStaticFacts/AddGoalRule, and variable
// renaming is unnecessary here because the grounder keys each rule's
// bindings by variable index within that rule). Every rule in
// the returned program has one of the three canonical shapes: project
// (single condition), product (conditions share no variable), or join
// (exactly two conditions sharing a variable).
//
// Constant arguments inside a condition are not factored out into a
// separate "project away constants" rule: the grounder (grounder.go)
// matches a fact against a condition atom by checking constant-position
// agreement directly, so a dedicated projection rule for a predicate-only
// rule matcher has no work left to do here.
func Normalize(p *Program) {
	var out []Rule
	for _, r := range p.Rules {
		out = append(out, normalizeRule(p, r)...)
	}
	p.Rules = out
}

func normalizeRule(p *Program, r Rule) []Rule {
	if len(r.Conditions) <= 1 {
		r.Kind = KindProject
		return []Rule{r}
	}

	components := connectedComponents(r.Conditions)
	if len(components) > 1 {
		var produced []Rule
		var newConditions []Atom
		for _, comp := range components {
			if len(comp) == 1 {
				newConditions = append(newConditions, r.Conditions[comp[0]])
				continue
			}
			compConds := make([]Atom, len(comp))
			for i, idx := range comp {
				compConds[i] = r.Conditions[idx]
			}
			needed := neededVariables(r, comp)
			keep := intersectVars(variablesOf(compConds), needed)
			auxAtom := Atom{Predicate: p.NewAuxPredicate(), Args: varsToTerms(keep), Artificial: true}
			subRule := Rule{Effect: auxAtom, Conditions: compConds, Weight: 0, SchemaIndex: -1}
			produced = append(produced, normalizeRule(p, subRule)...)
			newConditions = append(newConditions, auxAtom)
		}
		r.Conditions = newConditions
		return append(produced, binarize(p, r)...)
	}

	return binarize(p, r)
}

func binarize(p *Program, r Rule) []Rule {
	var produced []Rule
	conds := append([]Atom{}, r.Conditions...)

	for len(conds) > 2 {
		i, j := cheapestPair(conds)
		kind := KindProduct
		if conds[i].SharesVariableWith(conds[j]) {
			kind = KindJoin
		}
		rest := make([]Atom, 0, len(conds))
		for k, c := range conds {
			if k != i && k != j {
				rest = append(rest, c)
			}
		}
		needed := unionVars(r.Effect.VariableSet(), variablesOf(rest))
		keep := intersectVars(variablesOf([]Atom{conds[i], conds[j]}), needed)
		auxAtom := Atom{Predicate: p.NewAuxPredicate(), Args: varsToTerms(keep), Artificial: true}
		produced = append(produced, Rule{
			Effect:     auxAtom,
			Conditions: []Atom{conds[i], conds[j]},
			Weight:     0,
			Kind:       kind,
			SchemaIndex: -1,
		})
		conds = append(rest, auxAtom)
	}

	r.Conditions = conds
	switch {
	case len(conds) == 1:
		r.Kind = KindProject
	case conds[0].SharesVariableWith(conds[1]):
		r.Kind = KindJoin
	default:
		r.Kind = KindProduct
	}
	produced = append(produced, r)
	return produced
}

// cheapestPair picks the two conditions whose merge is cheapest under a
// Fast-Downward-style cost: prefer pairs sharing many variables (so the
// join narrows rather than explodes) and small combined arity, tie-broken
// by index for determinism.
func cheapestPair(conds []Atom) (int, int) {
	bestI, bestJ, bestCost := 0, 1, int(^uint(0)>>1)
	for i := 0; i < len(conds); i++ {
		for j := i + 1; j < len(conds); j++ {
			shared := sharedVariableCount(conds[i], conds[j])
			cost := len(conds[i].Args) + len(conds[j].Args) - 2*shared
			if cost < bestCost {
				bestCost, bestI, bestJ = cost, i, j
			}
		}
	}
	return bestI, bestJ
}

func sharedVariableCount(a, b Atom) int {
	bs := b.VariableSet()
	n := 0
	for v := range a.VariableSet() {
		if bs[v] {
			n++
		}
	}
	return n
}

func variablesOf(atoms []Atom) map[int]bool {
	out := map[int]bool{}
	for _, a := range atoms {
		for v := range a.VariableSet() {
			out[v] = true
		}
	}
	return out
}

func unionVars(a, b map[int]bool) map[int]bool {
	out := map[int]bool{}
	for v := range a {
		out[v] = true
	}
	for v := range b {
		out[v] = true
	}
	return out
}

func intersectVars(a, b map[int]bool) map[int]bool {
	out := map[int]bool{}
	for v := range a {
		if b[v] {
			out[v] = true
		}
	}
	return out
}

func varsToTerms(vars map[int]bool) []Term {
	ids := make([]int, 0, len(vars))
	for v := range vars {
		ids = append(ids, v)
	}
	// Sort for deterministic auxiliary-predicate argument order.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	terms := make([]Term, len(ids))
	for i, v := range ids {
		terms[i] = Var(v)
	}
	return terms
}

// neededVariables computes the variables a split-off component must retain:
// those it shares with the rule's effect or with any condition outside the
// component.
func neededVariables(r Rule, comp []int) map[int]bool {
	inComp := map[int]bool{}
	for _, i := range comp {
		inComp[i] = true
	}
	needed := map[int]bool{}
	for v := range r.Effect.VariableSet() {
		needed[v] = true
	}
	for i, c := range r.Conditions {
		if inComp[i] {
			continue
		}
		for v := range c.VariableSet() {
			needed[v] = true
		}
	}
	return needed
}

// connectedComponents groups condition indices into components, treating
// two conditions as connected iff they share a variable.
func connectedComponents(conds []Atom) [][]int {
	n := len(conds)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if conds[i].SharesVariableWith(conds[j]) {
				union(i, j)
			}
		}
	}

	groups := map[int][]int{}
	var order []int
	for i := 0; i < n; i++ {
		root := find(i)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = append(groups[root], i)
	}
	out := make([][]int, 0, len(order))
	for _, root := range order {
		out = append(out, groups[root])
	}
	return out
}
