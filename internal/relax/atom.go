package relax

import (
	"fmt"
	"strings"
)

// Atom is (predicate index, ordered term list, artificial?): artificial
// atoms carry predicates generated during normalization rather than
// predicates of the original task.
type Atom struct {
	Predicate  int
	Args       []Term
	Artificial bool
}

func (a Atom) Variables() []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range a.Args {
		if !t.IsObject && !seen[t.Value] {
			seen[t.Value] = true
			out = append(out, t.Value)
		}
	}
	return out
}

func (a Atom) VariableSet() map[int]bool {
	set := map[int]bool{}
	for _, t := range a.Args {
		if !t.IsObject {
			set[t.Value] = true
		}
	}
	return set
}

func (a Atom) SharesVariableWith(b Atom) bool {
	bs := b.VariableSet()
	for v := range a.VariableSet() {
		if bs[v] {
			return true
		}
	}
	return false
}

func (a Atom) String() string {
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%d(%s)", a.Predicate, strings.Join(parts, ", "))
}

// key returns an equality/hash key usable as a map key, used by the fact
// registry to dedup ground atoms.
func (a Atom) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", a.Predicate)
	for _, t := range a.Args {
		fmt.Fprintf(&b, "%d|", t.Value)
	}
	return b.String()
}

// Substitute replaces every Variable term by bindings[variable], leaving
// Object terms untouched. Panics if a variable has no binding, which would
// indicate a normalization bug (an atom referencing a variable not
// supplied by any of the rule's conditions).
func (a Atom) Substitute(bindings map[int]int) Atom {
	args := make([]Term, len(a.Args))
	for i, t := range a.Args {
		if t.IsObject {
			args[i] = t
			continue
		}
		v, ok := bindings[t.Value]
		if !ok {
			panic(fmt.Sprintf("relax: unbound variable ?%d substituting atom %s", t.Value, a))
		}
		args[i] = Obj(v)
	}
	return Atom{Predicate: a.Predicate, Args: args, Artificial: a.Artificial}
}

// bindingsFromMatch returns the variable->object bindings implied by
// matching condition (a schema-level atom with Variable/Object args)
// against fact (a fully-ground atom of the same arity and predicate).
func bindingsFromMatch(condition, fact Atom, into map[int]int) {
	for i, t := range condition.Args {
		if !t.IsObject {
			into[t.Value] = fact.Args[i].Value
		}
	}
}
