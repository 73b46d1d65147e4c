package relax

import (
	"container/heap"
	"math"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// HeuristicType selects which delete-relaxation heuristic the weighted
// grounder computes.
type HeuristicType int

const (
	Hadd HeuristicType = iota
	Hmax
	Hff
)

// Grounder is the precompiled weighted grounder for one Program: a
// predicate -> (rule, condition slot) index built once and reused for
// every evaluation.
type Grounder struct {
	program   *Program
	byPredicate map[int][]ruleSlot
}

type ruleSlot struct {
	rule int
	slot int
}

func NewGrounder(p *Program) *Grounder {
	g := &Grounder{program: p, byPredicate: map[int][]ruleSlot{}}
	for ri, r := range p.Rules {
		for si, c := range r.Conditions {
			g.byPredicate[c.Predicate] = append(g.byPredicate[c.Predicate], ruleSlot{rule: ri, slot: si})
		}
	}
	return g
}

type factInfo struct {
	atom        Atom
	cost        float64
	achieverRule int // -1 if a base fact (from state or static facts)
	support     []string
}

// recordedFact is one ground atom recorded against a rule's condition
// slot, carried together with the binding and cost needed to combine it
// with a partner fact in the sibling slot.
type recordedFact struct {
	key  string
	atom Atom
	cost float64
}

type pqItem struct {
	key  string
	cost float64
}

type priorityQueue []pqItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Result is the outcome of one weighted-grounding fixpoint: the heuristic
// value and, for h_ff, the relaxed plan as a multiset of schema indices.
type Result struct {
	Value       float64 // math.Inf(1) if unsolvable in the relaxation
	RelaxedPlan []int   // schema indices; populated only for Hff
}

// Ground runs the weighted fixpoint against s. Negative nullary goals must
// be checked by the caller beforehand (see heuristic.go); Ground always
// assumes the goal's positive conjuncts are the whole story.
func (g *Grounder) Ground(s *state.DBState, t *task.Task, staticPredicates map[int]bool, kind HeuristicType) Result {
	facts := map[string]*factInfo{}
	pq := &priorityQueue{}
	heap.Init(pq)

	push := func(atom Atom, cost float64, achieverRule int, support []string) {
		key := atom.key()
		if existing, ok := facts[key]; ok {
			if existing.cost <= cost {
				return
			}
			existing.cost = cost
			existing.achieverRule = achieverRule
			existing.support = support
		} else {
			facts[key] = &factInfo{atom: atom, cost: cost, achieverRule: achieverRule, support: support}
		}
		heap.Push(pq, pqItem{key: key, cost: cost})
	}

	for _, f := range g.program.StaticFacts {
		push(f, 0, -1, nil)
	}
	for predIdx, rel := range s.Relations {
		if staticPredicates[predIdx] {
			continue
		}
		for _, tuple := range rel.Tuples {
			args := make([]Term, len(tuple))
			for i, v := range tuple {
				args[i] = Obj(v)
			}
			push(Atom{Predicate: predIdx, Args: args}, 0, -1, nil)
		}
	}
	for predIdx, on := range s.Nullary {
		if on && !staticPredicates[predIdx] {
			push(Atom{Predicate: predIdx}, 0, -1, nil)
		}
	}

	slotRecorded := map[int][2][]recordedFact{}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		info := facts[item.key]
		if info.cost < item.cost {
			continue // stale entry, a cheaper derivation has since won
		}

		if info.atom.Predicate == g.program.GoalPredicate {
			if kind == Hff {
				plan := g.extractRelaxedPlan(facts, item.key)
				return Result{Value: float64(len(plan)), RelaxedPlan: plan}
			}
			return Result{Value: info.cost}
		}

		for _, rs := range g.byPredicate[info.atom.Predicate] {
			rule := &g.program.Rules[rs.rule]
			cond := rule.Conditions[rs.slot]
			if !structurallyMatches(cond, info.atom) {
				continue
			}

			if len(rule.Conditions) == 1 {
				bindings := map[int]int{}
				bindingsFromMatch(cond, info.atom, bindings)
				head := rule.Effect.Substitute(bindings)
				push(head, rule.Weight+info.cost, rs.rule, []string{item.key})
				continue
			}

			other := 1 - rs.slot
			rec := slotRecorded[rs.rule]
			rec[rs.slot] = append(rec[rs.slot], recordedFact{key: item.key, atom: info.atom, cost: info.cost})
			slotRecorded[rs.rule] = rec

			for _, partner := range rec[other] {
				bindings := map[int]int{}
				bindingsFromMatch(cond, info.atom, bindings)
				if !tryBind(bindings, rule.Conditions[other], partner.atom) {
					continue
				}
				head := rule.Effect.Substitute(bindings)
				var combined float64
				switch kind {
				case Hmax:
					combined = math.Max(info.cost, partner.cost)
				default: // Hadd, Hff
					combined = info.cost + partner.cost
				}
				push(head, rule.Weight+combined, rs.rule, []string{item.key, partner.key})
			}
		}
	}

	return Result{Value: math.Inf(1)}
}

// tryBind extends bindings with the bindings implied by matching condition
// against fact, failing if a variable shared between the two conditions
// would be bound to two different objects (the consistency check that
// makes a Join rule's shared-variable semantics correct).
func tryBind(bindings map[int]int, condition, fact Atom) bool {
	for i, t := range condition.Args {
		if t.IsObject {
			continue
		}
		if existing, ok := bindings[t.Value]; ok {
			if existing != fact.Args[i].Value {
				return false
			}
			continue
		}
		bindings[t.Value] = fact.Args[i].Value
	}
	return true
}

// structurallyMatches reports whether fact (fully ground) agrees with
// condition on every constant (Object) argument position and arity.
func structurallyMatches(condition, fact Atom) bool {
	if condition.Predicate != fact.Predicate || len(condition.Args) != len(fact.Args) {
		return false
	}
	for i, t := range condition.Args {
		if t.IsObject && t.Value != fact.Args[i].Value {
			return false
		}
	}
	return true
}

// extractRelaxedPlan walks achiever back-pointers from the goal fact,
// collecting the schema index of every rule whose firing was needed: the
// delete-relaxed plan the h_ff heuristic reports its length for.
func (g *Grounder) extractRelaxedPlan(facts map[string]*factInfo, goalKey string) []int {
	var plan []int
	visited := map[string]bool{}
	var walk func(key string)
	walk = func(key string) {
		if visited[key] {
			return
		}
		visited[key] = true
		info := facts[key]
		if info.achieverRule < 0 {
			return
		}
		rule := g.program.Rules[info.achieverRule]
		if rule.SchemaIndex >= 0 {
			plan = append(plan, rule.SchemaIndex)
		}
		for _, s := range info.support {
			walk(s)
		}
	}
	walk(goalKey)
	return plan
}
