package relax

// RuleKind is the shape a rule settles into after normalization: project
// (one condition), product (conditions share no variables), or join
// (exactly two conditions sharing a variable). Rules
// fresh out of translation carry KindGeneric until Normalize retags them.
type RuleKind int

const (
	KindGeneric RuleKind = iota
	KindProject
	KindProduct
	KindJoin
)

// Rule is a weighted Datalog rule: effect :- conditions, weight w.
// SchemaIndex names the action schema this rule's achievability ultimately
// traces back to (-1 for rules introduced purely by normalization, and for
// the goal rule); it is what lets h_ff attribute a fact's achievement to a
// concrete ground action.
type Rule struct {
	Effect     Atom
	Conditions []Atom
	Weight     float64
	Kind       RuleKind
	SchemaIndex int
	IsGoal     bool
}

func (r Rule) isProductRule() bool {
	seen := map[int]bool{}
	for _, c := range r.Conditions {
		for v := range c.VariableSet() {
			if seen[v] {
				return false
			}
			seen[v] = true
		}
	}
	return true
}
