// Package relax translates a planning task into a weighted Datalog program
// and computes h_add/h_max/h_ff from it via a Dijkstra-style weighted
// fixpoint. "relax" names the delete relaxation the whole package exists
// to compute.
package relax

import "fmt"

// Term is either a ground Object or a rule-local Variable: the two kinds
// of value a rule condition can carry.
type Term struct {
	IsObject bool
	Value    int // object index, or variable index
}

func Obj(objectIndex int) Term   { return Term{IsObject: true, Value: objectIndex} }
func Var(variableIndex int) Term { return Term{IsObject: false, Value: variableIndex} }

func (t Term) String() string {
	if t.IsObject {
		return fmt.Sprintf("%d", t.Value)
	}
	return fmt.Sprintf("?%d", t.Value)
}
