package task

import (
	"fmt"
	"strings"
)

// ArgKind distinguishes a Constant (bound to a concrete object at schema
// construction time, e.g. from a :constants block or a nullary-free
// literal) from a Free argument (bound to one of the schema's own
// parameters). This merges the two SchemaArgument shapes the original
// source kept separate for raw schema atoms and Datalog-facing atoms: in
// this implementation a Free argument's type is always recovered from the
// owning ActionSchema's Parameters slice, so there is never a need to carry
// a duplicate type index on the argument itself.
type ArgKind int

const (
	ArgConstant ArgKind = iota
	ArgFree
)

// SchemaArgument is one argument position of a SchemaAtom.
type SchemaArgument struct {
	Kind  ArgKind
	Value int // object index if Constant, parameter index if Free
}

func Constant(objectIndex int) SchemaArgument {
	return SchemaArgument{Kind: ArgConstant, Value: objectIndex}
}

func Free(parameterIndex int) SchemaArgument {
	return SchemaArgument{Kind: ArgFree, Value: parameterIndex}
}

func (a SchemaArgument) IsConstant() bool { return a.Kind == ArgConstant }
func (a SchemaArgument) IsFree() bool     { return a.Kind == ArgFree }

// SchemaParameter is one formal parameter of an action schema.
type SchemaParameter struct {
	Index     int
	TypeIndex int
}

// SchemaAtom is a precondition or effect literal over an action schema's
// parameters and constants: a predicate applied to SchemaArguments, with a
// polarity (Negated means a negative precondition, or a delete effect).
type SchemaAtom struct {
	PredicateIndex int
	Negated        bool
	Arguments      []SchemaArgument
}

func (a SchemaAtom) IsNullary() bool {
	return len(a.Arguments) == 0
}

// FreeVariables returns the set of parameter indices mentioned among this
// atom's Free arguments, deduplicated.
func (a SchemaAtom) FreeVariables() []int {
	seen := map[int]bool{}
	var out []int
	for _, arg := range a.Arguments {
		if arg.IsFree() && !seen[arg.Value] {
			seen[arg.Value] = true
			out = append(out, arg.Value)
		}
	}
	return out
}

// Ground substitutes instantiation (one object index per schema parameter)
// into a's Free arguments, producing a ground tuple of object indices.
func (a SchemaAtom) Ground(instantiation []int) []int {
	out := make([]int, len(a.Arguments))
	for i, arg := range a.Arguments {
		if arg.IsConstant() {
			out[i] = arg.Value
		} else {
			out[i] = instantiation[arg.Value]
		}
	}
	return out
}

// ActionSchema is a parameterized operator. Disjunctive, quantified, or
// conditional preconditions/effects are rejected at construction time
// and never represented here: every
// precondition/effect is a plain (possibly negated) literal.
type ActionSchema struct {
	Index      int
	Name       string
	Parameters []SchemaParameter

	Preconditions []SchemaAtom
	// PositiveNullaryPreconditions/NegativeNullaryPreconditions are indexed
	// by predicate index; true means the nullary predicate must hold
	// (resp. must not hold) for the schema to be applicable.
	PositiveNullaryPreconditions []bool
	NegativeNullaryPreconditions []bool

	Effects                 []SchemaAtom // Negated == delete effect
	PositiveNullaryEffects  []bool
	NegativeNullaryEffects  []bool
}

func NewActionSchema(index int, name string, parameters []SchemaParameter, numPredicates int) *ActionSchema {
	return &ActionSchema{
		Index:                        index,
		Name:                         name,
		Parameters:                   parameters,
		PositiveNullaryPreconditions: make([]bool, numPredicates),
		NegativeNullaryPreconditions: make([]bool, numPredicates),
		PositiveNullaryEffects:       make([]bool, numPredicates),
		NegativeNullaryEffects:       make([]bool, numPredicates),
	}
}

// AddPrecondition routes a parsed literal into the nullary bitsets or the
// Preconditions list depending on arity.
func (s *ActionSchema) AddPrecondition(atom SchemaAtom) {
	if atom.IsNullary() {
		if atom.Negated {
			s.NegativeNullaryPreconditions[atom.PredicateIndex] = true
		} else {
			s.PositiveNullaryPreconditions[atom.PredicateIndex] = true
		}
		return
	}
	s.Preconditions = append(s.Preconditions, atom)
}

func (s *ActionSchema) AddEffect(atom SchemaAtom) {
	if atom.IsNullary() {
		if atom.Negated {
			s.NegativeNullaryEffects[atom.PredicateIndex] = true
		} else {
			s.PositiveNullaryEffects[atom.PredicateIndex] = true
		}
		return
	}
	s.Effects = append(s.Effects, atom)
}

func (s *ActionSchema) NonNullaryPositivePreconditions() []SchemaAtom {
	var out []SchemaAtom
	for _, p := range s.Preconditions {
		if !p.Negated {
			out = append(out, p)
		}
	}
	return out
}

func (s *ActionSchema) String() string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = fmt.Sprintf("?%d", p.Index)
		_ = p.TypeIndex
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(names, ", "))
}
