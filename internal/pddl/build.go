package pddl

import (
	"fmt"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// UnsupportedConstructError is the fatal, task-construction-time error
// class for constructs this planner does not support: disjunctive or
// quantified preconditions, conditional effects, negative non-nullary
// goals, numeric fluents. It always names the offending construct.
type UnsupportedConstructError struct {
	Construct string
	Location  string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("pddl: unsupported construct %q%s", e.Construct, e.Location)
}

// ParseError is the fatal, startup-time parse-failure error class:
// malformed PDDL, or a name the domain/problem never declared.
type ParseError struct {
	Message  string
	Location string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pddl: %s%s", e.Message, e.Location)
}

type typeRegistry struct {
	index   map[string]int
	names   []string
	parent  map[string]string
}

func newTypeRegistry() *typeRegistry {
	r := &typeRegistry{index: map[string]int{}, parent: map[string]string{}}
	r.intern("object")
	return r
}

func (r *typeRegistry) intern(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	i := len(r.names)
	r.index[name] = i
	r.names = append(r.names, name)
	return i
}

func (r *typeRegistry) setParent(child, parent string) {
	r.intern(child)
	r.intern(parent)
	r.parent[child] = parent
}

// ancestry returns every type index name belongs to, starting with name
// itself and walking parent pointers up to (and including) "object".
func (r *typeRegistry) ancestry(name string) []int {
	seen := map[string]bool{}
	var out []int
	cur := name
	for cur != "" && !seen[cur] {
		seen[cur] = true
		out = append(out, r.intern(cur))
		if cur == "object" {
			break
		}
		cur = r.parent[cur]
		if cur == "" {
			cur = "object"
		}
	}
	return out
}

type typedName struct {
	Name string
	Type string
}

// parseTypedList implements PDDL's "name name - type name - type name"
// grammar: a run of bare names is retroactively typed by the "- type"
// that follows it; any names left over at the end of the list default to
// "object".
func parseTypedList(items []Node) ([]typedName, error) {
	var out []typedName
	var pending []string
	i := 0
	for i < len(items) {
		if items[i].IsAtom() && items[i].Atom == "-" {
			if i+1 >= len(items) || !items[i+1].IsAtom() {
				return nil, &ParseError{Message: "expected a type name after '-'"}
			}
			ty := items[i+1].Atom
			for _, n := range pending {
				out = append(out, typedName{Name: n, Type: ty})
			}
			pending = nil
			i += 2
			continue
		}
		if !items[i].IsAtom() {
			return nil, &ParseError{Message: "expected a name in typed list, found a sublist"}
		}
		pending = append(pending, items[i].Atom)
		i++
	}
	for _, n := range pending {
		out = append(out, typedName{Name: n, Type: "object"})
	}
	return out, nil
}

// Load parses a domain and a matching problem into a complete task.Task.
// Only :strips and :typing requirements are understood; every other
// requirement flag is ignored rather than rejected, since requirement
// flags alone (absent an actual use of conditional effects, disjunction,
// etc.) cannot cause unsupported behaviour.
func Load(domainSrc, problemSrc string) (*task.Task, error) {
	domainForms, err := Parse(domainSrc)
	if err != nil {
		return nil, err
	}
	domain, ok := findDefine(domainForms, "domain")
	if !ok {
		return nil, &ParseError{Message: "no (define (domain ...) ...) form found"}
	}

	problemForms, err := Parse(problemSrc)
	if err != nil {
		return nil, err
	}
	problem, ok := findDefine(problemForms, "problem")
	if !ok {
		return nil, &ParseError{Message: "no (define (problem ...) ...) form found"}
	}

	if domainOf, ok := findSection(problem, ":domain"); ok && len(domainOf.List) == 2 {
		declared := domainOf.List[1].Atom
		domainName := domain.List[1].List[1].Atom
		if declared != domainName {
			return nil, &ParseError{Message: fmt.Sprintf("problem declares domain %q, but domain is %q", declared, domainName)}
		}
	}

	b := &builder{
		types:        newTypeRegistry(),
		predIndex:    map[string]int{},
		objIndex:     map[string]int{},
	}

	if err := b.loadTypes(domain); err != nil {
		return nil, err
	}
	if err := b.loadPredicates(domain); err != nil {
		return nil, err
	}
	if err := b.loadObjects(domain, problem); err != nil {
		return nil, err
	}

	t := &task.Task{
		DomainName:        domain.List[1].List[1].Atom,
		ProblemName:       problem.List[1].List[1].Atom,
		TypeNames:         b.types.names,
		Objects:           b.objects,
		Predicates:        b.predicates,
		NullaryPredicates: map[int]bool{},
	}
	for _, p := range b.predicates {
		if p.Arity() == 0 {
			t.NullaryPredicates[p.Index] = true
		}
	}

	if err := b.loadActions(domain, t); err != nil {
		return nil, err
	}

	init, err := b.loadInit(problem, t)
	if err != nil {
		return nil, err
	}
	t.InitialState = init

	goal, err := b.loadGoal(problem)
	if err != nil {
		return nil, err
	}
	t.Goal = goal

	return t, nil
}

// findDefine locates the `(define (domain|problem NAME) ...)` top-level
// form among forms.
func findDefine(forms []Node, kind string) (Node, bool) {
	for _, f := range forms {
		if head(f) != "define" || len(f.List) < 2 {
			continue
		}
		id := f.List[1]
		if !id.IsAtom() && len(id.List) >= 1 && id.List[0].IsAtom() && id.List[0].Atom == kind {
			return f, true
		}
	}
	return Node{}, false
}

type builder struct {
	types     *typeRegistry
	predIndex map[string]int
	predicates []task.Predicate

	objIndex map[string]int
	objects  []task.Object
}

func (b *builder) loadTypes(domain Node) error {
	section, ok := findSection(domain, ":types")
	if !ok {
		return nil
	}
	entries, err := parseTypedList(section.List[1:])
	if err != nil {
		return err
	}
	for _, e := range entries {
		b.types.setParent(e.Name, e.Type)
	}
	return nil
}

func (b *builder) loadPredicates(domain Node) error {
	section, ok := findSection(domain, ":predicates")
	if !ok {
		return nil
	}
	for _, decl := range section.List[1:] {
		if decl.IsAtom() || len(decl.List) == 0 || !decl.List[0].IsAtom() {
			return &ParseError{Message: "malformed predicate declaration"}
		}
		name := decl.List[0].Atom
		entries, err := parseTypedList(decl.List[1:])
		if err != nil {
			return err
		}
		types := make([]int, len(entries))
		for i, e := range entries {
			types[i] = b.types.intern(e.Type)
		}
		idx := len(b.predicates)
		b.predIndex[name] = idx
		b.predicates = append(b.predicates, task.Predicate{Index: idx, Name: name, Types: types})
	}
	return nil
}

func (b *builder) loadObjects(domain, problem Node) error {
	add := func(entries []typedName) {
		for _, e := range entries {
			if _, exists := b.objIndex[e.Name]; exists {
				continue
			}
			idx := len(b.objects)
			b.objIndex[e.Name] = idx
			b.objects = append(b.objects, task.Object{Index: idx, Name: e.Name, Types: b.types.ancestry(e.Type)})
		}
	}
	if section, ok := findSection(domain, ":constants"); ok {
		entries, err := parseTypedList(section.List[1:])
		if err != nil {
			return err
		}
		add(entries)
	}
	if section, ok := findSection(problem, ":objects"); ok {
		entries, err := parseTypedList(section.List[1:])
		if err != nil {
			return err
		}
		add(entries)
	}
	return nil
}

func (b *builder) objectIndex(name string) (int, error) {
	idx, ok := b.objIndex[name]
	if !ok {
		return 0, &ParseError{Message: fmt.Sprintf("object %q not declared", name)}
	}
	return idx, nil
}

func (b *builder) predicateIndex(name string) (int, error) {
	idx, ok := b.predIndex[name]
	if !ok {
		return 0, &ParseError{Message: fmt.Sprintf("predicate %q not declared", name)}
	}
	return idx, nil
}

func (b *builder) loadActions(domain Node, t *task.Task) error {
	for _, form := range domain.List {
		if head(form) != ":action" {
			continue
		}
		schema, err := b.loadAction(form, t, len(t.ActionSchemas))
		if err != nil {
			return err
		}
		t.ActionSchemas = append(t.ActionSchemas, *schema)
	}
	return nil
}

func (b *builder) loadAction(form Node, t *task.Task, index int) (*task.ActionSchema, error) {
	if len(form.List) < 2 || !form.List[1].IsAtom() {
		return nil, &ParseError{Message: "malformed :action form"}
	}
	name := form.List[1].Atom

	var paramNodes []Node
	var precond, effect Node
	haveEffect := false
	for i := 2; i+1 < len(form.List); i += 2 {
		key := form.List[i]
		val := form.List[i+1]
		if !key.IsAtom() {
			continue
		}
		switch key.Atom {
		case ":parameters":
			paramNodes = val.List
		case ":precondition":
			precond = val
		case ":effect":
			effect = val
			haveEffect = true
		}
	}
	if !haveEffect {
		return nil, &ParseError{Message: fmt.Sprintf("action %q has no :effect", name)}
	}

	paramEntries, err := parseTypedList(paramNodes)
	if err != nil {
		return nil, err
	}
	paramIndex := map[string]int{}
	params := make([]task.SchemaParameter, len(paramEntries))
	for i, e := range paramEntries {
		paramIndex[e.Name] = i
		params[i] = task.SchemaParameter{Index: i, TypeIndex: b.types.intern(e.Type)}
	}

	schema := task.NewActionSchema(index, name, params, len(t.Predicates))

	resolve := func(argAtom string) (task.SchemaArgument, error) {
		if pIdx, ok := paramIndex[argAtom]; ok {
			return task.Free(pIdx), nil
		}
		oIdx, err := b.objectIndex(argAtom)
		if err != nil {
			return task.SchemaArgument{}, &ParseError{Message: fmt.Sprintf("unbound variable or unknown object %q in action %q", argAtom, name)}
		}
		return task.Constant(oIdx), nil
	}

	if !precond.IsAtom() && precond.List != nil {
		atoms, err := b.flattenConjunction(precond, resolve, fmt.Sprintf(" (action %q precondition)", name))
		if err != nil {
			return nil, err
		}
		for _, a := range atoms {
			schema.AddPrecondition(a)
		}
	}

	atoms, err := b.flattenConjunction(effect, resolve, fmt.Sprintf(" (action %q effect)", name))
	if err != nil {
		return nil, err
	}
	for _, a := range atoms {
		schema.AddEffect(a)
	}

	return schema, nil
}

// flattenConjunction walks an (and ...) form (or a single bare literal) and
// resolves each literal into a SchemaAtom, rejecting every unsupported
// construct: disjunction, quantifiers, conditional effects, and anything
// that is not a plain (possibly negated) predicate application.
func (b *builder) flattenConjunction(n Node, resolve func(string) (task.SchemaArgument, error), where string) ([]task.SchemaAtom, error) {
	if n.IsAtom() {
		return nil, &ParseError{Message: "expected a condition or effect, found a bare atom" + where}
	}
	if head(n) == "and" {
		var out []task.SchemaAtom
		for _, child := range n.List[1:] {
			atoms, err := b.flattenConjunction(child, resolve, where)
			if err != nil {
				return nil, err
			}
			out = append(out, atoms...)
		}
		return out, nil
	}
	switch head(n) {
	case "or":
		return nil, &UnsupportedConstructError{Construct: "disjunctive precondition (or ...)", Location: where}
	case "forall", "exists":
		return nil, &UnsupportedConstructError{Construct: "quantified precondition (" + head(n) + " ...)", Location: where}
	case "when":
		return nil, &UnsupportedConstructError{Construct: "conditional effect (when ...)", Location: where}
	case "increase", "decrease", "assign", "scale-up", "scale-down":
		return nil, &UnsupportedConstructError{Construct: "numeric fluent (" + head(n) + " ...)", Location: where}
	}
	atom, err := b.literalToAtom(n, resolve, where)
	if err != nil {
		return nil, err
	}
	return []task.SchemaAtom{atom}, nil
}

func (b *builder) literalToAtom(n Node, resolve func(string) (task.SchemaArgument, error), where string) (task.SchemaAtom, error) {
	negated := false
	lit := n
	if head(n) == "not" {
		if len(n.List) != 2 {
			return task.SchemaAtom{}, &ParseError{Message: "malformed (not ...)" + where}
		}
		negated = true
		lit = n.List[1]
		if head(lit) == "not" || head(lit) == "and" {
			return task.SchemaAtom{}, &UnsupportedConstructError{Construct: "nested negation/conjunction under (not ...)", Location: where}
		}
	}
	if lit.IsAtom() || len(lit.List) == 0 || !lit.List[0].IsAtom() {
		return task.SchemaAtom{}, &ParseError{Message: "expected a predicate application" + where}
	}
	predName := lit.List[0].Atom
	predIdx, err := b.predicateIndex(predName)
	if err != nil {
		return task.SchemaAtom{}, err
	}
	args := make([]task.SchemaArgument, len(lit.List)-1)
	for i, a := range lit.List[1:] {
		if !a.IsAtom() {
			return task.SchemaAtom{}, &ParseError{Message: "expected a term, found a sublist" + where}
		}
		arg, err := resolve(a.Atom)
		if err != nil {
			return task.SchemaAtom{}, err
		}
		args[i] = arg
	}
	return task.SchemaAtom{PredicateIndex: predIdx, Negated: negated, Arguments: args}, nil
}

func (b *builder) loadInit(problem Node, t *task.Task) (*state.DBState, error) {
	section, ok := findSection(problem, ":init")
	if !ok {
		return nil, &ParseError{Message: "problem has no (:init ...) section"}
	}
	s := state.New(len(t.Predicates))
	for _, lit := range section.List[1:] {
		if lit.IsAtom() || len(lit.List) == 0 || !lit.List[0].IsAtom() {
			return nil, &ParseError{Message: "malformed :init literal"}
		}
		predName := lit.List[0].Atom
		predIdx, err := b.predicateIndex(predName)
		if err != nil {
			return nil, err
		}
		if len(lit.List) == 1 {
			s.SetNullary(predIdx, true)
			continue
		}
		tuple := make([]int, len(lit.List)-1)
		for i, a := range lit.List[1:] {
			if !a.IsAtom() {
				return nil, &ParseError{Message: "expected an object name in :init"}
			}
			oIdx, err := b.objectIndex(a.Atom)
			if err != nil {
				return nil, err
			}
			tuple[i] = oIdx
		}
		s.InsertTuple(predIdx, tuple)
	}
	return s, nil
}

func (b *builder) loadGoal(problem Node) (task.Goal, error) {
	section, ok := findSection(problem, ":goal")
	if !ok || len(section.List) != 2 {
		return task.Goal{}, &ParseError{Message: "problem has no (:goal ...) section"}
	}
	resolve := func(argAtom string) (task.SchemaArgument, error) {
		oIdx, err := b.objectIndex(argAtom)
		if err != nil {
			return task.SchemaArgument{}, err
		}
		return task.Constant(oIdx), nil
	}
	atoms, err := b.flattenConjunction(section.List[1], resolve, " (goal)")
	if err != nil {
		return task.Goal{}, err
	}
	var g task.Goal
	for _, a := range atoms {
		if a.IsNullary() {
			if a.Negated {
				g.NegativeNullaryGoals = append(g.NegativeNullaryGoals, a.PredicateIndex)
			} else {
				g.PositiveNullaryGoals = append(g.PositiveNullaryGoals, a.PredicateIndex)
			}
			continue
		}
		if a.Negated {
			return task.Goal{}, &UnsupportedConstructError{Construct: "negative non-nullary goal atom", Location: " (goal)"}
		}
		args := make([]int, len(a.Arguments))
		for i, arg := range a.Arguments {
			args[i] = arg.Value
		}
		g.Atoms = append(g.Atoms, task.GoalAtom{PredicateIndex: a.PredicateIndex, Arguments: args})
	}
	return g, nil
}
