package pddl

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/wbrown/janus-lift/internal/task"
)

// WritePlan writes plan one action per line as "(schema-name obj0 obj1
// ...)", followed by a "; cost = N (unit cost)" comment line.
func WritePlan(path string, t *task.Task, plan task.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, step := range plan.Steps {
		if _, err := fmt.Fprintln(w, step.String(t)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "; cost = %d (unit cost)\n", plan.Cost()); err != nil {
		return err
	}
	return w.Flush()
}

// ReadPlan parses a plan file back into a task.Plan, resolving schema and
// object names against t. Blank lines and "; ..." comment lines are
// skipped.
func ReadPlan(path string, t *task.Task) (task.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return task.Plan{}, err
	}

	schemaByName := map[string]int{}
	for i, s := range t.ActionSchemas {
		schemaByName[s.Name] = i
	}
	objByName := map[string]int{}
	for _, o := range t.Objects {
		objByName[o.Name] = o.Index
	}

	var plan task.Plan
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
			return task.Plan{}, &ParseError{Message: fmt.Sprintf("malformed plan line %q", line), Location: fmt.Sprintf(" (line %d)", lineNo+1)}
		}
		fields := strings.Fields(line[1 : len(line)-1])
		if len(fields) == 0 {
			return task.Plan{}, &ParseError{Message: "empty action", Location: fmt.Sprintf(" (line %d)", lineNo+1)}
		}
		schemaIdx, ok := schemaByName[fields[0]]
		if !ok {
			return task.Plan{}, &ParseError{Message: fmt.Sprintf("unknown action schema %q", fields[0]), Location: fmt.Sprintf(" (line %d)", lineNo+1)}
		}
		inst := make([]int, len(fields)-1)
		for i, name := range fields[1:] {
			objIdx, ok := objByName[name]
			if !ok {
				return task.Plan{}, &ParseError{Message: fmt.Sprintf("unknown object %q", name), Location: fmt.Sprintf(" (line %d)", lineNo+1)}
			}
			inst[i] = objIdx
		}
		plan.Steps = append(plan.Steps, task.Action{Index: schemaIdx, Instantiation: inst})
	}
	return plan, nil
}
