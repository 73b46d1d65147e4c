package task

import "strings"

// Plan is an ordered sequence of ground actions.
type Plan struct {
	Steps []Action
}

// String renders one action per line, in the planner's plan-file format.
func (p Plan) String(t *Task) string {
	lines := make([]string, len(p.Steps))
	for i, a := range p.Steps {
		lines[i] = a.String(t)
	}
	return strings.Join(lines, "\n")
}

func (p Plan) Cost() int {
	return len(p.Steps)
}
