package task

import (
	"fmt"
	"math"
	"strings"
)

// Action is a fully ground action: a schema index plus one object index per
// schema parameter.
type Action struct {
	Index         int
	Instantiation []int
}

// NoAction is the sentinel used in place of an optional type, e.g. default
// zero-values in hot search-space bookkeeping paths.
var NoAction = Action{Index: math.MaxInt32, Instantiation: nil}

func (a Action) IsNone() bool {
	return a.Index == math.MaxInt32
}

// String renders the action as "(schema-name obj0 obj1 ...)", the exact
// plan-file line format.
func (a Action) String(t *Task) string {
	schema := t.ActionSchemas[a.Index]
	names := make([]string, len(a.Instantiation))
	for i, obj := range a.Instantiation {
		names[i] = t.Objects[obj].Name
	}
	if len(names) == 0 {
		return fmt.Sprintf("(%s)", schema.Name)
	}
	return fmt.Sprintf("(%s %s)", schema.Name, strings.Join(names, " "))
}
