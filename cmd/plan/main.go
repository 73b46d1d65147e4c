// Command plan finds a sequence of ground actions satisfying a PDDL goal,
// via best-first search over weighted-Datalog delete-relaxation heuristics.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plan:", err)
		os.Exit(exitCodeOf(err))
	}
}
