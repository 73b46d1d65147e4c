package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wbrown/janus-lift/internal/pddl"
	"github.com/wbrown/janus-lift/internal/planlog"
	"github.com/wbrown/janus-lift/internal/relax"
	"github.com/wbrown/janus-lift/internal/search"
	"github.com/wbrown/janus-lift/internal/statepack"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/task"
	"github.com/wbrown/janus-lift/internal/termination"
	"github.com/wbrown/janus-lift/internal/validate"
)

// Exit codes: 0 for success, a distinct code for each named failure to
// produce a plan.
const (
	ExitSuccess = iota
	ExitUnsolvable
	ExitTimeLimit
	ExitMemoryLimit
	ExitValidationFailure
)

// ExitUsageError covers parse failures and unsupported constructs: fatal
// at startup, never a search outcome.
const ExitUsageError = 70

// sharedFlags holds the flags common to both search subcommands;
// registerSharedFlags registers them on each subcommand.
type sharedFlags struct {
	output        string
	generatorName string
	modelPath     string
	verbosity     string
	colour        bool
	timeLimit     time.Duration
	memoryLimitMB int
}

func registerSharedFlags(cmd *cobra.Command, f *sharedFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "plan file path (default <domain>-<problem>.plan)")
	cmd.Flags().StringVarP(&f.generatorName, "generator", "g", "full-reducer", "successor generator: full-reducer, naive-join")
	cmd.Flags().StringVarP(&f.modelPath, "model", "m", "", "saved heuristic artifact (learned heuristics are out of scope)")
	cmd.Flags().StringVarP(&f.verbosity, "verbosity", "v", "normal", "quiet, normal, or debug")
	cmd.Flags().BoolVarP(&f.colour, "colour", "c", false, "colourize log output")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "wall-clock search budget in Go duration syntax, e.g. 30m; \"30min\" is not accepted (0 = unlimited)")
	cmd.Flags().IntVar(&f.memoryLimitMB, "memory-limit-mb", 0, "peak RSS budget in megabytes (0 = unlimited)")
}

// cliError pairs a message with the exit code main() should use, letting
// RunE return a normal error while still controlling the process's exit
// status (cobra itself always exits 1 on a returned error otherwise).
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func fail(code int, format string, args ...interface{}) error {
	return &cliError{code: code, err: fmt.Errorf(format, args...)}
}

func exitCodeOf(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return ExitUsageError
}

// loadTask reads and parses the domain/problem files into a task, shared
// by both search subcommands.
func loadTask(domainPath, problemPath string) (*task.Task, error) {
	domainSrc, err := readFile(domainPath)
	if err != nil {
		return nil, fail(ExitUsageError, "reading domain file: %w", err)
	}
	problemSrc, err := readFile(problemPath)
	if err != nil {
		return nil, fail(ExitUsageError, "reading problem file: %w", err)
	}
	t, err := pddl.Load(domainSrc, problemSrc)
	if err != nil {
		return nil, fail(ExitUsageError, "%w", err)
	}
	return t, nil
}

func readFile(path string) (string, error) {
	data, err := readAll(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// heuristicByName builds the search.Heuristic for any of the CLI's named
// heuristics, shared by both subcommands (the partial-action subcommand
// rejects hmax/hadd itself before calling it). "wl" is a
// machine-learning heuristic (Weisfeiler-Lehman graph kernels) and is
// explicitly out of scope; it is accepted by name and
// rejected as an unsupported construct rather than silently substituted.
func heuristicByName(name string, t *task.Task, modelPath string) (search.Heuristic, error) {
	if modelPath != "" {
		return nil, fail(ExitUsageError, "unsupported construct: learned heuristic model (-m/--model) is out of scope")
	}
	switch name {
	case "goal-counting":
		return search.NewGoalCounting(t), nil
	case "zero":
		return search.Zero{}, nil
	case "hadd":
		return relax.NewHeuristic(t, relax.Hadd), nil
	case "hmax":
		return relax.NewHeuristic(t, relax.Hmax), nil
	case "ff":
		return relax.NewHeuristic(t, relax.Hff), nil
	case "wl":
		return nil, fail(ExitUsageError, "unsupported construct: wl heuristic requires the Weisfeiler-Lehman ML pipeline, which is out of scope")
	default:
		return nil, fail(ExitUsageError, "unknown heuristic %q", name)
	}
}

func generatorStrategy(name string) (successor.Strategy, error) {
	strat, err := successor.StrategyFromName(name)
	if err != nil {
		return 0, fail(ExitUsageError, "%w", err)
	}
	return strat, nil
}

// runSearch drives the shared GBFS engine/termination/logging/validation/
// plan-writing pipeline once the caller has built a search.Problem.
func runSearch(t *task.Task, gen *successor.Generator, problem search.Problem, space *search.Space, log *planlog.Logger, f *sharedFlags, domainPath, problemPath string) error {
	term := termination.New(f.timeLimit, uint64(f.memoryLimitMB), func(elapsed time.Duration, rssMB uint64) {
		log.Debugf("termination check: elapsed=%s peak_rss=%dMB", elapsed, rssMB)
	})

	result := search.Run(problem, space, term, func(expanded, generated int, h float64) {
		if expanded%100 == 0 {
			log.Banner("search", expanded, generated, h)
		}
	})

	switch result.Outcome {
	case search.OutcomeUnsolvable:
		log.Infof("search exhausted the reachable state space: provably unsolvable")
		return fail(ExitUnsolvable, "no plan exists")
	case search.OutcomeTimeLimit:
		log.Warnf("time limit exceeded after expanding %d nodes", result.Expanded)
		return fail(ExitTimeLimit, "time limit exceeded")
	case search.OutcomeMemoryLimit:
		log.Warnf("memory limit exceeded after expanding %d nodes", result.Expanded)
		return fail(ExitMemoryLimit, "memory limit exceeded")
	}

	log.Infof("plan found: %d steps, expanded %d nodes, generated %d", len(result.Plan.Steps), result.Expanded, result.Generated)
	logPlanTable(log, t, result.Plan)

	if _, failure := validate.Validate(t, gen, result.Plan); failure != nil {
		log.Errorf("plan validation failed: %s", failure.Error())
		return fail(ExitValidationFailure, "internal invariant violation: %s", failure.Error())
	}

	output := f.output
	if output == "" {
		output = defaultOutputPath(domainPath, problemPath)
	}
	if err := pddl.WritePlan(output, t, result.Plan); err != nil {
		return fail(ExitUsageError, "writing plan file: %w", err)
	}
	log.Infof("wrote plan to %s", output)
	return nil
}

func defaultOutputPath(domainPath, problemPath string) string {
	return fmt.Sprintf("%s-%s.plan", baseWithoutExt(domainPath), baseWithoutExt(problemPath))
}

func newPacker(t *task.Task) *statepack.Packer {
	return statepack.New(t)
}

func logPlanTable(log *planlog.Logger, t *task.Task, plan task.Plan) {
	rows := make([][]string, len(plan.Steps))
	for i, step := range plan.Steps {
		rows[i] = []string{fmt.Sprintf("%d", i+1), step.String(t)}
	}
	log.Table("plan", []string{"step", "action"}, rows)
}
