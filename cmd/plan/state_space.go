package main

import (
	"github.com/spf13/cobra"

	"github.com/wbrown/janus-lift/internal/planlog"
	"github.com/wbrown/janus-lift/internal/search"
	"github.com/wbrown/janus-lift/internal/successor"
)

func newStateSpaceSearchCmd() *cobra.Command {
	var heuristicName string

	cmd := &cobra.Command{
		Use:   "state-space-search domain.pddl problem.pddl",
		Short: "search over ground (DBState) nodes with a full action at every transition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStateSpaceSearch(args[0], args[1], heuristicName)
		},
	}
	registerSharedFlags(cmd, &flags)
	cmd.Flags().StringVar(&heuristicName, "heuristic", "goal-counting", "goal-counting, hmax, hadd, ff, zero, wl")
	return cmd
}

func runStateSpaceSearch(domainPath, problemPath, heuristicName string) error {
	verbosity, err := planlog.ParseVerbosity(flags.verbosity)
	if err != nil {
		return fail(ExitUsageError, "%w", err)
	}
	log := planlog.New(verbosity, flags.colour)
	defer log.Sync()

	t, err := loadTask(domainPath, problemPath)
	if err != nil {
		return err
	}

	strategy, err := generatorStrategy(flags.generatorName)
	if err != nil {
		return err
	}
	gen := successor.New(t, strategy)
	packer := newPacker(t)

	h, err := heuristicByName(heuristicName, t, flags.modelPath)
	if err != nil {
		return err
	}

	problem := search.NewStateSpace(t, gen, packer, h)

	return runSearch(t, gen, problem, problem.Space(), log, &flags, domainPath, problemPath)
}
