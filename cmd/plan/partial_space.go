package main

import (
	"github.com/spf13/cobra"

	"github.com/wbrown/janus-lift/internal/planlog"
	"github.com/wbrown/janus-lift/internal/search"
	"github.com/wbrown/janus-lift/internal/successor"
)

func newPartialSpaceSearchCmd() *cobra.Command {
	var heuristicName string

	cmd := &cobra.Command{
		Use:   "partial-space-search domain.pddl problem.pddl",
		Short: "search over (DBState, PartialAction) nodes, binding one argument per transition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPartialSpaceSearch(args[0], args[1], heuristicName)
		},
	}
	registerSharedFlags(cmd, &flags)
	cmd.Flags().StringVar(&heuristicName, "heuristic", "goal-counting", "goal-counting, ff, zero, wl")
	return cmd
}

func runPartialSpaceSearch(domainPath, problemPath, heuristicName string) error {
	verbosity, err := planlog.ParseVerbosity(flags.verbosity)
	if err != nil {
		return fail(ExitUsageError, "%w", err)
	}
	log := planlog.New(verbosity, flags.colour)
	defer log.Sync()

	if heuristicName == "hadd" || heuristicName == "hmax" {
		return fail(ExitUsageError, "unsupported construct: %s requires a complete ground action at every node; use ff, goal-counting, or zero with partial-space-search", heuristicName)
	}

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

	problem := search.NewPartialSpace(t, gen, packer, h)

	return runSearch(t, gen, problem, problem.Space(), log, &flags, domainPath, problemPath)
}
