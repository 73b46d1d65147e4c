package main

import (
	"github.com/spf13/cobra"
)

// flags is shared by both search subcommands; cobra resolves the
// subcommand name before any positional args, so domain/problem are
// declared on each subcommand rather than on the root: cobra has no way
// to parse positional args ahead of a subcommand name.
var flags sharedFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "plan",
		Short:         "plan a sequence of ground actions satisfying a PDDL goal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newStateSpaceSearchCmd())
	root.AddCommand(newPartialSpaceSearchCmd())
	return root
}
