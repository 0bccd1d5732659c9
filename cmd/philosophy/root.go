package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Invoked without a subcommand it
// behaves like "run".
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "philosophy [article]",
		Short: "Test the Getting to Philosophy conjecture",
		Long: `philosophy starts at an encyclopedia article and repeatedly follows the first
link of the body text that is not in parentheses, not in italics and not
external, until it reaches the Philosophy article, gets stuck on a page
without such a link, or runs into a loop.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runConjectureCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	addRunFlags(cmd)

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
