package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spiffcs/ghdash/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "ghdash",
		Short: "GitHub contribution and team engagement dashboard",
		Long: `Aggregates a contributor's GitHub activity (comments, reviews, issue
triage, pull request work) and computes team engagement ratios for a
repository, either as one-shot reports or as an HTTP API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize(opts.Verbosity, os.Stderr)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v",
		"Increase verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(NewCmdServe(opts))
	rootCmd.AddCommand(NewCmdCollect(opts))
	rootCmd.AddCommand(NewCmdEngagement(opts))
	rootCmd.AddCommand(NewCmdRateLimit())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
