package cmd

import (
	"context"
	"fmt"
	"time"

	gogithub "github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"
	"github.com/spiffcs/ghdash/config"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit() *cobra.Command {
	return &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long:  `Display the current GitHub API rate limit status for the core, search and GraphQL APIs.`,
		RunE:  runRateLimit,
	}
}

func runRateLimit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	token := cfg.GetGitHubToken()
	if token == "" {
		return fmt.Errorf("GitHub token not configured. Set the GITHUB_TOKEN environment variable")
	}

	client := gogithub.NewClient(nil).WithAuthToken(token)
	limits, _, err := client.RateLimit.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get rate limits: %w", err)
	}

	fmt.Println("GitHub API Rate Limits:")
	fmt.Println()

	if limits.Core != nil {
		fmt.Printf("Core API:   %d/%d remaining (resets in %s)\n",
			limits.Core.Remaining, limits.Core.Limit, resetIn(limits.Core.Reset.Time))
	}
	if limits.Search != nil {
		fmt.Printf("Search API: %d/%d remaining (resets in %s)\n",
			limits.Search.Remaining, limits.Search.Limit, resetIn(limits.Search.Reset.Time))
	}
	if limits.GraphQL != nil {
		fmt.Printf("GraphQL:    %d/%d remaining (resets in %s)\n",
			limits.GraphQL.Remaining, limits.GraphQL.Limit, resetIn(limits.GraphQL.Reset.Time))
	}

	return nil
}

func resetIn(reset time.Time) time.Duration {
	d := time.Until(reset).Round(time.Second)
	if d < 0 {
		d = 0
	}
	return d
}
