package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spiffcs/ghdash/config"
	"github.com/spiffcs/ghdash/internal/activity"
	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/model"
)

// NewCmdCollect creates the collect command.
func NewCmdCollect(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect one contributor's activity in a repository",
		Long: `Aggregates everything a contributor did in the repository during the
time window: comments, reviews, issues opened/labeled/closed, and pull
requests opened/merged/closed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.User, "user", "u", "", "GitHub login to collect activity for (required)")
	_ = cmd.MarkFlagRequired("user")
	addRepoFlags(cmd, opts)
	addWindowFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit the raw aggregate as JSON")
	return cmd
}

func runCollect(opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	wnd, err := opts.resolveWindow(cfg)
	if err != nil {
		return err
	}
	owner, repo := opts.resolveRepo(cfg)

	client, err := gh.NewClient(cfg.GetGitHubToken())
	if err != nil {
		return err
	}

	contributions, err := activity.NewService(client).ContributionsBy(context.Background(), opts.User, wnd, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to collect activity for %s: %w", opts.User, err)
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(contributions)
	}

	printContributions(opts.User, owner+"/"+repo, wnd.String(), contributions)
	return nil
}

func printContributions(user, repoFull, period string, c *model.Contributions) {
	header := color.New(color.Bold, color.FgCyan)
	section := color.New(color.Bold)
	dim := color.New(color.Faint)

	header.Printf("Activity for %s in %s\n", user, repoFull)
	dim.Printf("%s\n\n", period)

	section.Printf("Issue triage\n")
	fmt.Printf("  comments: %d\n", countIssueComments(c.Comments, false))
	fmt.Printf("  labeled:  %d\n", len(c.IssuesLabeled))
	fmt.Printf("  closed:   %d\n", len(c.IssuesClosed))

	section.Printf("Code reviews\n")
	fmt.Printf("  comments: %d\n", countIssueComments(c.Comments, true))
	fmt.Printf("  reviews:  %d\n", len(c.Reviews))
	fmt.Printf("  merged:   %d\n", len(c.PRsMerged))
	fmt.Printf("  closed:   %d\n", len(c.PRsClosed))

	section.Printf("Opened\n")
	fmt.Printf("  issues:   %d\n", len(c.IssuesOpened))
	fmt.Printf("  PRs:      %d\n", len(c.PRsOpened))

	fmt.Println()
	section.Printf("Total actions: %d\n", c.TotalActions())
}

func countIssueComments(comments []model.Comment, onPRs bool) int {
	n := 0
	for _, c := range comments {
		if c.IsPullRequest == onPRs {
			n++
		}
	}
	return n
}
