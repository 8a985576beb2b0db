package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spiffcs/ghdash/config"
	"github.com/spiffcs/ghdash/internal/engagement"
	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/model"
)

// NewCmdEngagement creates the engagement command.
func NewCmdEngagement(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engagement",
		Short: "Report team engagement for a repository",
		Long: `Classifies every issue and pull request created in the time window as
team-engaged or unattended, and reports closure ratios.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngagement(opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Team, "team", nil,
		"Team member logins (default team_members from config)")
	addRepoFlags(cmd, opts)
	addWindowFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit the raw report as JSON")
	return cmd
}

func runEngagement(opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	members := cfg.TeamMembers
	if len(opts.Team) > 0 {
		members = opts.Team
	}
	roster := model.NewRoster(members)
	if roster.Len() == 0 {
		return fmt.Errorf("no team members configured; set team_members in config or pass --team")
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

	report, err := engagement.NewService(client).TeamEngagement(context.Background(), wnd, roster, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to compute team engagement: %w", err)
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printEngagement(owner+"/"+repo, wnd.String(), roster, report)
	return nil
}

func printEngagement(repoFull, period string, roster model.Roster, report *model.TeamEngagement) {
	header := color.New(color.Bold, color.FgCyan)
	section := color.New(color.Bold)
	dim := color.New(color.Faint)

	header.Printf("Team engagement for %s\n", repoFull)
	dim.Printf("%s, %d team members\n\n", period, roster.Len())

	section.Printf("Issues (%d)\n", report.Issues.TotalIssues)
	fmt.Printf("  engaged:      %d (%.0f%%)\n", report.Issues.TeamEngaged, report.Issues.EngagementRatio*100)
	fmt.Printf("  unattended:   %d\n", report.Issues.TeamUnattended)
	fmt.Printf("  closed:       %d manual, %d PR-triggered (%.0f%% closed)\n",
		report.Issues.ManuallyClosed, report.Issues.PRTriggeredClosed, report.Issues.ClosedRatio*100)

	section.Printf("Pull requests (%d)\n", report.PRs.TotalPRs)
	fmt.Printf("  engaged:      %d (%.0f%%)\n", report.PRs.TeamEngaged, report.PRs.EngagementRatio*100)
	fmt.Printf("  unattended:   %d\n", report.PRs.TeamUnattended)
	fmt.Printf("  finished:     %d merged, %d closed (%.0f%% finished)\n",
		report.PRs.Merged, report.PRs.Closed, report.PRs.FinishRatio*100)
}
