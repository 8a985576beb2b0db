// Package engagement computes team-wide response ratios for the issues and
// pull requests created in a time window.
package engagement

import (
	"context"
	"fmt"
	"sync"

	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
	"golang.org/x/sync/errgroup"
)

// Searcher is the slice of the GitHub client the calculators consume.
type Searcher interface {
	SearchIssues(ctx context.Context, owner, repo string, w window.Window) ([]gh.SearchIssue, error)
	SearchPullRequests(ctx context.Context, owner, repo string, w window.Window) ([]gh.SearchPullRequest, error)
}

// Service runs the engagement calculators against a Searcher.
type Service struct {
	src Searcher
}

// NewService creates a Service backed by src.
func NewService(src Searcher) *Service {
	return &Service{src: src}
}

// IssueEngagement classifies every issue created in the window as
// team-engaged or unattended, and buckets the closed ones as manually
// closed or PR-triggered by the last close event's closer reference.
func (s *Service) IssueEngagement(ctx context.Context, w window.Window, roster model.Roster, owner, repo string) (*model.IssueEngagement, error) {
	issues, err := s.src.SearchIssues(ctx, owner, repo, w)
	if err != nil {
		return nil, err
	}

	result := &model.IssueEngagement{
		EngagedIssues:           []model.IssueSummary{},
		UnattendedIssues:        []model.IssueSummary{},
		ManuallyClosedIssues:    []model.IssueSummary{},
		PRTriggeredClosedIssues: []model.IssueSummary{},
	}

	for _, issue := range issues {
		summary := model.IssueSummary{
			Number:    issue.Number,
			Title:     issue.Title,
			URL:       issue.URL,
			CreatedAt: issue.CreatedAt,
			Author:    login(issue.Author),
		}

		if issueEngaged(issue, roster) {
			result.EngagedIssues = append(result.EngagedIssues, summary)
		} else {
			result.UnattendedIssues = append(result.UnattendedIssues, summary)
		}

		if issue.State != "CLOSED" {
			continue
		}
		// An issue can be closed and reopened repeatedly; only the most
		// recent close determines the final attribution.
		last := lastClosedEvent(issue.TimelineItems.Nodes)
		if last == nil {
			// Closed state with no visible close event (truncated
			// timeline); attribute as manual with unknown closer.
			result.ManuallyClosedIssues = append(result.ManuallyClosedIssues, summary)
			continue
		}
		if last.ClosedByPullRequest() {
			prSummary := summary
			prSummary.PRNumber = last.Closer.Number
			result.PRTriggeredClosedIssues = append(result.PRTriggeredClosedIssues, prSummary)
		} else {
			closedSummary := summary
			closedSummary.ClosedBy = login(last.Actor)
			result.ManuallyClosedIssues = append(result.ManuallyClosedIssues, closedSummary)
		}
	}

	result.TotalIssues = len(issues)
	result.TeamEngaged = len(result.EngagedIssues)
	result.TeamUnattended = len(result.UnattendedIssues)
	result.ManuallyClosed = len(result.ManuallyClosedIssues)
	result.PRTriggeredClosed = len(result.PRTriggeredClosedIssues)
	result.EngagementRatio = ratio(result.TeamEngaged, result.TotalIssues)
	result.ClosedRatio = ratio(result.ManuallyClosed+result.PRTriggeredClosed, result.TotalIssues)

	return result, nil
}

// PREngagement classifies every pull request created in the window.
// Merged and closed are counted from PR state directly, not from timeline
// attribution.
func (s *Service) PREngagement(ctx context.Context, w window.Window, roster model.Roster, owner, repo string) (*model.PREngagement, error) {
	prs, err := s.src.SearchPullRequests(ctx, owner, repo, w)
	if err != nil {
		return nil, err
	}

	result := &model.PREngagement{
		EngagedPRs:    []model.PRSummary{},
		UnattendedPRs: []model.PRSummary{},
		MergedPRs:     []model.PRSummary{},
		ClosedPRs:     []model.PRSummary{},
	}

	for _, pr := range prs {
		summary := model.PRSummary{
			Number:    pr.Number,
			Title:     pr.Title,
			URL:       pr.URL,
			CreatedAt: pr.CreatedAt,
			Author:    login(pr.Author),
			State:     pr.State,
		}

		if prEngaged(pr, roster) {
			result.EngagedPRs = append(result.EngagedPRs, summary)
		} else {
			result.UnattendedPRs = append(result.UnattendedPRs, summary)
		}

		switch pr.State {
		case "MERGED":
			result.MergedPRs = append(result.MergedPRs, summary)
		case "CLOSED":
			result.ClosedPRs = append(result.ClosedPRs, summary)
		}
	}

	result.TotalPRs = len(prs)
	result.TeamEngaged = len(result.EngagedPRs)
	result.TeamUnattended = len(result.UnattendedPRs)
	result.Merged = len(result.MergedPRs)
	result.Closed = len(result.ClosedPRs)
	result.EngagementRatio = ratio(result.TeamEngaged, result.TotalPRs)
	result.FinishRatio = ratio(result.Merged+result.Closed, result.TotalPRs)

	return result, nil
}

// TeamEngagement runs the issue and PR calculators concurrently. The two
// searches are independent; a failure in either aborts the combined call.
func (s *Service) TeamEngagement(ctx context.Context, w window.Window, roster model.Roster, owner, repo string) (*model.TeamEngagement, error) {
	var (
		mu     sync.Mutex
		result model.TeamEngagement
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		issues, err := s.IssueEngagement(gctx, w, roster, owner, repo)
		if err != nil {
			return fmt.Errorf("issue engagement: %w", err)
		}
		mu.Lock()
		result.Issues = *issues
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		prs, err := s.PREngagement(gctx, w, roster, owner, repo)
		if err != nil {
			return fmt.Errorf("PR engagement: %w", err)
		}
		mu.Lock()
		result.PRs = *prs
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total)
}

func login(a *gh.Actor) string {
	if a == nil {
		return ""
	}
	return a.Login
}
