// Package activity classifies a single actor's contribution events and
// aggregates them into one per-request record.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
)

// Source is the slice of the GitHub client the extractors consume.
type Source interface {
	IssueCommentsBy(ctx context.Context, login string, w window.Window, repoFull string) ([]gh.IssueComment, error)
	PRReviewContributionsBy(ctx context.Context, login string, w window.Window, repoFull string) ([]gh.ReviewContribution, error)
	RecentIssues(ctx context.Context, owner, repo string, since time.Time) ([]gh.Issue, error)
	RecentPullRequests(ctx context.Context, owner, repo string, since time.Time) ([]gh.PullRequest, error)
}

// Service runs the per-actor extractors against a Source.
type Service struct {
	src Source
}

// NewService creates a Service backed by src.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// CommentsBy returns the actor's issue and PR comments in the window.
// Comments on the actor's own pull requests are suppressed here, at
// extraction time; the aggregator never re-applies the rule.
func (s *Service) CommentsBy(ctx context.Context, actor string, w window.Window, owner, repo string) ([]model.Comment, error) {
	raw, err := s.src.IssueCommentsBy(ctx, actor, w, repoFull(owner, repo))
	if err != nil {
		return nil, err
	}

	comments := make([]model.Comment, 0, len(raw))
	for _, c := range raw {
		if c.PullRequest != nil && c.Issue.Author != nil && model.SameLogin(c.Issue.Author.Login, actor) {
			continue
		}
		comments = append(comments, model.Comment{
			Number:        c.Issue.Number,
			Title:         c.Issue.Title,
			URL:           c.URL,
			PublishedAt:   c.PublishedAt,
			IsPullRequest: c.PullRequest != nil,
		})
	}
	return comments, nil
}

// ReviewsBy returns the actor's PR reviews in the window, excluding reviews
// on the actor's own pull requests.
func (s *Service) ReviewsBy(ctx context.Context, actor string, w window.Window, owner, repo string) ([]model.Review, error) {
	raw, err := s.src.PRReviewContributionsBy(ctx, actor, w, repoFull(owner, repo))
	if err != nil {
		return nil, err
	}

	reviews := make([]model.Review, 0, len(raw))
	for _, r := range raw {
		if r.PullRequest.Author != nil && model.SameLogin(r.PullRequest.Author.Login, actor) {
			continue
		}
		reviews = append(reviews, model.Review{
			Number:     r.PullRequest.Number,
			Title:      r.PullRequest.Title,
			URL:        r.PullRequestReview.URL,
			State:      r.PullRequestReview.State,
			OccurredAt: r.OccurredAt,
		})
	}
	return reviews, nil
}

// IssueActivities is the three-way split produced by IssueActivitiesBy.
type IssueActivities struct {
	Opened  []model.IssueOpened
	Labeled []model.IssueLabeled
	Closed  []model.IssueClosed
}

// IssueActivitiesBy scans recently-updated issues once and attributes
// opened, labeled and closed events to the actor. Per issue, at most one
// labeled and one closed entry are recorded (the first match each); closes
// with an explicit pull request closer are never the actor's manual work
// and are skipped outright.
func (s *Service) IssueActivitiesBy(ctx context.Context, actor string, w window.Window, owner, repo string) (*IssueActivities, error) {
	issues, err := s.src.RecentIssues(ctx, owner, repo, w.From)
	if err != nil {
		return nil, err
	}

	acts := &IssueActivities{
		Opened:  []model.IssueOpened{},
		Labeled: []model.IssueLabeled{},
		Closed:  []model.IssueClosed{},
	}

	for _, issue := range issues {
		if issue.Author != nil && model.SameLogin(issue.Author.Login, actor) && w.Contains(issue.CreatedAt) {
			acts.Opened = append(acts.Opened, model.IssueOpened{
				Number:    issue.Number,
				Title:     issue.Title,
				URL:       issue.URL,
				CreatedAt: issue.CreatedAt,
			})
		}

		labeledFound := false
		closedFound := false
		for _, event := range issue.TimelineItems.Nodes {
			switch event.Typename {
			case "LabeledEvent":
				if labeledFound || event.Label == nil || event.Actor == nil {
					continue
				}
				if !model.IsResolutionLabel(event.Label.Name) || !model.SameLogin(event.Actor.Login, actor) {
					continue
				}
				if !w.Contains(event.CreatedAt) {
					continue
				}
				acts.Labeled = append(acts.Labeled, model.IssueLabeled{
					Number:    issue.Number,
					Title:     issue.Title,
					URL:       issue.URL,
					Label:     event.Label.Name,
					LabeledAt: event.CreatedAt,
				})
				labeledFound = true

			case "ClosedEvent":
				if closedFound || event.Actor == nil || !model.SameLogin(event.Actor.Login, actor) {
					continue
				}
				if !w.Contains(event.CreatedAt) {
					continue
				}
				if event.ClosedByPullRequest() {
					continue
				}
				acts.Closed = append(acts.Closed, model.IssueClosed{
					Number:    issue.Number,
					Title:     issue.Title,
					URL:       issue.URL,
					ClosedAt:  event.CreatedAt,
					HasCloser: event.Closer != nil,
				})
				closedFound = true
			}

			if labeledFound && closedFound {
				break
			}
		}
	}

	return acts, nil
}

// PRActivitiesBy returns the actor's opened/merged/closed pull request
// actions in the window. A PR the actor both opened and finished yields an
// opened entry plus the terminal entry.
func (s *Service) PRActivitiesBy(ctx context.Context, actor string, w window.Window, owner, repo string) ([]model.PRActivity, error) {
	prs, err := s.src.RecentPullRequests(ctx, owner, repo, w.From)
	if err != nil {
		return nil, err
	}

	var activities []model.PRActivity
	for _, pr := range prs {
		if pr.Author != nil && model.SameLogin(pr.Author.Login, actor) && w.Contains(pr.CreatedAt) {
			activities = append(activities, model.PRActivity{
				Number:     pr.Number,
				Title:      pr.Title,
				URL:        pr.URL,
				Action:     model.PROpened,
				State:      pr.State,
				OccurredAt: pr.CreatedAt,
			})
		}

		// Only the first terminal event counts; a PR closed and reopened
		// repeatedly still yields one entry.
		for _, event := range pr.TimelineItems.Nodes {
			if event.Typename != "ClosedEvent" && event.Typename != "MergedEvent" {
				continue
			}
			if event.Actor == nil || !model.SameLogin(event.Actor.Login, actor) {
				continue
			}
			if !w.Contains(event.CreatedAt) {
				continue
			}
			action := model.PRClosed
			if event.Typename == "MergedEvent" {
				action = model.PRMerged
			}
			activities = append(activities, model.PRActivity{
				Number:     pr.Number,
				Title:      pr.Title,
				URL:        pr.URL,
				Action:     action,
				OccurredAt: event.CreatedAt,
			})
			break
		}
	}

	return activities, nil
}

func repoFull(owner, repo string) string {
	return fmt.Sprintf("%s/%s", owner, repo)
}
