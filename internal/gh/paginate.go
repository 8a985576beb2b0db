package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spiffcs/ghdash/internal/log"
	"github.com/spiffcs/ghdash/internal/window"
)

const (
	// userFeedPageSize matches GitHub's per-page maximum for user feeds.
	userFeedPageSize = 100
	// repoFeedPageSize stays below the complexity limit for the nested
	// timeline selections.
	repoFeedPageSize = 50
	searchPageSize   = 100
)

// IssueCommentsBy fetches the actor's issue and PR comments on repoFull
// within w, walking the feed backward (newest first). The feed is ordered
// by the publishedAt field being filtered, so the loop stops at the first
// comment older than the window: earlier pages cannot be relevant.
func (c *Client) IssueCommentsBy(ctx context.Context, login string, w window.Window, repoFull string) ([]IssueComment, error) {
	var collected []IssueComment
	cursor := ""

	for {
		vars := map[string]any{
			"username": login,
			"count":    userFeedPageSize,
		}
		if cursor != "" {
			vars["before"] = cursor
		}

		data, err := c.Execute(ctx, issueCommentsQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("issue comments for %s: %w", login, err)
		}

		var page struct {
			User *struct {
				IssueComments struct {
					PageInfo PageInfo       `json:"pageInfo"`
					Nodes    []IssueComment `json:"nodes"`
				} `json:"issueComments"`
			} `json:"user"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("issue comments for %s: %w", login, err)
		}
		if page.User == nil {
			// Nonexistent login: upstream returns null without an error.
			log.Debug("issue comments: user not found, stopping", "login", login)
			return collected, nil
		}

		conn := page.User.IssueComments
		stop := false
		for _, comment := range conn.Nodes {
			if comment.Issue.Repository.NameWithOwner != repoFull {
				continue
			}
			if comment.PublishedAt.IsZero() || w.Before(comment.PublishedAt) {
				stop = true
				continue
			}
			if !w.Contains(comment.PublishedAt) {
				continue
			}
			collected = append(collected, comment)
		}
		log.Debug("issue comments page", "login", login, "nodes", len(conn.Nodes), "kept", len(collected))

		if stop || !conn.PageInfo.HasPreviousPage {
			break
		}
		cursor = conn.PageInfo.StartCursor
	}

	return collected, nil
}

// PRReviewContributionsBy fetches the actor's PR reviews on repoFull within
// w, walking the contributions feed backward with the same early-stop rule
// keyed on occurredAt.
func (c *Client) PRReviewContributionsBy(ctx context.Context, login string, w window.Window, repoFull string) ([]ReviewContribution, error) {
	var collected []ReviewContribution
	cursor := ""

	for {
		vars := map[string]any{
			"username": login,
			"count":    userFeedPageSize,
		}
		if cursor != "" {
			vars["before"] = cursor
		}

		data, err := c.Execute(ctx, prReviewsQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("PR reviews for %s: %w", login, err)
		}

		var page struct {
			User *struct {
				ContributionsCollection struct {
					PullRequestReviewContributions struct {
						PageInfo PageInfo             `json:"pageInfo"`
						Nodes    []ReviewContribution `json:"nodes"`
					} `json:"pullRequestReviewContributions"`
				} `json:"contributionsCollection"`
			} `json:"user"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("PR reviews for %s: %w", login, err)
		}
		if page.User == nil {
			log.Debug("PR reviews: user not found, stopping", "login", login)
			return collected, nil
		}

		conn := page.User.ContributionsCollection.PullRequestReviewContributions
		stop := false
		for _, review := range conn.Nodes {
			if review.Repository.NameWithOwner != repoFull {
				continue
			}
			if review.OccurredAt.IsZero() || w.Before(review.OccurredAt) {
				stop = true
				continue
			}
			if !w.Contains(review.OccurredAt) {
				continue
			}
			collected = append(collected, review)
		}
		log.Debug("PR reviews page", "login", login, "nodes", len(conn.Nodes), "kept", len(collected))

		if stop || !conn.PageInfo.HasPreviousPage {
			break
		}
		cursor = conn.PageInfo.StartCursor
	}

	return collected, nil
}

// RecentIssues fetches every issue in owner/repo updated at or after since,
// newest-updated first. The explicit orderBy pins the ordering to the field
// being filtered, so the first node older than since ends the walk.
func (c *Client) RecentIssues(ctx context.Context, owner, repo string, since time.Time) ([]Issue, error) {
	var collected []Issue
	cursor := ""

	for {
		vars := map[string]any{
			"owner":    owner,
			"repo":     repo,
			"since":    since.UTC().Format(time.RFC3339),
			"pageSize": repoFeedPageSize,
		}
		if cursor != "" {
			vars["cursor"] = cursor
		}

		data, err := c.Execute(ctx, recentIssuesQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("recent issues for %s/%s: %w", owner, repo, err)
		}

		var page struct {
			Repository *struct {
				Issues struct {
					PageInfo PageInfo `json:"pageInfo"`
					Nodes    []Issue  `json:"nodes"`
				} `json:"issues"`
			} `json:"repository"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("recent issues for %s/%s: %w", owner, repo, err)
		}
		if page.Repository == nil {
			log.Debug("recent issues: repository not found, stopping", "owner", owner, "repo", repo)
			return collected, nil
		}

		conn := page.Repository.Issues
		for _, issue := range conn.Nodes {
			if issue.UpdatedAt.Before(since) {
				return collected, nil
			}
			collected = append(collected, issue)
		}
		log.Debug("recent issues page", "repo", owner+"/"+repo, "nodes", len(conn.Nodes), "total", len(collected))

		if !conn.PageInfo.HasNextPage {
			break
		}
		cursor = conn.PageInfo.EndCursor
	}

	return collected, nil
}

// RecentPullRequests fetches every pull request in owner/repo updated at or
// after since, newest-updated first, with the same early-stop as
// RecentIssues.
func (c *Client) RecentPullRequests(ctx context.Context, owner, repo string, since time.Time) ([]PullRequest, error) {
	var collected []PullRequest
	cursor := ""

	for {
		vars := map[string]any{
			"owner":    owner,
			"repo":     repo,
			"pageSize": repoFeedPageSize,
		}
		if cursor != "" {
			vars["cursor"] = cursor
		}

		data, err := c.Execute(ctx, recentPRsQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("recent PRs for %s/%s: %w", owner, repo, err)
		}

		var page struct {
			Repository *struct {
				PullRequests struct {
					PageInfo PageInfo      `json:"pageInfo"`
					Nodes    []PullRequest `json:"nodes"`
				} `json:"pullRequests"`
			} `json:"repository"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("recent PRs for %s/%s: %w", owner, repo, err)
		}
		if page.Repository == nil {
			log.Debug("recent PRs: repository not found, stopping", "owner", owner, "repo", repo)
			return collected, nil
		}

		conn := page.Repository.PullRequests
		for _, pr := range conn.Nodes {
			if pr.UpdatedAt.Before(since) {
				return collected, nil
			}
			collected = append(collected, pr)
		}
		log.Debug("recent PRs page", "repo", owner+"/"+repo, "nodes", len(conn.Nodes), "total", len(collected))

		if !conn.PageInfo.HasNextPage {
			break
		}
		cursor = conn.PageInfo.EndCursor
	}

	return collected, nil
}

// SearchIssues fetches every issue created in owner/repo within w. The
// search qualifier applies the lower bound server-side; the exact [from,to]
// check still happens per item because the upper bound is client-only.
func (c *Client) SearchIssues(ctx context.Context, owner, repo string, w window.Window) ([]SearchIssue, error) {
	searchQuery := fmt.Sprintf("repo:%s/%s is:issue created:>=%s", owner, repo, w.From.UTC().Format(time.RFC3339))

	var collected []SearchIssue
	cursor := ""

	for {
		vars := map[string]any{
			"searchQuery": searchQuery,
			"pageSize":    searchPageSize,
		}
		if cursor != "" {
			vars["cursor"] = cursor
		}

		data, err := c.Execute(ctx, searchIssuesQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("issue search for %s/%s: %w", owner, repo, err)
		}

		var page struct {
			Search struct {
				PageInfo PageInfo      `json:"pageInfo"`
				Nodes    []SearchIssue `json:"nodes"`
			} `json:"search"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("issue search for %s/%s: %w", owner, repo, err)
		}

		for _, issue := range page.Search.Nodes {
			if issue.Number == 0 {
				// Inline fragment mismatch; skip.
				continue
			}
			if !w.Contains(issue.CreatedAt) {
				continue
			}
			collected = append(collected, issue)
		}
		log.Debug("issue search page", "repo", owner+"/"+repo, "nodes", len(page.Search.Nodes), "total", len(collected))

		if !page.Search.PageInfo.HasNextPage {
			break
		}
		cursor = page.Search.PageInfo.EndCursor
	}

	return collected, nil
}

// SearchPullRequests fetches every pull request created in owner/repo
// within w, mirroring SearchIssues.
func (c *Client) SearchPullRequests(ctx context.Context, owner, repo string, w window.Window) ([]SearchPullRequest, error) {
	searchQuery := fmt.Sprintf("repo:%s/%s is:pr created:>=%s", owner, repo, w.From.UTC().Format(time.RFC3339))

	var collected []SearchPullRequest
	cursor := ""

	for {
		vars := map[string]any{
			"searchQuery": searchQuery,
			"pageSize":    searchPageSize,
		}
		if cursor != "" {
			vars["cursor"] = cursor
		}

		data, err := c.Execute(ctx, searchPRsQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("PR search for %s/%s: %w", owner, repo, err)
		}

		var page struct {
			Search struct {
				PageInfo PageInfo            `json:"pageInfo"`
				Nodes    []SearchPullRequest `json:"nodes"`
			} `json:"search"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("PR search for %s/%s: %w", owner, repo, err)
		}

		for _, pr := range page.Search.Nodes {
			if pr.Number == 0 {
				continue
			}
			if !w.Contains(pr.CreatedAt) {
				continue
			}
			collected = append(collected, pr)
		}
		log.Debug("PR search page", "repo", owner+"/"+repo, "nodes", len(page.Search.Nodes), "total", len(collected))

		if !page.Search.PageInfo.HasNextPage {
			break
		}
		cursor = page.Search.PageInfo.EndCursor
	}

	return collected, nil
}
