package gh

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/spiffcs/ghdash/internal/window"
)

var testWindow = window.Window{
	From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
}

// pagedClient builds a Client whose endpoint dispatches on the request
// variables, counting requests as it goes.
func pagedClient(t *testing.T, requests *int, dispatch func(vars map[string]any) string) *Client {
	t.Helper()
	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		*requests++
		w.Write([]byte(dispatch(req.Variables)))
	})
}

func TestIssueCommentsBy(t *testing.T) {
	t.Run("follows cursor and stops past the window", func(t *testing.T) {
		requests := 0
		c := pagedClient(t, &requests, func(vars map[string]any) string {
			if _, ok := vars["before"]; !ok {
				return `{"data":{"user":{"issueComments":{
					"pageInfo":{"hasPreviousPage":true,"startCursor":"c1"},
					"nodes":[
						{"publishedAt":"2024-03-09T10:00:00Z","url":"u1","issue":{"number":1,"title":"kept","author":{"login":"bob"},"repository":{"nameWithOwner":"PowerShell/PowerShell"}}},
						{"publishedAt":"2024-03-08T10:00:00Z","url":"u2","issue":{"number":2,"title":"wrong repo","repository":{"nameWithOwner":"other/repo"}}}
					]}}}}`
			}
			// Older page: first node precedes the window, so the walk ends
			// here even though more pages exist.
			return `{"data":{"user":{"issueComments":{
				"pageInfo":{"hasPreviousPage":true,"startCursor":"c2"},
				"nodes":[
					{"publishedAt":"2024-02-01T10:00:00Z","url":"u3","issue":{"number":3,"title":"too old","repository":{"nameWithOwner":"PowerShell/PowerShell"}}}
				]}}}}`
		})

		got, err := c.IssueCommentsBy(context.Background(), "alice", testWindow, "PowerShell/PowerShell")
		if err != nil {
			t.Fatalf("IssueCommentsBy() error = %v", err)
		}
		if len(got) != 1 || got[0].Issue.Number != 1 {
			t.Errorf("IssueCommentsBy() = %+v, want single comment on #1", got)
		}
		if requests != 2 {
			t.Errorf("requests = %d, want 2", requests)
		}
	})

	t.Run("nonexistent user yields empty result", func(t *testing.T) {
		requests := 0
		c := pagedClient(t, &requests, func(vars map[string]any) string {
			return `{"data":{"user":null}}`
		})

		got, err := c.IssueCommentsBy(context.Background(), "ghost", testWindow, "PowerShell/PowerShell")
		if err != nil {
			t.Fatalf("IssueCommentsBy() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("IssueCommentsBy() = %+v, want empty", got)
		}
	})
}

func TestPRReviewContributionsBy(t *testing.T) {
	requests := 0
	c := pagedClient(t, &requests, func(vars map[string]any) string {
		return `{"data":{"user":{"contributionsCollection":{"pullRequestReviewContributions":{
			"pageInfo":{"hasPreviousPage":false,"startCursor":""},
			"nodes":[
				{"occurredAt":"2024-03-05T10:00:00Z","repository":{"nameWithOwner":"PowerShell/PowerShell"},"pullRequest":{"number":7,"title":"fix","author":{"login":"bob"}},"pullRequestReview":{"url":"r1","state":"APPROVED"}},
				{"occurredAt":"2024-03-05T11:00:00Z","repository":{"nameWithOwner":"other/repo"},"pullRequest":{"number":8,"title":"skip"},"pullRequestReview":{"url":"r2","state":"COMMENTED"}}
			]}}}}}`
	})

	got, err := c.PRReviewContributionsBy(context.Background(), "alice", testWindow, "PowerShell/PowerShell")
	if err != nil {
		t.Fatalf("PRReviewContributionsBy() error = %v", err)
	}
	if len(got) != 1 || got[0].PullRequest.Number != 7 {
		t.Errorf("PRReviewContributionsBy() = %+v, want single review on #7", got)
	}
}

func TestRecentIssues(t *testing.T) {
	t.Run("stops at the first issue older than since", func(t *testing.T) {
		requests := 0
		c := pagedClient(t, &requests, func(vars map[string]any) string {
			return `{"data":{"repository":{"issues":{
				"pageInfo":{"hasNextPage":true,"endCursor":"x"},
				"nodes":[
					{"number":10,"title":"fresh","updatedAt":"2024-03-09T00:00:00Z","createdAt":"2024-03-09T00:00:00Z","timelineItems":{"nodes":[]}},
					{"number":11,"title":"stale","updatedAt":"2024-02-01T00:00:00Z","createdAt":"2024-01-01T00:00:00Z","timelineItems":{"nodes":[]}}
				]}}}}`
		})

		got, err := c.RecentIssues(context.Background(), "PowerShell", "PowerShell", testWindow.From)
		if err != nil {
			t.Fatalf("RecentIssues() error = %v", err)
		}
		if len(got) != 1 || got[0].Number != 10 {
			t.Errorf("RecentIssues() = %+v, want only #10", got)
		}
		if requests != 1 {
			t.Errorf("requests = %d, want 1 (early stop skips remaining pages)", requests)
		}
	})

	t.Run("missing repository yields empty result", func(t *testing.T) {
		requests := 0
		c := pagedClient(t, &requests, func(vars map[string]any) string {
			return `{"data":{"repository":null}}`
		})

		got, err := c.RecentIssues(context.Background(), "nobody", "nothing", testWindow.From)
		if err != nil {
			t.Fatalf("RecentIssues() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("RecentIssues() = %+v, want empty", got)
		}
	})
}

func TestRecentPullRequests(t *testing.T) {
	requests := 0
	c := pagedClient(t, &requests, func(vars map[string]any) string {
		if _, ok := vars["cursor"]; !ok {
			return `{"data":{"repository":{"pullRequests":{
				"pageInfo":{"hasNextPage":true,"endCursor":"p2"},
				"nodes":[
					{"number":20,"title":"first","state":"MERGED","updatedAt":"2024-03-09T00:00:00Z","createdAt":"2024-03-08T00:00:00Z","timelineItems":{"nodes":[]}}
				]}}}}`
		}
		return `{"data":{"repository":{"pullRequests":{
			"pageInfo":{"hasNextPage":false,"endCursor":""},
			"nodes":[
				{"number":21,"title":"second","state":"OPEN","updatedAt":"2024-03-05T00:00:00Z","createdAt":"2024-03-05T00:00:00Z","timelineItems":{"nodes":[]}}
			]}}}}`
	})

	got, err := c.RecentPullRequests(context.Background(), "PowerShell", "PowerShell", testWindow.From)
	if err != nil {
		t.Fatalf("RecentPullRequests() error = %v", err)
	}
	if len(got) != 2 || got[0].Number != 20 || got[1].Number != 21 {
		t.Errorf("RecentPullRequests() = %+v, want #20 and #21", got)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestSearchIssues(t *testing.T) {
	requests := 0
	c := pagedClient(t, &requests, func(vars map[string]any) string {
		if _, ok := vars["cursor"]; !ok {
			return `{"data":{"search":{
				"pageInfo":{"hasNextPage":true,"endCursor":"s2"},
				"nodes":[
					{"number":1,"title":"in window","state":"OPEN","createdAt":"2024-03-05T00:00:00Z","comments":{"nodes":[]},"timelineItems":{"nodes":[]}},
					{"number":2,"title":"after window","state":"OPEN","createdAt":"2024-03-20T00:00:00Z","comments":{"nodes":[]},"timelineItems":{"nodes":[]}},
					{}
				]}}}`
		}
		return `{"data":{"search":{
			"pageInfo":{"hasNextPage":false,"endCursor":""},
			"nodes":[
				{"number":3,"title":"also in window","state":"CLOSED","createdAt":"2024-03-02T00:00:00Z","comments":{"nodes":[]},"timelineItems":{"nodes":[]}}
			]}}}`
	})

	got, err := c.SearchIssues(context.Background(), "PowerShell", "PowerShell", testWindow)
	if err != nil {
		t.Fatalf("SearchIssues() error = %v", err)
	}
	if len(got) != 2 || got[0].Number != 1 || got[1].Number != 3 {
		t.Errorf("SearchIssues() = %+v, want #1 and #3", got)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestSearchPullRequests(t *testing.T) {
	requests := 0
	c := pagedClient(t, &requests, func(vars map[string]any) string {
		return `{"data":{"search":{
			"pageInfo":{"hasNextPage":false,"endCursor":""},
			"nodes":[
				{"number":5,"title":"pr","state":"MERGED","createdAt":"2024-03-05T00:00:00Z","comments":{"nodes":[]},"reviews":{"nodes":[]},"timelineItems":{"nodes":[]}}
			]}}}`
	})

	got, err := c.SearchPullRequests(context.Background(), "PowerShell", "PowerShell", testWindow)
	if err != nil {
		t.Fatalf("SearchPullRequests() error = %v", err)
	}
	if len(got) != 1 || got[0].Number != 5 {
		t.Errorf("SearchPullRequests() = %+v, want only #5", got)
	}
}
