package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
)

var testWindow = window.Window{
	From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
}

var team = model.NewRoster([]string{"alice", "bob"})

func fromJSON[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

type fakeSearcher struct {
	issues []gh.SearchIssue
	prs    []gh.SearchPullRequest
	err    error
}

func (f *fakeSearcher) SearchIssues(ctx context.Context, owner, repo string, w window.Window) ([]gh.SearchIssue, error) {
	return f.issues, f.err
}

func (f *fakeSearcher) SearchPullRequests(ctx context.Context, owner, repo string, w window.Window) ([]gh.SearchPullRequest, error) {
	return f.prs, f.err
}

func TestIssueEngagement(t *testing.T) {
	src := &fakeSearcher{issues: []gh.SearchIssue{
		// Team comment -> engaged; still open.
		fromJSON[gh.SearchIssue](t, `{"number":1,"title":"answered","url":"i1","state":"OPEN",
			"createdAt":"2024-03-02T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[{"author":{"login":"Alice"},"createdAt":"2024-03-02T01:00:00Z"}]},
			"timelineItems":{"nodes":[]}}`),
		// No team response at all.
		fromJSON[gh.SearchIssue](t, `{"number":2,"title":"ignored","url":"i2","state":"OPEN",
			"createdAt":"2024-03-02T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[{"author":{"login":"visitor"},"createdAt":"2024-03-02T01:00:00Z"}]},
			"timelineItems":{"nodes":[]}}`),
		// Acknowledgment label applied by a bot counts; closed by a team
		// member -> manual bucket.
		fromJSON[gh.SearchIssue](t, `{"number":3,"title":"routed","url":"i3","state":"CLOSED",
			"createdAt":"2024-03-03T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[]},
			"timelineItems":{"nodes":[
				{"__typename":"LabeledEvent","createdAt":"2024-03-03T01:00:00Z","actor":{"login":"triage-bot"},"label":{"name":"WG-Engine"}},
				{"__typename":"ClosedEvent","createdAt":"2024-03-04T00:00:00Z","actor":{"login":"bob"}}
			]}}`),
		// Reopened then closed by a PR: the last close wins.
		fromJSON[gh.SearchIssue](t, `{"number":4,"title":"fixed by PR","url":"i4","state":"CLOSED",
			"createdAt":"2024-03-03T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[]},
			"timelineItems":{"nodes":[
				{"__typename":"ClosedEvent","createdAt":"2024-03-04T00:00:00Z","actor":{"login":"visitor"}},
				{"__typename":"ClosedEvent","createdAt":"2024-03-06T00:00:00Z","actor":{"login":"alice"},"closer":{"__typename":"PullRequest","number":77}}
			]}}`),
	}}

	got, err := NewService(src).IssueEngagement(context.Background(), testWindow, team, "o", "r")
	if err != nil {
		t.Fatalf("IssueEngagement() error = %v", err)
	}

	if got.TotalIssues != 4 {
		t.Errorf("TotalIssues = %d, want 4", got.TotalIssues)
	}
	if got.TeamEngaged != 3 || got.TeamUnattended != 1 {
		t.Errorf("engaged/unattended = %d/%d, want 3/1", got.TeamEngaged, got.TeamUnattended)
	}
	if got.EngagementRatio != 0.75 {
		t.Errorf("EngagementRatio = %v, want 0.75", got.EngagementRatio)
	}
	if got.ManuallyClosed != 1 || got.PRTriggeredClosed != 1 {
		t.Errorf("manual/PR-triggered = %d/%d, want 1/1", got.ManuallyClosed, got.PRTriggeredClosed)
	}
	if got.ClosedRatio != 0.5 {
		t.Errorf("ClosedRatio = %v, want 0.5", got.ClosedRatio)
	}

	if len(got.ManuallyClosedIssues) != 1 || got.ManuallyClosedIssues[0].ClosedBy != "bob" {
		t.Errorf("ManuallyClosedIssues = %+v, want #3 closed by bob", got.ManuallyClosedIssues)
	}
	if len(got.PRTriggeredClosedIssues) != 1 || got.PRTriggeredClosedIssues[0].PRNumber != 77 {
		t.Errorf("PRTriggeredClosedIssues = %+v, want #4 via PR 77", got.PRTriggeredClosedIssues)
	}
	if len(got.UnattendedIssues) != 1 || got.UnattendedIssues[0].Number != 2 {
		t.Errorf("UnattendedIssues = %+v, want only #2", got.UnattendedIssues)
	}
}

func TestIssueEngagementResolutionLabelNeedsTeamActor(t *testing.T) {
	src := &fakeSearcher{issues: []gh.SearchIssue{
		fromJSON[gh.SearchIssue](t, `{"number":1,"title":"outside label","url":"i1","state":"OPEN",
			"createdAt":"2024-03-02T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[]},
			"timelineItems":{"nodes":[
				{"__typename":"LabeledEvent","createdAt":"2024-03-02T01:00:00Z","actor":{"login":"stranger"},"label":{"name":"Resolution-Fixed"}}
			]}}`),
	}}

	got, err := NewService(src).IssueEngagement(context.Background(), testWindow, team, "o", "r")
	if err != nil {
		t.Fatalf("IssueEngagement() error = %v", err)
	}
	if got.TeamEngaged != 0 || got.TeamUnattended != 1 {
		t.Errorf("engaged/unattended = %d/%d, want 0/1 (resolution label by outsider)", got.TeamEngaged, got.TeamUnattended)
	}
}

func TestIssueEngagementEmpty(t *testing.T) {
	got, err := NewService(&fakeSearcher{}).IssueEngagement(context.Background(), testWindow, team, "o", "r")
	if err != nil {
		t.Fatalf("IssueEngagement() error = %v", err)
	}
	if got.TotalIssues != 0 || got.EngagementRatio != 0 || got.ClosedRatio != 0 {
		t.Errorf("empty result = %+v, want zero counts and ratios", got)
	}
	if got.EngagedIssues == nil || got.UnattendedIssues == nil {
		t.Error("empty result must have non-nil lists")
	}
}

func TestPREngagement(t *testing.T) {
	src := &fakeSearcher{prs: []gh.SearchPullRequest{
		// Team review -> engaged; merged.
		fromJSON[gh.SearchPullRequest](t, `{"number":1,"title":"reviewed","url":"p1","state":"MERGED",
			"createdAt":"2024-03-02T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[]},
			"reviews":{"nodes":[{"author":{"login":"bob"},"state":"APPROVED"}]},
			"timelineItems":{"nodes":[]}}`),
		// Nobody from the team touched it; closed by the author.
		fromJSON[gh.SearchPullRequest](t, `{"number":2,"title":"abandoned","url":"p2","state":"CLOSED",
			"createdAt":"2024-03-03T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[]},
			"reviews":{"nodes":[]},
			"timelineItems":{"nodes":[
				{"__typename":"ClosedEvent","createdAt":"2024-03-04T00:00:00Z","actor":{"login":"visitor"}}
			]}}`),
		// Still open, no responses.
		fromJSON[gh.SearchPullRequest](t, `{"number":3,"title":"pending","url":"p3","state":"OPEN",
			"createdAt":"2024-03-05T00:00:00Z","author":{"login":"visitor"},
			"comments":{"nodes":[]},
			"reviews":{"nodes":[]},
			"timelineItems":{"nodes":[]}}`),
	}}

	got, err := NewService(src).PREngagement(context.Background(), testWindow, team, "o", "r")
	if err != nil {
		t.Fatalf("PREngagement() error = %v", err)
	}

	if got.TotalPRs != 3 || got.TeamEngaged != 1 || got.TeamUnattended != 2 {
		t.Errorf("counts = %d total, %d engaged, %d unattended; want 3/1/2",
			got.TotalPRs, got.TeamEngaged, got.TeamUnattended)
	}
	if got.Merged != 1 || got.Closed != 1 {
		t.Errorf("merged/closed = %d/%d, want 1/1", got.Merged, got.Closed)
	}
	if want := 2.0 / 3.0; got.FinishRatio != want {
		t.Errorf("FinishRatio = %v, want %v", got.FinishRatio, want)
	}
}

func TestTeamEngagement(t *testing.T) {
	src := &fakeSearcher{
		issues: []gh.SearchIssue{
			fromJSON[gh.SearchIssue](t, `{"number":1,"title":"i","url":"i1","state":"OPEN",
				"createdAt":"2024-03-02T00:00:00Z","author":{"login":"visitor"},
				"comments":{"nodes":[{"author":{"login":"alice"},"createdAt":"2024-03-02T01:00:00Z"}]},
				"timelineItems":{"nodes":[]}}`),
		},
		prs: []gh.SearchPullRequest{
			fromJSON[gh.SearchPullRequest](t, `{"number":2,"title":"p","url":"p1","state":"OPEN",
				"createdAt":"2024-03-02T00:00:00Z","author":{"login":"visitor"},
				"comments":{"nodes":[]},"reviews":{"nodes":[]},"timelineItems":{"nodes":[]}}`),
		},
	}

	got, err := NewService(src).TeamEngagement(context.Background(), testWindow, team, "o", "r")
	if err != nil {
		t.Fatalf("TeamEngagement() error = %v", err)
	}
	if got.Issues.TotalIssues != 1 || got.Issues.EngagementRatio != 1.0 {
		t.Errorf("Issues = %+v, want one fully engaged issue", got.Issues)
	}
	if got.PRs.TotalPRs != 1 || got.PRs.EngagementRatio != 0.0 {
		t.Errorf("PRs = %+v, want one unattended PR", got.PRs)
	}
}

func TestTeamEngagementFailFast(t *testing.T) {
	src := &fakeSearcher{err: errors.New("search blew up")}

	if _, err := NewService(src).TeamEngagement(context.Background(), testWindow, team, "o", "r"); err == nil {
		t.Fatal("TeamEngagement() should fail when a search fails")
	}
}
