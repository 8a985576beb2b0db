package gh

import "time"

// PageInfo carries the cursor state for both pagination directions.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	EndCursor       string `json:"endCursor"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
}

// Actor is a nullable login reference. Deleted users come back as null, so
// every use site goes through a pointer and treats nil as "no match".
type Actor struct {
	Login string `json:"login"`
}

// IssueComment is one node of the user issueComments feed. The issue field
// is populated for PR comments too (GitHub models PRs as issues), so its
// author is the PR author when PullRequest is non-nil.
type IssueComment struct {
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
	Issue       struct {
		Number     int    `json:"number"`
		Title      string `json:"title"`
		Author     *Actor `json:"author"`
		Repository struct {
			NameWithOwner string `json:"nameWithOwner"`
		} `json:"repository"`
	} `json:"issue"`
	PullRequest *struct {
		Merged bool `json:"merged"`
	} `json:"pullRequest"`
}

// ReviewContribution is one node of the pullRequestReviewContributions feed.
type ReviewContribution struct {
	OccurredAt time.Time `json:"occurredAt"`
	Repository struct {
		NameWithOwner string `json:"nameWithOwner"`
	} `json:"repository"`
	PullRequest struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Author *Actor `json:"author"`
	} `json:"pullRequest"`
	PullRequestReview struct {
		URL   string `json:"url"`
		State string `json:"state"`
	} `json:"pullRequestReview"`
}

// TimelineItem is a union of the timeline event shapes the queries select.
// Fields not present on a given typename stay at their zero value.
type TimelineItem struct {
	Typename  string    `json:"__typename"`
	CreatedAt time.Time `json:"createdAt"`
	Actor     *Actor    `json:"actor"`
	Label     *struct {
		Name string `json:"name"`
	} `json:"label"`
	// Closer is set on ClosedEvent nodes when the close was caused by
	// another object. Typename "PullRequest" marks a PR-triggered close.
	Closer *struct {
		Typename string `json:"__typename"`
		Number   int    `json:"number"`
	} `json:"closer"`
}

// ClosedByPullRequest reports whether this is a close event with an explicit
// pull request closer reference.
func (t TimelineItem) ClosedByPullRequest() bool {
	return t.Typename == "ClosedEvent" && t.Closer != nil && t.Closer.Typename == "PullRequest"
}

// Issue is one node of the repository issues feed.
type Issue struct {
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Author        *Actor    `json:"author"`
	TimelineItems struct {
		Nodes []TimelineItem `json:"nodes"`
	} `json:"timelineItems"`
}

// PullRequest is one node of the repository pullRequests feed.
type PullRequest struct {
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Author        *Actor    `json:"author"`
	TimelineItems struct {
		Nodes []TimelineItem `json:"nodes"`
	} `json:"timelineItems"`
}

// CommentStub is the author/time pair attached to search results for
// engagement classification.
type CommentStub struct {
	Author    *Actor    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchIssue is one Issue node of the engagement search feed.
type SearchIssue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Actor    `json:"author"`
	Comments  struct {
		Nodes []CommentStub `json:"nodes"`
	} `json:"comments"`
	TimelineItems struct {
		Nodes []TimelineItem `json:"nodes"`
	} `json:"timelineItems"`
}

// SearchPullRequest is one PullRequest node of the engagement search feed.
type SearchPullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Actor    `json:"author"`
	Comments  struct {
		Nodes []CommentStub `json:"nodes"`
	} `json:"comments"`
	Reviews struct {
		Nodes []struct {
			Author *Actor `json:"author"`
			State  string `json:"state"`
		} `json:"nodes"`
	} `json:"reviews"`
	TimelineItems struct {
		Nodes []TimelineItem `json:"nodes"`
	} `json:"timelineItems"`
}
