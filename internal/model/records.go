// Package model holds the request-scoped records produced by the
// aggregation and engagement calculators. Nothing here is persisted;
// every record lives only for the duration of one request.
package model

import "time"

// Comment is one issue or pull request comment authored by the actor.
type Comment struct {
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	PublishedAt   time.Time `json:"publishedAt"`
	IsPullRequest bool      `json:"isPullRequest"`
}

// Review is one pull request review performed by the actor.
type Review struct {
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	State      string    `json:"state"`
	OccurredAt time.Time `json:"occurredAt"`
}

// IssueOpened records an issue created by the actor inside the window.
type IssueOpened struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// IssueLabeled records the first resolution-marker label the actor applied
// to an issue inside the window.
type IssueLabeled struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Label     string    `json:"label"`
	LabeledAt time.Time `json:"labeledAt"`
}

// IssueClosed records an issue the actor closed manually inside the window.
// HasCloser reports whether the upstream close event carried an explicit
// closer reference; when it did not, the aggregator falls back to the
// merge-proximity heuristic to weed out PR-triggered closes.
type IssueClosed struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	ClosedAt  time.Time `json:"closedAt"`
	HasCloser bool      `json:"-"`
}

// PRAction is the kind of pull request activity attributed to an actor.
type PRAction string

const (
	PROpened PRAction = "opened"
	PRMerged PRAction = "merged"
	PRClosed PRAction = "closed"
)

// PRActivity is one opened/merged/closed action on a pull request. A PR the
// actor both opened and merged yields two records.
type PRActivity struct {
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Action     PRAction  `json:"action"`
	State      string    `json:"state,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Contributions is the aggregate produced by ContributionsBy.
type Contributions struct {
	Comments      []Comment      `json:"comments"`
	Reviews       []Review       `json:"reviews"`
	IssuesOpened  []IssueOpened  `json:"issues_opened"`
	IssuesLabeled []IssueLabeled `json:"issues_labeled"`
	IssuesClosed  []IssueClosed  `json:"issues_closed"`
	PRsOpened     []PRActivity   `json:"prs_opened"`
	PRsMerged     []PRActivity   `json:"prs_merged"`
	PRsClosed     []PRActivity   `json:"prs_closed"`
}

// TotalActions counts every record in the aggregate.
func (c *Contributions) TotalActions() int {
	return len(c.Comments) + len(c.Reviews) +
		len(c.IssuesOpened) + len(c.IssuesLabeled) + len(c.IssuesClosed) +
		len(c.PRsOpened) + len(c.PRsMerged) + len(c.PRsClosed)
}
