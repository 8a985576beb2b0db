package model

import "time"

// IssueSummary identifies one issue in an engagement report.
type IssueSummary struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	// Set on manually-closed entries.
	ClosedBy string `json:"closed_by,omitempty"`
	// Set on PR-triggered-closed entries.
	PRNumber int `json:"pr_number,omitempty"`
}

// PRSummary identifies one pull request in an engagement report.
type PRSummary struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	State     string    `json:"state"`
}

// IssueEngagement reports how many issues created in a window received any
// team response, and how the closed ones were closed.
type IssueEngagement struct {
	TotalIssues     int     `json:"total_issues"`
	TeamEngaged     int     `json:"team_engaged"`
	TeamUnattended  int     `json:"team_unattended"`
	EngagementRatio float64 `json:"engagement_ratio"`

	ManuallyClosed    int     `json:"manually_closed"`
	PRTriggeredClosed int     `json:"pr_triggered_closed"`
	ClosedRatio       float64 `json:"closed_ratio"`

	EngagedIssues           []IssueSummary `json:"engaged_issues"`
	UnattendedIssues        []IssueSummary `json:"unattended_issues"`
	ManuallyClosedIssues    []IssueSummary `json:"manually_closed_issues"`
	PRTriggeredClosedIssues []IssueSummary `json:"pr_triggered_closed_issues"`
}

// PREngagement mirrors IssueEngagement for pull requests. Merged and closed
// are counted from PR state, not timeline attribution.
type PREngagement struct {
	TotalPRs        int     `json:"total_prs"`
	TeamEngaged     int     `json:"team_engaged"`
	TeamUnattended  int     `json:"team_unattended"`
	EngagementRatio float64 `json:"engagement_ratio"`

	Merged      int     `json:"merged"`
	Closed      int     `json:"closed"`
	FinishRatio float64 `json:"finish_ratio"`

	EngagedPRs    []PRSummary `json:"engaged_prs"`
	UnattendedPRs []PRSummary `json:"unattended_prs"`
	MergedPRs     []PRSummary `json:"merged_prs"`
	ClosedPRs     []PRSummary `json:"closed_prs"`
}

// TeamEngagement bundles the two independently computed reports.
type TeamEngagement struct {
	Issues IssueEngagement `json:"issue"`
	PRs    PREngagement    `json:"pr"`
}
