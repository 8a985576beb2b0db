package api

import (
	"time"

	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
)

// The response envelope groups the per-actor lists the way the dashboard
// renders them: issue triage work and code review work, with opened items
// kept at the top level.

type periodMeta struct {
	Days  int    `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type metricsMeta struct {
	User       string     `json:"user"`
	Repository string     `json:"repository"`
	Period     periodMeta `json:"period"`
	FetchedAt  string     `json:"fetched_at"`
}

type triageCounts struct {
	Comments int `json:"comments"`
	Labeled  int `json:"labeled"`
	Closed   int `json:"closed"`
}

type reviewCounts struct {
	Comments int `json:"comments"`
	Reviews  int `json:"reviews"`
	Merged   int `json:"merged"`
	Closed   int `json:"closed"`
}

type metricsSummary struct {
	TotalActions int          `json:"total_actions"`
	IssuesOpened int          `json:"issues_opened"`
	PRsOpened    int          `json:"prs_opened"`
	IssueTriage  triageCounts `json:"issue_triage"`
	CodeReviews  reviewCounts `json:"code_reviews"`
}

type triageData struct {
	Comments []model.Comment      `json:"comments"`
	Labeled  []model.IssueLabeled `json:"labeled"`
	Closed   []model.IssueClosed  `json:"closed"`
}

type reviewData struct {
	Comments []model.Comment    `json:"comments"`
	Reviews  []model.Review     `json:"reviews"`
	Merged   []model.PRActivity `json:"merged"`
	Closed   []model.PRActivity `json:"closed"`
}

type metricsData struct {
	IssuesOpened []model.IssueOpened `json:"issues_opened"`
	PRsOpened    []model.PRActivity  `json:"prs_opened"`
	IssueTriage  triageData          `json:"issue_triage"`
	CodeReviews  reviewData          `json:"code_reviews"`
}

type metricsResponse struct {
	Meta    metricsMeta    `json:"meta"`
	Summary metricsSummary `json:"summary"`
	Data    metricsData    `json:"data"`
}

func formatMetrics(user, owner, repo string, w window.Window, c *model.Contributions) metricsResponse {
	issueComments := make([]model.Comment, 0, len(c.Comments))
	prComments := make([]model.Comment, 0)
	for _, comment := range c.Comments {
		if comment.IsPullRequest {
			prComments = append(prComments, comment)
		} else {
			issueComments = append(issueComments, comment)
		}
	}

	return metricsResponse{
		Meta: metricsMeta{
			User:       user,
			Repository: owner + "/" + repo,
			Period:     formatPeriod(w),
			FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		},
		Summary: metricsSummary{
			TotalActions: c.TotalActions(),
			IssuesOpened: len(c.IssuesOpened),
			PRsOpened:    len(c.PRsOpened),
			IssueTriage: triageCounts{
				Comments: len(issueComments),
				Labeled:  len(c.IssuesLabeled),
				Closed:   len(c.IssuesClosed),
			},
			CodeReviews: reviewCounts{
				Comments: len(prComments),
				Reviews:  len(c.Reviews),
				Merged:   len(c.PRsMerged),
				Closed:   len(c.PRsClosed),
			},
		},
		Data: metricsData{
			IssuesOpened: c.IssuesOpened,
			PRsOpened:    c.PRsOpened,
			IssueTriage: triageData{
				Comments: issueComments,
				Labeled:  c.IssuesLabeled,
				Closed:   c.IssuesClosed,
			},
			CodeReviews: reviewData{
				Comments: prComments,
				Reviews:  c.Reviews,
				Merged:   c.PRsMerged,
				Closed:   c.PRsClosed,
			},
		},
	}
}

type engagementMeta struct {
	Repository  string     `json:"repository"`
	Period      periodMeta `json:"period"`
	TeamMembers []string   `json:"team_members"`
	FetchedAt   string     `json:"fetched_at"`
}

type engagementResponse struct {
	Meta engagementMeta       `json:"meta"`
	Data model.TeamEngagement `json:"data"`
}

func formatTeamEngagement(owner, repo string, w window.Window, roster model.Roster, e *model.TeamEngagement) engagementResponse {
	return engagementResponse{
		Meta: engagementMeta{
			Repository:  owner + "/" + repo,
			Period:      formatPeriod(w),
			TeamMembers: roster.Members(),
			FetchedAt:   time.Now().UTC().Format(time.RFC3339),
		},
		Data: *e,
	}
}

func formatPeriod(w window.Window) periodMeta {
	return periodMeta{
		Days:  w.Days(),
		Start: w.From.Format(time.RFC3339),
		End:   w.To.Format(time.RFC3339),
	}
}
