package engagement

import (
	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/model"
)

// issueEngaged reports whether any roster member responded to the issue:
// a comment, a resolution-marker label they applied, a close they
// performed, or an acknowledgment-marker label applied by anyone.
func issueEngaged(issue gh.SearchIssue, roster model.Roster) bool {
	for _, c := range issue.Comments.Nodes {
		if c.Author != nil && roster.Contains(c.Author.Login) {
			return true
		}
	}

	for _, event := range issue.TimelineItems.Nodes {
		switch event.Typename {
		case "LabeledEvent":
			if event.Label == nil {
				continue
			}
			if model.IsAckLabel(event.Label.Name) {
				return true
			}
			if model.IsResolutionLabel(event.Label.Name) &&
				event.Actor != nil && roster.Contains(event.Actor.Login) {
				return true
			}
		case "ClosedEvent":
			if event.Actor != nil && roster.Contains(event.Actor.Login) {
				return true
			}
		}
	}

	return false
}

// prEngaged reports whether any roster member responded to the pull
// request via a comment, a review, a merge, or a close.
func prEngaged(pr gh.SearchPullRequest, roster model.Roster) bool {
	for _, c := range pr.Comments.Nodes {
		if c.Author != nil && roster.Contains(c.Author.Login) {
			return true
		}
	}

	for _, r := range pr.Reviews.Nodes {
		if r.Author != nil && roster.Contains(r.Author.Login) {
			return true
		}
	}

	for _, event := range pr.TimelineItems.Nodes {
		if event.Typename != "MergedEvent" && event.Typename != "ClosedEvent" {
			continue
		}
		if event.Actor != nil && roster.Contains(event.Actor.Login) {
			return true
		}
	}

	return false
}

// lastClosedEvent returns the most recent ClosedEvent in timeline order,
// or nil when none is visible.
func lastClosedEvent(items []gh.TimelineItem) *gh.TimelineItem {
	var last *gh.TimelineItem
	for i := range items {
		if items[i].Typename == "ClosedEvent" {
			last = &items[i]
		}
	}
	return last
}
