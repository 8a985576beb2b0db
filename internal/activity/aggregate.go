package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spiffcs/ghdash/internal/log"
	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
	"golang.org/x/sync/errgroup"
)

// prTriggerGrace is the fallback proximity interval for correlating an
// issue close to a PR merge by the same actor, used only for close events
// that carried no explicit closer reference.
const prTriggerGrace = 3 * time.Second

// ContributionsBy aggregates every contribution category for one actor.
// The four extractors share no mutable state and only block on network
// I/O, so they run concurrently and join with fail-fast semantics: one
// failure aborts the whole aggregation with no partial result.
func (s *Service) ContributionsBy(ctx context.Context, actor string, w window.Window, owner, repo string) (*model.Contributions, error) {
	var (
		mu           sync.Mutex
		comments     []model.Comment
		reviews      []model.Review
		issueActs    *IssueActivities
		prActivities []model.PRActivity
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.CommentsBy(gctx, actor, w, owner, repo)
		if err != nil {
			return fmt.Errorf("comments: %w", err)
		}
		mu.Lock()
		comments = c
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		r, err := s.ReviewsBy(gctx, actor, w, owner, repo)
		if err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		mu.Lock()
		reviews = r
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		ia, err := s.IssueActivitiesBy(gctx, actor, w, owner, repo)
		if err != nil {
			return fmt.Errorf("issue activities: %w", err)
		}
		mu.Lock()
		issueActs = ia
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		pa, err := s.PRActivitiesBy(gctx, actor, w, owner, repo)
		if err != nil {
			return fmt.Errorf("PR activities: %w", err)
		}
		mu.Lock()
		prActivities = pa
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Split PR activities by action and collect merge instants for the
	// close-correlation fallback.
	prsOpened := []model.PRActivity{}
	prsMerged := []model.PRActivity{}
	prsClosed := []model.PRActivity{}
	var mergeTimes []time.Time
	for _, pa := range prActivities {
		switch pa.Action {
		case model.PROpened:
			prsOpened = append(prsOpened, pa)
		case model.PRMerged:
			prsMerged = append(prsMerged, pa)
			mergeTimes = append(mergeTimes, pa.OccurredAt)
		case model.PRClosed:
			prsClosed = append(prsClosed, pa)
		}
	}

	// Closes whose upstream event named a closer were already settled at
	// extraction; the remainder fall back to merge proximity.
	issuesClosed := []model.IssueClosed{}
	for _, ic := range issueActs.Closed {
		if !ic.HasCloser && closeFollowsMerge(ic.ClosedAt, mergeTimes) {
			log.Debug("dropping PR-triggered issue close", "issue", ic.Number, "closedAt", ic.ClosedAt)
			continue
		}
		issuesClosed = append(issuesClosed, ic)
	}

	return &model.Contributions{
		Comments:      comments,
		Reviews:       reviews,
		IssuesOpened:  issueActs.Opened,
		IssuesLabeled: issueActs.Labeled,
		IssuesClosed:  issuesClosed,
		PRsOpened:     prsOpened,
		PRsMerged:     prsMerged,
		PRsClosed:     prsClosed,
	}, nil
}

// closeFollowsMerge reports whether closedAt lands within the grace
// interval at or after any merge instant.
func closeFollowsMerge(closedAt time.Time, mergeTimes []time.Time) bool {
	for _, mergedAt := range mergeTimes {
		diff := closedAt.Sub(mergedAt)
		if diff >= 0 && diff <= prTriggerGrace {
			return true
		}
	}
	return false
}
