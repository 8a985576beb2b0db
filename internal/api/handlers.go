package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spiffcs/ghdash/config"
	"github.com/spiffcs/ghdash/internal/log"
	"github.com/spiffcs/ghdash/internal/model"
	"github.com/spiffcs/ghdash/internal/window"
)

// paramError is a request validation failure with a frontend error code.
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string {
	return e.message
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	user := strings.TrimSpace(q.Get("user"))
	if user == "" {
		respondError(w, http.StatusBadRequest, codeMissingParameter, "user parameter is required")
		return
	}

	wnd, perr := s.parseWindow(q)
	if perr != nil {
		respondError(w, http.StatusBadRequest, perr.code, perr.message)
		return
	}

	owner, repo := s.ownerRepo(q)
	log.Debug("handling metrics request", "user", user, "repo", owner+"/"+repo, "window", wnd.String())

	contributions, err := s.contributions.ContributionsBy(r.Context(), user, wnd, owner, repo)
	if err != nil {
		log.Error("metrics aggregation failed", "user", user, "error", err)
		respondUpstreamError(w, err)
		return
	}

	respond(w, http.StatusOK, formatMetrics(user, owner, repo, wnd, contributions))
}

func (s *Server) handleTeamEngagement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	wnd, perr := s.parseWindow(q)
	if perr != nil {
		respondError(w, http.StatusBadRequest, perr.code, perr.message)
		return
	}

	members := s.cfg.TeamMembers
	if team := q.Get("team"); team != "" {
		members = strings.Split(team, ",")
	}
	roster := model.NewRoster(members)
	if roster.Len() == 0 {
		respondError(w, http.StatusBadRequest, codeMissingParameter,
			"no team members configured; set team_members in config or pass the team parameter")
		return
	}

	owner, repo := s.ownerRepo(q)
	log.Debug("handling team engagement request", "repo", owner+"/"+repo, "team", roster.Len(), "window", wnd.String())

	engagement, err := s.engagement.TeamEngagement(r.Context(), wnd, roster, owner, repo)
	if err != nil {
		log.Error("team engagement failed", "error", err)
		respondUpstreamError(w, err)
		return
	}

	respond(w, http.StatusOK, formatTeamEngagement(owner, repo, wnd, roster, engagement))
}

// parseWindow resolves the request time window. from_date/to_date take
// precedence over days; both arrive as calendar dates interpreted in the
// optional timezone parameter.
func (s *Server) parseWindow(q url.Values) (window.Window, *paramError) {
	fromDate, toDate := q.Get("from_date"), q.Get("to_date")

	if fromDate != "" || toDate != "" {
		if fromDate == "" || toDate == "" {
			return window.Window{}, &paramError{
				code:    codeMissingParameter,
				message: "from_date and to_date must be provided together",
			}
		}
		wnd, err := window.FromDates(fromDate, toDate, q.Get("timezone"))
		if err != nil {
			if errors.Is(err, window.ErrTimezone) {
				return window.Window{}, &paramError{
					code:    codeInvalidTimezone,
					message: err.Error(),
				}
			}
			return window.Window{}, &paramError{
				code:    codeInvalidParameter,
				message: err.Error(),
			}
		}
		return wnd, nil
	}

	days := s.cfg.DefaultDaysBack
	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < config.MinDaysBack || n > config.MaxDaysBack {
			return window.Window{}, &paramError{
				code: codeInvalidParameter,
				message: fmt.Sprintf("days must be an integer between %d and %d",
					config.MinDaysBack, config.MaxDaysBack),
			}
		}
		days = n
	}
	return window.LastDays(days), nil
}

func (s *Server) ownerRepo(q url.Values) (string, string) {
	owner, repo := s.cfg.Owner, s.cfg.Repo
	if v := q.Get("owner"); v != "" {
		owner = v
	}
	if v := q.Get("repo"); v != "" {
		repo = v
	}
	return owner, repo
}
