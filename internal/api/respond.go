package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/log"
)

// Error codes surfaced to the frontend.
const (
	codeMissingParameter = "MISSING_PARAMETER"
	codeInvalidParameter = "INVALID_PARAMETER"
	codeInvalidTimezone  = "INVALID_TIMEZONE"
	codeRateLimited      = "RATE_LIMIT_EXCEEDED"
	codeUserNotFound     = "USER_NOT_FOUND"
	codeAuthentication   = "AUTHENTICATION_ERROR"
	codeGitHubAPIError   = "GITHUB_API_ERROR"
	codeInternalError    = "INTERNAL_ERROR"
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respond(w, status, errorEnvelope{Error: errorBody{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}})
}

// respondUpstreamError maps upstream failures onto the frontend's error
// codes. The core raises typed failures untouched; classification happens
// only here.
func respondUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case gh.IsRateLimited(err):
		respondError(w, http.StatusTooManyRequests, codeRateLimited,
			"GitHub API rate limit exceeded. Please try again later.")
	case gh.IsNotFound(err):
		respondError(w, http.StatusNotFound, codeUserNotFound,
			"Requested GitHub resource not found")
	case gh.IsUnauthorized(err):
		respondError(w, http.StatusInternalServerError, codeAuthentication,
			"GitHub authentication failed. Check your token.")
	default:
		respondError(w, http.StatusInternalServerError, codeGitHubAPIError,
			"Error fetching data from GitHub: "+sanitizeErrorMessage(err.Error()))
	}
}

// recoverJSON converts handler panics into the JSON error envelope the
// frontend expects, instead of chi's plain-text 500.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic serving request", "path", r.URL.Path, "panic", rec)
				respondError(w, http.StatusInternalServerError, codeInternalError,
					"An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

var (
	tokenPattern   = regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{36,}`)
	connPattern    = regexp.MustCompile(`\w+://[^\s]+@[^\s]+`)
	envVarPattern  = regexp.MustCompile(`\b[A-Z_]+=[^\s]+`)
	winPathPattern = regexp.MustCompile(`[A-Za-z]:\\[^\s]+\.go`)
	pathPattern    = regexp.MustCompile(`/[^\s]+\.go`)
)

// sanitizeErrorMessage strips credentials, connection strings, env
// assignments and file paths from messages surfaced to clients.
func sanitizeErrorMessage(msg string) string {
	msg = tokenPattern.ReplaceAllString(msg, "[REDACTED_TOKEN]")
	msg = connPattern.ReplaceAllString(msg, "[REDACTED_CONNECTION_STRING]")
	msg = envVarPattern.ReplaceAllString(msg, "[REDACTED_ENV_VAR]")
	msg = winPathPattern.ReplaceAllString(msg, "[FILE_PATH]")
	msg = pathPattern.ReplaceAllString(msg, "[FILE_PATH]")
	return msg
}
