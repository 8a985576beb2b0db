package gh

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingToken is returned by NewClient when no bearer token is available.
// It fails the construction path, before any network call.
var ErrMissingToken = errors.New("gh: GitHub token not provided. Set the GITHUB_TOKEN environment variable")

// TransportError is a non-2xx HTTP response from the GraphQL endpoint.
// The status and body are carried untouched; mapping onto user-facing
// error codes is the HTTP layer's job.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gh: GraphQL request failed with status %d: %s", e.StatusCode, e.Body)
}

// QueryError is one entry of a GraphQL-level error payload.
type QueryError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// UpstreamError is an HTTP 200 response that carried a top-level errors array.
type UpstreamError struct {
	Errors []QueryError
}

func (e *UpstreamError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, qe := range e.Errors {
		msgs = append(msgs, qe.Message)
	}
	return "gh: GraphQL errors: " + strings.Join(msgs, "; ")
}

// IsRateLimited reports whether err is an upstream rate-limit rejection,
// either as an HTTP 403/429 or as a RATE_LIMITED GraphQL error.
func IsRateLimited(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		if te.StatusCode == 403 || te.StatusCode == 429 {
			return strings.Contains(strings.ToLower(te.Body), "rate limit") || te.StatusCode == 429
		}
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		for _, qe := range ue.Errors {
			if qe.Type == "RATE_LIMITED" || strings.Contains(strings.ToLower(qe.Message), "rate limit") {
				return true
			}
		}
	}
	return false
}

// IsUnauthorized reports whether err indicates a bad or expired credential.
func IsUnauthorized(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.StatusCode == 401
}

// IsNotFound reports whether err indicates a missing upstream resource.
func IsNotFound(err error) bool {
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode == 404 {
		return true
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		for _, qe := range ue.Errors {
			if qe.Type == "NOT_FOUND" {
				return true
			}
		}
	}
	return false
}
