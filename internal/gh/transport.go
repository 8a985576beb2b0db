// Package gh issues authenticated GraphQL queries against the GitHub API
// and wraps them in cursor-following paginators.
package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spiffcs/ghdash/internal/log"
	"golang.org/x/oauth2"
)

const defaultEndpoint = "https://api.github.com/graphql"

// Client executes GraphQL query documents. It carries no request state;
// every paginator invocation owns its own cursor.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a client using a personal access token. An empty token
// fails immediately with ErrMissingToken.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		httpClient: oauth2.NewClient(context.Background(), ts),
		endpoint:   defaultEndpoint,
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []QueryError    `json:"errors"`
}

// Execute sends one synchronous query with variables and returns the raw
// data payload. No retries happen at this layer; a failure aborts the whole
// request chain it is part of.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("gh: failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gh: failed to create GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gh: GraphQL request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gh: failed to read GraphQL response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("gh: failed to parse GraphQL response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		for _, qe := range gqlResp.Errors {
			log.Debug("GraphQL error", "message", qe.Message, "type", qe.Type)
		}
		return nil, &UpstreamError{Errors: gqlResp.Errors}
	}

	return gqlResp.Data, nil
}
