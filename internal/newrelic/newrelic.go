// Package newrelic fetches dashboard widget payloads from the NerdGraph API.
package newrelic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// GraphQLEndpoint is the public NerdGraph API endpoint.
const GraphQLEndpoint = "https://api.newrelic.com/graphql"

const requestTimeout = 30 * time.Second

// widgetsQuery pulls every widget across all pages of a dashboard entity.
const widgetsQuery = `
query ($guid: EntityGuid!) {
  actor {
    entity(guid: $guid) {
      ... on DashboardEntity {
        pages {
          widgets {
            id
            title
            visualization { id }
            rawConfiguration
            layout { column row width height }
            data {
              raw
              visualization
            }
          }
        }
      }
    }
  }
}
`

// Client is a thin wrapper around the NerdGraph API for dashboard widgets.
// Each fetch is a single attempt; retry policy belongs to the caller.
type Client struct {
	apiKey   string
	endpoint string
	httpc    *http.Client
}

var _ contract.DashboardClient = &Client{} // Compile-time check

// NewClient returns a Client against the public NerdGraph endpoint.
func NewClient(apiKey string) *Client {
	return NewClientForEndpoint(apiKey, GraphQLEndpoint)
}

// NewClientForEndpoint returns a Client against a custom endpoint.
func NewClientForEndpoint(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: requestTimeout},
	}
}

// FetchPayload returns the raw NerdGraph response body for the dashboard GUID.
// The body is returned as-is so it can be cached and decoded again later with
// DecodeWidgets.
func (c *Client) FetchPayload(ctx context.Context, guid string) ([]byte, error) {
	reqBody, err := json.Marshal(map[string]any{
		"query":     widgetsQuery,
		"variables": map[string]string{"guid": guid},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode dashboard query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard request: %w", err)
	}
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dashboard request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashboard request returned status %d: %s", resp.StatusCode, truncateBody(body))
	}

	// Surface GraphQL errors at fetch time so a failed response never lands
	// in the snapshot store.
	if _, err := DecodeWidgets(body); err != nil {
		return nil, err
	}

	return body, nil
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data struct {
		Actor struct {
			Entity struct {
				Pages []struct {
					Widgets []schema.Widget `json:"widgets"`
				} `json:"pages"`
			} `json:"entity"`
		} `json:"actor"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// DecodeWidgets parses a NerdGraph response body into widgets, collected
// across all dashboard pages.
func DecodeWidgets(payload []byte) ([]schema.Widget, error) {
	var resp graphQLResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard response: %w", err)
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("dashboard query failed: %v", messages)
	}

	var widgets []schema.Widget
	for _, page := range resp.Data.Actor.Entity.Pages {
		widgets = append(widgets, page.Widgets...)
	}
	return widgets, nil
}

// truncateBody keeps error messages readable when the server returns a page
// of HTML instead of JSON.
func truncateBody(body []byte) string {
	const maxLen = 200
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
