// Package delivery sends finished reports to their configured channels.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendTimeout = 10 * time.Second

// SlackDelivery posts report text to a Slack incoming webhook.
type SlackDelivery struct {
	webhookURL string
	httpc      *http.Client
}

// NewSlackDelivery returns a delivery channel for the given webhook URL.
func NewSlackDelivery(webhookURL string) *SlackDelivery {
	return &SlackDelivery{
		webhookURL: webhookURL,
		httpc:      &http.Client{Timeout: sendTimeout},
	}
}

// Name identifies the channel in logs and the run log.
func (s *SlackDelivery) Name() string {
	return "slack"
}

// Send posts the report body as a mrkdwn message. The subject is ignored
// since webhook messages have no subject line.
func (s *SlackDelivery) Send(ctx context.Context, _ string, body string) error {
	payload, err := json.Marshal(map[string]any{
		"text":   body,
		"mrkdwn": true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode Slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build Slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("Slack webhook returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
