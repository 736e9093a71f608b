package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphBaseURL   = "https://graph.microsoft.com/v1.0"
	graphScope     = "https://graph.microsoft.com/.default"
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// GraphMailer sends HTML email through the Microsoft Graph sendMail endpoint
// using the OAuth 2.0 client credentials flow.
type GraphMailer struct {
	conf       *clientcredentials.Config
	sender     string
	recipients []string
	baseURL    string
}

// NewGraphMailer builds a mailer for the given Entra ID application.
func NewGraphMailer(tenantID, clientID, clientSecret, sender string, recipients []string) *GraphMailer {
	return NewGraphMailerForEndpoints(
		fmt.Sprintf(tokenURLFormat, tenantID),
		graphBaseURL,
		clientID, clientSecret, sender, recipients,
	)
}

// NewGraphMailerForEndpoints builds a mailer against custom token and Graph
// endpoints.
func NewGraphMailerForEndpoints(tokenURL, baseURL, clientID, clientSecret, sender string, recipients []string) *GraphMailer {
	return &GraphMailer{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{graphScope},
		},
		sender:     sender,
		recipients: recipients,
		baseURL:    baseURL,
	}
}

// Name identifies the channel in logs and the run log.
func (g *GraphMailer) Name() string {
	return "email"
}

// Send delivers the report as an HTML email. Plain-text newlines are
// converted to <br> so the report keeps its line structure in mail clients.
func (g *GraphMailer) Send(ctx context.Context, subject, body string) error {
	recipients := make([]map[string]any, 0, len(g.recipients))
	for _, addr := range g.recipients {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		recipients = append(recipients, map[string]any{
			"emailAddress": map[string]string{"address": addr},
		})
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	payload, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"subject": subject,
			"body": map[string]string{
				"contentType": "HTML",
				"content":     strings.ReplaceAll(body, "\n", "<br>"),
			},
			"toRecipients": recipients,
		},
		"saveToSentItems": "true",
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/sendMail", g.baseURL, g.sender)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sendMail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// The oauth2 client fetches and caches the access token on demand.
	resp, err := g.conf.Client(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("Graph sendMail returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
