package delivery

import (
	"context"
	"fmt"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// Compile-time checks
var (
	_ contract.Delivery = &SlackDelivery{}
	_ contract.Delivery = &GraphMailer{}
	_ contract.Delivery = &ConsoleDelivery{}
)

// BuildChannels resolves the configured delivery mode into concrete channels,
// pulling webhook URLs and client secrets from the secrets provider when the
// config references them by secret ID.
func BuildChannels(ctx context.Context, cfg *contract.Config, provider contract.SecretsProvider) ([]contract.Delivery, error) {
	switch cfg.Delivery {
	case schema.ConsoleDelivery:
		return []contract.Delivery{NewConsoleDelivery()}, nil

	case schema.SlackDelivery:
		slack, err := buildSlack(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		return []contract.Delivery{slack}, nil

	case schema.EmailDelivery:
		mailer, err := buildEmail(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		return []contract.Delivery{mailer}, nil

	case schema.BothDelivery:
		slack, err := buildSlack(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		mailer, err := buildEmail(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		return []contract.Delivery{slack, mailer}, nil

	default:
		return nil, fmt.Errorf("unsupported delivery mode: %s", cfg.Delivery)
	}
}

func buildSlack(ctx context.Context, cfg *contract.Config, provider contract.SecretsProvider) (*SlackDelivery, error) {
	webhookURL := cfg.SlackWebhookURL
	if webhookURL == "" {
		payload, err := provider.GetSecret(ctx, cfg.SlackWebhookSecretID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve Slack webhook: %w", err)
		}
		webhookURL, err = contract.ExtractSecretField(payload, "webhook_url", "url")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve Slack webhook: %w", err)
		}
	}
	return NewSlackDelivery(webhookURL), nil
}

func buildEmail(ctx context.Context, cfg *contract.Config, provider contract.SecretsProvider) (*GraphMailer, error) {
	clientSecret := cfg.GraphClientSecret
	if clientSecret == "" {
		payload, err := provider.GetSecret(ctx, cfg.GraphClientSecretNameID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve Graph client secret: %w", err)
		}
		clientSecret, err = contract.ExtractSecretField(payload, "client_secret", "secret")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve Graph client secret: %w", err)
		}
	}
	return NewGraphMailer(cfg.GraphTenantID, cfg.GraphClientID, clientSecret, cfg.EmailSender, cfg.EmailRecipients), nil
}
