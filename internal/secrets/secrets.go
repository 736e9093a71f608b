// Package secrets resolves delivery and API credentials from external vaults.
package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/tpsops/tpsreport/internal/contract"
)

// AWSProvider reads secrets from AWS Secrets Manager. Credentials come from
// the default AWS credential chain (environment, shared config, IAM role).
type AWSProvider struct {
	client *secretsmanager.Client
}

var _ contract.SecretsProvider = &AWSProvider{} // Compile-time check

// NewAWSProvider builds a provider for the given region. An empty region
// falls back to the AWS SDK's own region resolution.
func NewAWSProvider(ctx context.Context, region string) (*AWSProvider, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &AWSProvider{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// GetSecret returns the raw secret payload for the given secret ID.
func (p *AWSProvider) GetSecret(ctx context.Context, secretID string) (string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret %q: %w", secretID, err)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if len(out.SecretBinary) > 0 {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("secret %q has no string or binary value", secretID)
}

// EnvProvider reads secrets from environment variables, keyed directly by
// secret ID. Useful for local runs and CI where no vault is available.
type EnvProvider struct{}

var _ contract.SecretsProvider = EnvProvider{} // Compile-time check

// GetSecret returns the environment variable named by secretID.
func (EnvProvider) GetSecret(_ context.Context, secretID string) (string, error) {
	value, ok := os.LookupEnv(secretID)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", secretID)
	}
	return value, nil
}

// StaticProvider serves a fixed mapping of secret IDs to payloads. Intended
// for tests.
type StaticProvider map[string]string

var _ contract.SecretsProvider = StaticProvider{} // Compile-time check

// GetSecret returns the payload mapped to secretID.
func (p StaticProvider) GetSecret(_ context.Context, secretID string) (string, error) {
	value, ok := p[secretID]
	if !ok {
		return "", fmt.Errorf("no secret configured for %q", secretID)
	}
	return value, nil
}

// NewProvider returns a provider by name: "aws" or "env".
func NewProvider(ctx context.Context, name, region string) (contract.SecretsProvider, error) {
	switch name {
	case "aws", "":
		return NewAWSProvider(ctx, region)
	case "env":
		return EnvProvider{}, nil
	default:
		return nil, fmt.Errorf("unsupported secrets provider: %s. Must be aws or env", name)
	}
}
