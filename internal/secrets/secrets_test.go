package secrets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProvider(t *testing.T) {
	t.Setenv("TPSREPORT_TEST_SECRET", `{"webhook_url": "https://hooks.example.com/abc"}`)

	value, err := EnvProvider{}.GetSecret(context.Background(), "TPSREPORT_TEST_SECRET")
	require.NoError(t, err)
	assert.Contains(t, value, "hooks.example.com")

	_, err = EnvProvider{}.GetSecret(context.Background(), "TPSREPORT_TEST_SECRET_MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestStaticProvider(t *testing.T) {
	provider := StaticProvider{"slack-webhook": "https://hooks.example.com/xyz"}

	value, err := provider.GetSecret(context.Background(), "slack-webhook")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/xyz", value)

	_, err = provider.GetSecret(context.Background(), "unknown")
	assert.Error(t, err)
}

func TestNewProviderEnv(t *testing.T) {
	provider, err := NewProvider(context.Background(), "env", "")
	require.NoError(t, err)
	assert.IsType(t, EnvProvider{}, provider)
}

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider(context.Background(), "vault", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported secrets provider")
}
