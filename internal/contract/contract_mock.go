package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDashboardClient is a mock implementation of the DashboardClient interface for testing.
type MockDashboardClient struct {
	mock.Mock
}

var _ DashboardClient = &MockDashboardClient{} // Compile-time check

// FetchPayload mocks the FetchPayload method.
func (m *MockDashboardClient) FetchPayload(ctx context.Context, guid string) ([]byte, error) {
	args := m.Called(ctx, guid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSecretsProvider is a mock implementation of the SecretsProvider interface for testing.
type MockSecretsProvider struct {
	mock.Mock
}

var _ SecretsProvider = &MockSecretsProvider{} // Compile-time check

// GetSecret mocks the GetSecret method.
func (m *MockSecretsProvider) GetSecret(ctx context.Context, secretID string) (string, error) {
	args := m.Called(ctx, secretID)
	return args.String(0), args.Error(1)
}

// MockRenderer is a mock implementation of the Renderer interface for testing.
type MockRenderer struct {
	mock.Mock
}

var _ Renderer = &MockRenderer{} // Compile-time check

// Render mocks the Render method.
func (m *MockRenderer) Render(templateName string, fields map[string]string) (string, error) {
	args := m.Called(templateName, fields)
	return args.String(0), args.Error(1)
}

// MockDelivery is a mock implementation of the Delivery interface for testing.
type MockDelivery struct {
	mock.Mock
}

var _ Delivery = &MockDelivery{} // Compile-time check

// Name mocks the Name method.
func (m *MockDelivery) Name() string {
	args := m.Called()
	return args.String(0)
}

// Send mocks the Send method.
func (m *MockDelivery) Send(ctx context.Context, subject, body string) error {
	args := m.Called(ctx, subject, body)
	return args.Error(0)
}
