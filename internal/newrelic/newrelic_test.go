package newrelic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"data": {
		"actor": {
			"entity": {
				"pages": [
					{
						"widgets": [
							{
								"id": "w1",
								"title": "TSYS Total TPS",
								"rawConfiguration": {"title": "2.1k"},
								"data": {"visualization": {"currentValue": 2100}}
							}
						]
					},
					{
						"widgets": [
							{
								"id": "w2",
								"title": "HPNS TPS",
								"data": {"visualization": {"currentValue": 850}}
							}
						]
					}
				]
			}
		}
	}
}`

func TestFetchPayload(t *testing.T) {
	var gotAPIKey, gotContentType string
	var gotRequest map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("API-Key")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewClientForEndpoint("test-key", server.URL)
	payload, err := client.FetchPayload(context.Background(), "dash-guid-1")
	require.NoError(t, err)
	assert.JSONEq(t, sampleResponse, string(payload))

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, gotRequest["query"], "DashboardEntity")
	variables, ok := gotRequest["variables"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dash-guid-1", variables["guid"])
}

func TestFetchPayloadHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientForEndpoint("bad-key", server.URL)
	_, err := client.FetchPayload(context.Background(), "dash-guid-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFetchPayloadGraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "entity not found"}]}`))
	}))
	defer server.Close()

	client := NewClientForEndpoint("test-key", server.URL)
	_, err := client.FetchPayload(context.Background(), "missing-guid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard query failed")
	assert.Contains(t, err.Error(), "entity not found")
}

func TestDecodeWidgets(t *testing.T) {
	widgets, err := DecodeWidgets([]byte(sampleResponse))
	require.NoError(t, err)
	require.Len(t, widgets, 2)

	assert.Equal(t, "TSYS Total TPS", widgets[0].Title)
	assert.Equal(t, "2.1k", widgets[0].RawConfiguration["title"])
	assert.Equal(t, "HPNS TPS", widgets[1].Title)
}

func TestDecodeWidgetsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"not json", "<html>gateway timeout</html>", "failed to decode"},
		{"graphql errors", `{"errors": [{"message": "boom"}]}`, "dashboard query failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWidgets([]byte(tt.payload))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeWidgetsEmptyPages(t *testing.T) {
	widgets, err := DecodeWidgets([]byte(`{"data": {"actor": {"entity": {"pages": []}}}}`))
	require.NoError(t, err)
	assert.Empty(t, widgets)
}
