// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/tpsops/tpsreport/schema"
)

// DashboardClient defines the operations needed to obtain raw widget data.
// This allows the core pipeline to be tested without a live dashboard API.
// The payload is kept raw so it can be cached in the snapshot store and
// decoded again offline.
type DashboardClient interface {
	// FetchPayload returns the raw API response body for the dashboard GUID.
	FetchPayload(ctx context.Context, guid string) ([]byte, error)
}

// SecretsProvider defines read access to an external secrets vault.
// Implementations return the raw secret payload; use ExtractSecretField
// to pull a single field out of JSON payloads.
type SecretsProvider interface {
	GetSecret(ctx context.Context, secretID string) (string, error)
}

// Renderer turns a report context mapping into final report text.
type Renderer interface {
	Render(templateName string, fields map[string]string) (string, error)
}

// Delivery defines a channel that accepts finished report text.
type Delivery interface {
	// Name identifies the channel in logs and the run log.
	Name() string

	// Send transmits the report. Subject is advisory; webhook channels ignore it.
	Send(ctx context.Context, subject, body string) error
}

// SnapshotManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type SnapshotManager interface {
	GetSnapshotStore() SnapshotStore
	GetRunLog() RunLogStore
}

// SnapshotStore caches the last raw widget payload per dashboard GUID so
// reports can be re-rendered offline without refetching.
type SnapshotStore interface {
	Get(guid string) (payload []byte, fetchedAt time.Time, err error)
	Put(guid string, payload []byte, fetchedAt time.Time) error
	GetStatus() (schema.SnapshotStatus, error)
	Close() error
}

// RunLogStore records report runs and delivery outcomes for auditing.
type RunLogStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, guid string, configParams map[string]any) (int64, error)

	// EndRun finalizes the run with its analysis outcome.
	EndRun(runID int64, endTime time.Time, trafficStatus, capacityStatus schema.StatusLevel, trendCount int) error

	// RecordDelivery stores the outcome of one delivery attempt.
	RecordDelivery(runID int64, channel string, success bool, detail string) error

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.ReportRunRecord, error)

	// GetAllDeliveries returns every recorded delivery attempt, oldest first.
	GetAllDeliveries() ([]schema.DeliveryRecord, error)

	// GetStatus returns status information about the run log.
	GetStatus() (schema.RunLogStatus, error)

	// Close closes the underlying connection.
	Close() error
}
