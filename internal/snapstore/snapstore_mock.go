package snapstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// MockSnapshotManager is a mock implementation of SnapshotManager for testing.
type MockSnapshotManager struct {
	mock.Mock
}

var _ contract.SnapshotManager = &MockSnapshotManager{} // Compile-time check

// GetSnapshotStore implements the SnapshotManager interface.
func (m *MockSnapshotManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// GetRunLog implements the SnapshotManager interface.
func (m *MockSnapshotManager) GetRunLog() contract.RunLogStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunLogStore)
	return store
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Get implements the SnapshotStore interface.
func (m *MockSnapshotStore) Get(guid string) ([]byte, time.Time, error) {
	args := m.Called(guid)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Get(1).(time.Time), args.Error(2)
}

// Put implements the SnapshotStore interface.
func (m *MockSnapshotStore) Put(guid string, payload []byte, fetchedAt time.Time) error {
	args := m.Called(guid, payload, fetchedAt)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SnapshotStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRunLogStore is a mock implementation of RunLogStore for testing.
type MockRunLogStore struct {
	mock.Mock
}

var _ contract.RunLogStore = &MockRunLogStore{} // Compile-time check

// BeginRun implements the RunLogStore interface.
func (m *MockRunLogStore) BeginRun(startTime time.Time, guid string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, guid, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunLogStore interface.
func (m *MockRunLogStore) EndRun(runID int64, endTime time.Time, trafficStatus, capacityStatus schema.StatusLevel, trendCount int) error {
	args := m.Called(runID, endTime, trafficStatus, capacityStatus, trendCount)
	return args.Error(0)
}

// RecordDelivery implements the RunLogStore interface.
func (m *MockRunLogStore) RecordDelivery(runID int64, channel string, success bool, detail string) error {
	args := m.Called(runID, channel, success, detail)
	return args.Error(0)
}

// GetAllRuns implements the RunLogStore interface.
func (m *MockRunLogStore) GetAllRuns() ([]schema.ReportRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ReportRunRecord)
	return records, args.Error(1)
}

// GetAllDeliveries implements the RunLogStore interface.
func (m *MockRunLogStore) GetAllDeliveries() ([]schema.DeliveryRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.DeliveryRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunLogStore interface.
func (m *MockRunLogStore) GetStatus() (schema.RunLogStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunLogStatus), args.Error(1)
}

// Close implements the RunLogStore interface.
func (m *MockRunLogStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
