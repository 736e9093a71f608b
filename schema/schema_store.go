package schema

import "time"

// SnapshotStatus represents the status of the widget snapshot store.
type SnapshotStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RunLogStatus represents the status of the report run log.
type RunLogStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalDeliveries int              `json:"total_deliveries"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// ReportRunRecord represents a row from the tpsreport_runs table.
type ReportRunRecord struct {
	RunID          int64
	DashboardGUID  string
	StartTime      time.Time
	EndTime        *time.Time
	ConfigParams   *string
	TrafficStatus  string
	CapacityStatus string
	TrendCount     int32
}

// DeliveryRecord represents a row from the tpsreport_deliveries table.
type DeliveryRecord struct {
	RunID       int64
	Channel     string
	Success     bool
	Detail      *string
	DeliveredAt time.Time
}
