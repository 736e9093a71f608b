package schema

// CheckViolation names one policy breach found during a check run.
type CheckViolation struct {
	Subject string      `json:"subject"` // "traffic" or "capacity"
	Status  StatusLevel `json:"status"`
	Detail  string      `json:"detail"`
}

// CheckResult is the outcome of the CI gating check. The gate fails only on
// critical status; warnings pass with a visible note.
type CheckResult struct {
	DashboardGUID  string                `json:"dashboard_guid"`
	Thresholds     Thresholds            `json:"thresholds"`
	TrafficStatus  StatusLevel           `json:"traffic_status"`
	CapacityStatus StatusLevel           `json:"capacity_status"`
	Metrics        map[MetricSlot]Metric `json:"metrics"`
	Violations     []CheckViolation      `json:"violations"`
	Passed         bool                  `json:"passed"`
}
