package schema

// Thresholds holds the capacity utilization boundaries used by the translator.
// Comparisons against both values are inclusive at the boundary.
type Thresholds struct {
	CapacityWarning  float64 `json:"capacity_warning"`
	CapacityCritical float64 `json:"capacity_critical"`
}

// AnalysisResult is the structured analysis payload consumed by the report layer.
type AnalysisResult struct {
	Trends         []string    `json:"trends"`          // Narrative sentences in report order
	TrafficStatus  StatusLevel `json:"traffic_status"`  // Derived from TPS floors
	CapacityStatus StatusLevel `json:"capacity_status"` // Derived from capacity thresholds
}
