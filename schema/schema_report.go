package schema

// ReportContext is the flat field mapping passed to the template renderer.
// All values are pre-formatted strings; absent metrics render as "--".
type ReportContext struct {
	UserName        string `json:"user_name"`
	Timestamp       string `json:"timestamp"`
	EventName       string `json:"event_name"`
	ReportDate      string `json:"report_date"`
	ReportTime      string `json:"report_time"`
	DashboardURL    string `json:"dashboard_url"`
	TrafficStatus   string `json:"traffic_status"`
	CapacityStatus  string `json:"capacity_status"`
	Trends          string `json:"trends"`
	TSYSAvgTPS      string `json:"tsys_avg_tps"`
	TSYSPeakTPS     string `json:"tsys_peak_tps"`
	TSYSPeakTime    string `json:"tsys_peak_time"`
	TSYSAvgCapacity string `json:"tsys_avg_capacity"`
	HPNSAvgTPS      string `json:"hpns_avg_tps"`
	HPNSPeakTPS     string `json:"hpns_peak_tps"`
	HPNSPeakTime    string `json:"hpns_peak_time"`
	HPNSAvgCapacity string `json:"hpns_avg_capacity"`
}

// AsMap flattens the context into template fields keyed by their snake_case names.
func (c *ReportContext) AsMap() map[string]string {
	return map[string]string{
		"user_name":         c.UserName,
		"timestamp":         c.Timestamp,
		"event_name":        c.EventName,
		"report_date":       c.ReportDate,
		"report_time":       c.ReportTime,
		"dashboard_url":     c.DashboardURL,
		"traffic_status":    c.TrafficStatus,
		"capacity_status":   c.CapacityStatus,
		"trends":            c.Trends,
		"tsys_avg_tps":      c.TSYSAvgTPS,
		"tsys_peak_tps":     c.TSYSPeakTPS,
		"tsys_peak_time":    c.TSYSPeakTime,
		"tsys_avg_capacity": c.TSYSAvgCapacity,
		"hpns_avg_tps":      c.HPNSAvgTPS,
		"hpns_peak_tps":     c.HPNSPeakTPS,
		"hpns_peak_time":    c.HPNSPeakTime,
		"hpns_avg_capacity": c.HPNSAvgCapacity,
	}
}

// ReportOutput bundles everything a single report cycle produced.
type ReportOutput struct {
	Metrics  map[MetricSlot]Metric `json:"metrics"`
	Analysis AnalysisResult        `json:"analysis"`
	Context  ReportContext         `json:"context"`
	Report   string                `json:"report"`
}
