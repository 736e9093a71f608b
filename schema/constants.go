package schema

// Custom string types for type safety.
type (
	// MetricSlot represents one of the canonical metric categories.
	MetricSlot string

	// Trend represents the directional change of a metric versus the prior week.
	Trend string

	// StatusLevel represents a categorical health indicator.
	StatusLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DeliveryMode represents where a rendered report is sent.
	DeliveryMode string

	// DatabaseBackend represents the database backend for snapshot storage.
	DatabaseBackend string
)

// All metric slots supported. Each widget classifies into at most one slot.
const (
	TSYSTPSSlot      MetricSlot = "tsys_tps"
	HPNSTPSSlot      MetricSlot = "hpns_tps"
	TSYSCapacitySlot MetricSlot = "tsys_capacity"
	HPNSCapacitySlot MetricSlot = "hpns_capacity"
	TPSRatioSlot     MetricSlot = "tps_ratio"
)

// All trend directions supported.
const (
	UpTrend      Trend = "up"
	DownTrend    Trend = "down"
	NeutralTrend Trend = "neutral"
)

// All status levels supported.
const (
	GoodStatus     StatusLevel = "good"
	WarningStatus  StatusLevel = "warning"
	CriticalStatus StatusLevel = "critical"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All delivery modes supported.
const (
	ConsoleDelivery DeliveryMode = "console" // default
	SlackDelivery   DeliveryMode = "slack"
	EmailDelivery   DeliveryMode = "email"
	BothDelivery    DeliveryMode = "both"
)

// All snapshot backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllMetricSlots returns the canonical slot order used in reports.
var AllMetricSlots = []MetricSlot{
	TSYSTPSSlot,
	HPNSTPSSlot,
	TSYSCapacitySlot,
	HPNSCapacitySlot,
	TPSRatioSlot,
}

// ValidTrends lists all valid trend directions.
var ValidTrends = map[Trend]struct{}{
	UpTrend:      {},
	DownTrend:    {},
	NeutralTrend: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDeliveryModes lists all valid delivery modes.
var ValidDeliveryModes = map[DeliveryMode]struct{}{
	ConsoleDelivery: {},
	SlackDelivery:   {},
	EmailDelivery:   {},
	BothDelivery:    {},
}

// ValidDatabaseBackends lists all valid snapshot backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Symbol returns the indicator emoji used in rendered reports.
func (s StatusLevel) Symbol() string {
	switch s {
	case GoodStatus:
		return "🟢"
	case WarningStatus:
		return "🟡"
	default:
		return "🔴"
	}
}
