package core

import (
	"strings"

	"github.com/tpsops/tpsreport/schema"
)

// slotRule maps widget title keywords to a metric slot. Rules are checked in
// order and the first match wins, so broader keywords are listed first to
// match how dashboard owners name their widgets.
type slotRule struct {
	slot  schema.MetricSlot
	match func(title string) bool
}

var slotRules = []slotRule{
	{
		slot: schema.TSYSTPSSlot,
		match: func(t string) bool {
			return strings.Contains(t, "total") ||
				(strings.Contains(t, "tsys") && strings.Contains(t, "tps"))
		},
	},
	{
		slot: schema.HPNSTPSSlot,
		match: func(t string) bool {
			return strings.Contains(t, "hpns") && strings.Contains(t, "tps")
		},
	},
	{
		slot: schema.TSYSCapacitySlot,
		match: func(t string) bool {
			return strings.Contains(t, "tsys") && strings.Contains(t, "capacity")
		},
	},
	{
		slot: schema.HPNSCapacitySlot,
		match: func(t string) bool {
			return strings.Contains(t, "hpns") && strings.Contains(t, "capacity")
		},
	},
	{
		slot: schema.TPSRatioSlot,
		match: func(t string) bool {
			return strings.Contains(t, "ratio")
		},
	},
}

// classifySlot assigns a widget title to a metric slot. Returns false for
// widgets that do not belong to any slot this report cares about.
func classifySlot(title string) (schema.MetricSlot, bool) {
	lower := strings.ToLower(title)
	for _, rule := range slotRules {
		if rule.match(lower) {
			return rule.slot, true
		}
	}
	return "", false
}
