// Package checks implements the five weighted validator categories.
// Registration order here is the fixed evaluation order.
package checks

import "govsync/internal/rules"

func init() {
	rules.Register(&DocumentStructure{})
	rules.Register(&VersionConsistency{})
	rules.Register(&QualityMetrics{})
	rules.Register(&SafetyCompliance{})
	rules.Register(&ExceptionPolicy{})
}
