package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsSnapshot represents the derived statistics for the most recent record.
// Nil pointer fields mean the metric is absent (too few records or a zero
// denominator), which is distinct from a legitimately zero value.
type MetricsSnapshot struct {
	LatestValue            decimal.Decimal  `json:"latest_value"`
	LatestDate             time.Time        `json:"latest_date"`
	DeltaSincePrevious     *decimal.Decimal `json:"delta_since_previous"`
	PctChangeSincePrevious *decimal.Decimal `json:"pct_change_since_previous"`
	PerCapita              *decimal.Decimal `json:"per_capita"`
	PctChangeOverWindow    *decimal.Decimal `json:"pct_change_over_window"`
}
