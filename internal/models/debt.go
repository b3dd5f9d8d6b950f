package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtRecord represents one daily observation of total public debt outstanding
type DebtRecord struct {
	Date      time.Time       `json:"date"`
	TotalDebt decimal.Decimal `json:"total_debt"`
}

// DebtSeries holds daily records sorted descending by date (most recent first)
// with no duplicate dates. It is treated as immutable once produced.
type DebtSeries []DebtRecord

// Ascending returns a copy of the series in chronological order.
func (s DebtSeries) Ascending() DebtSeries {
	out := make(DebtSeries, len(s))
	for i, r := range s {
		out[len(s)-1-i] = r
	}
	return out
}
