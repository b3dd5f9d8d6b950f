package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisplayRow represents one row of the display table: a record plus its change
// relative to the chronologically preceding record. DailyChange is nil for the
// earliest record in the series.
type DisplayRow struct {
	Date        time.Time        `json:"date"`
	TotalDebt   decimal.Decimal  `json:"total_debt"`
	DailyChange *decimal.Decimal `json:"daily_change"`
}
