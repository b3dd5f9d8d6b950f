package service

import (
	"github.com/shopspring/decimal"
	"github.com/treasurywatch/debt-tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Metrics computes the snapshot for a non-empty descending series. Returns nil
// for an empty series; the caller is expected to have short-circuited that
// case into its "no data" state already.
//
// Any zero denominator (previous value, oldest value, population) resolves the
// affected field to nil instead of panicking or producing Inf/NaN.
func (s *Service) Metrics(series models.DebtSeries) *models.MetricsSnapshot {
	if len(series) == 0 {
		return nil
	}

	latest := series[0]
	snap := &models.MetricsSnapshot{
		LatestValue: latest.TotalDebt,
		LatestDate:  latest.Date,
	}

	if len(series) >= 2 {
		previous := series[1].TotalDebt
		delta := latest.TotalDebt.Sub(previous)
		snap.DeltaSincePrevious = &delta
		if !previous.IsZero() {
			pct := delta.Div(previous).Mul(hundred)
			snap.PctChangeSincePrevious = &pct
		}
	}

	if s.config.Population > 0 {
		perCapita := latest.TotalDebt.Div(decimal.NewFromInt(s.config.Population))
		snap.PerCapita = &perCapita
	}

	// The long-window change uses whatever the fetched window's tail is, not a
	// record exactly LongWindowMinRecords days back.
	if len(series) >= s.config.LongWindowMinRecords {
		oldest := series[len(series)-1].TotalDebt
		if !oldest.IsZero() {
			pct := latest.TotalDebt.Sub(oldest).Div(oldest).Mul(hundred)
			snap.PctChangeOverWindow = &pct
		}
	}

	return snap
}

// DisplayTable returns the descending series with a daily_change column: each
// row's change relative to the chronologically preceding record. The earliest
// record has no predecessor, so its change stays nil. The input series is
// never modified.
func (s *Service) DisplayTable(series models.DebtSeries) []models.DisplayRow {
	rows := make([]models.DisplayRow, len(series))
	for i, r := range series {
		rows[i] = models.DisplayRow{Date: r.Date, TotalDebt: r.TotalDebt}
		if i+1 < len(series) {
			change := r.TotalDebt.Sub(series[i+1].TotalDebt)
			rows[i].DailyChange = &change
		}
	}
	return rows
}
