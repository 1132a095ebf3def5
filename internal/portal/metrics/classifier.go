package metrics

import (
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/shopspring/decimal"
)

var (
	atRiskKPIThreshold = decimal.NewFromInt(60)
	delayedGap         = decimal.NewFromInt(15)
	atRiskGap          = decimal.NewFromInt(5)
)

// ShouldBeAtRisk is the advisory risk prediction: more than half the planned
// duration has elapsed while KPI achievement is still below 60%. It never
// mutates stored status and ignores projects already COMPLETE or DELAYED.
// A non-positive planned duration (malformed dates) degrades to false.
func ShouldBeAtRisk(p *entity.Project, today time.Time) bool {
	if p.Status == entity.ProjectStatusComplete || p.Status == entity.ProjectStatusDelayed {
		return false
	}

	totalDuration := DaysBetween(p.StartDate, p.PlannedEnd)
	if totalDuration <= 0 {
		return false
	}
	elapsedDuration := DaysBetween(p.StartDate, today)

	// durationPercent > 50, kept in integer arithmetic so the exact 50%
	// boundary stays false.
	if elapsedDuration*2 <= totalDuration {
		return false
	}

	return KPIAchievementPercent(p).LessThan(atRiskKPIThreshold)
}

// ExpectedProgress returns the schedule-implied progress percentage, capped
// at 100. The second return is false when the planned duration is
// non-positive and the expectation is undefined.
func ExpectedProgress(p *entity.Project, today time.Time) (decimal.Decimal, bool) {
	totalDuration := DaysBetween(p.StartDate, p.PlannedEnd)
	if totalDuration <= 0 {
		return decimal.Zero, false
	}
	elapsedDuration := DaysBetween(p.StartDate, today)

	expected := decimal.NewFromInt(int64(elapsedDuration)).
		Div(decimal.NewFromInt(int64(totalDuration))).
		Mul(hundred)
	if expected.GreaterThan(hundred) {
		return hundred, true
	}
	return expected, true
}

// RecomputeStatus derives a fresh lifecycle status from the gap between
// schedule-expected and stored progress:
//
//	gap > 15  → DELAYED
//	gap > 5   → AT_RISK
//	ShouldBeAtRisk → AT_RISK
//	otherwise → ON_TRACK
//
// Stored progress at or above 100 forces COMPLETE regardless of the gap.
// The caller persists the result (and sets ActualEnd when COMPLETE); this
// function only classifies.
func RecomputeStatus(p *entity.Project, today time.Time) string {
	if p.ProgressPercent.GreaterThanOrEqual(hundred) {
		return entity.ProjectStatusComplete
	}

	if expected, ok := ExpectedProgress(p, today); ok {
		gap := expected.Sub(p.ProgressPercent)
		if gap.GreaterThan(delayedGap) {
			return entity.ProjectStatusDelayed
		}
		if gap.GreaterThan(atRiskGap) {
			return entity.ProjectStatusAtRisk
		}
	}

	if ShouldBeAtRisk(p, today) {
		return entity.ProjectStatusAtRisk
	}
	return entity.ProjectStatusOnTrack
}
