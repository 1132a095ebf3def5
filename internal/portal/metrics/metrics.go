// Package metrics computes the derived figures of the portal: budget and KPI
// percentages, schedule state and cross entity rollups. Everything here is a
// pure function over an entity snapshot plus a caller supplied "today" date.
// Nothing is persisted and no clock is read internally.
package metrics

import (
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole*100 rounded half-up to 2 decimal places,
// or zero when whole is zero. Every percentage in this package goes
// through this guard.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// DaysBetween returns whole calendar days from a to b, negative when b
// precedes a. Both arguments are truncated to their date.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// BudgetUtilizationPercent returns spent/allocated as a percentage. Not
// clamped: a value above 100 signals overrun. Zero allocation yields zero.
func BudgetUtilizationPercent(p *entity.Project) decimal.Decimal {
	return percentOf(p.BudgetSpent, p.BudgetAllocated)
}

// KPIAchievementPercent returns achieved/target as a percentage. Not
// clamped. Zero target yields zero.
func KPIAchievementPercent(p *entity.Project) decimal.Decimal {
	return percentOf(p.KPIAchieved, p.KPITarget)
}

// DaysRemaining returns days until the planned end date, never negative.
// Completed projects always report zero.
func DaysRemaining(p *entity.Project, today time.Time) int {
	if p.Status == entity.ProjectStatusComplete {
		return 0
	}
	remaining := DaysBetween(today, p.PlannedEnd)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsDelayed reports whether the planned end date has passed without the
// project reaching COMPLETE.
func IsDelayed(p *entity.Project, today time.Time) bool {
	return DaysBetween(p.PlannedEnd, today) > 0 && p.Status != entity.ProjectStatusComplete
}

// ContractorCompletionRate returns completed/total projects as a percentage
// for a contractor, zero when the contractor has no projects.
func ContractorCompletionRate(c *entity.Contractor) decimal.Decimal {
	if c.TotalProjects == 0 {
		return decimal.Zero
	}
	return percentOf(decimal.NewFromInt(int64(c.CompletedProjects)), decimal.NewFromInt(int64(c.TotalProjects)))
}

// CostOverrunPercent returns the percentage by which the award amount
// exceeds the tender amount, negative for under-runs, zero when the tender
// amount is zero.
func CostOverrunPercent(proc *entity.Procurement) decimal.Decimal {
	return percentOf(proc.AwardAmount.Sub(proc.TenderAmount), proc.TenderAmount)
}

// HasCostOverrun reports whether the award exceeded the tender.
func HasCostOverrun(proc *entity.Procurement) bool {
	return proc.AwardAmount.GreaterThan(proc.TenderAmount)
}

// ProjectMetrics 单项目派生指标快照，供序列化输出
type ProjectMetrics struct {
	BudgetUtilizationPercent decimal.Decimal `json:"budget_utilization_percent"`
	KPIAchievementPercent    decimal.Decimal `json:"kpi_achievement_percent"`
	DaysRemaining            int             `json:"days_remaining"`
	IsDelayed                bool            `json:"is_delayed"`
	ShouldBeAtRisk           bool            `json:"should_be_at_risk"`
}

// Compute evaluates every per-project derived metric against one snapshot.
func Compute(p *entity.Project, today time.Time) ProjectMetrics {
	return ProjectMetrics{
		BudgetUtilizationPercent: BudgetUtilizationPercent(p),
		KPIAchievementPercent:    KPIAchievementPercent(p),
		DaysRemaining:            DaysRemaining(p, today),
		IsDelayed:                IsDelayed(p, today),
		ShouldBeAtRisk:           ShouldBeAtRisk(p, today),
	}
}
