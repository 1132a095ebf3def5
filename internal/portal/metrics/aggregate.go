package metrics

import (
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/shopspring/decimal"
)

// PortalStats 门户总览统计
type PortalStats struct {
	TotalProjects        int             `json:"total_projects"`
	CompletedProjects    int             `json:"completed_projects"`
	DelayedProjects      int             `json:"delayed_projects"`
	AtRiskProjects       int             `json:"at_risk_projects"`
	TotalBudgetAllocated decimal.Decimal `json:"total_budget_allocated"`
	TotalBudgetSpent     decimal.Decimal `json:"total_budget_spent"`
	AverageProgress      decimal.Decimal `json:"average_progress"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage"`
}

// ComputePortalStats rolls a set of project snapshots up into portal-wide
// counts and sums. An empty set yields all-zero stats.
func ComputePortalStats(projects []entity.Project) PortalStats {
	stats := PortalStats{
		TotalBudgetAllocated: decimal.Zero,
		TotalBudgetSpent:     decimal.Zero,
		AverageProgress:      decimal.Zero,
		CompletionPercentage: decimal.Zero,
	}

	progressSum := decimal.Zero
	for i := range projects {
		p := &projects[i]
		stats.TotalProjects++
		switch p.Status {
		case entity.ProjectStatusComplete:
			stats.CompletedProjects++
		case entity.ProjectStatusDelayed:
			stats.DelayedProjects++
		case entity.ProjectStatusAtRisk:
			stats.AtRiskProjects++
		}
		stats.TotalBudgetAllocated = stats.TotalBudgetAllocated.Add(p.BudgetAllocated)
		stats.TotalBudgetSpent = stats.TotalBudgetSpent.Add(p.BudgetSpent)
		progressSum = progressSum.Add(p.ProgressPercent)
	}

	if stats.TotalProjects > 0 {
		n := decimal.NewFromInt(int64(stats.TotalProjects))
		stats.AverageProgress = progressSum.Div(n).Round(2)
		stats.CompletionPercentage = percentOf(decimal.NewFromInt(int64(stats.CompletedProjects)), n)
	}

	return stats
}

// FinanceSummaryRow 单个板块/行政区的预算汇总行
type FinanceSummaryRow struct {
	Name                  string          `json:"name"`
	ProjectCount          int             `json:"project_count"`
	TotalAllocated        decimal.Decimal `json:"total_allocated"`
	TotalSpent            decimal.Decimal `json:"total_spent"`
	UtilizationPercentage decimal.Decimal `json:"utilization_percentage"`
}

// SummarizeGroup produces one finance-summary row for a named group of
// projects. Groups with no projects still produce a row with zero count,
// zero sums and zero utilization; callers must not drop empty groups.
func SummarizeGroup(name string, projects []entity.Project) FinanceSummaryRow {
	row := FinanceSummaryRow{
		Name:                  name,
		TotalAllocated:        decimal.Zero,
		TotalSpent:            decimal.Zero,
		UtilizationPercentage: decimal.Zero,
	}
	for i := range projects {
		row.ProjectCount++
		row.TotalAllocated = row.TotalAllocated.Add(projects[i].BudgetAllocated)
		row.TotalSpent = row.TotalSpent.Add(projects[i].BudgetSpent)
	}
	row.UtilizationPercentage = percentOf(row.TotalSpent, row.TotalAllocated)
	return row
}
