package metrics

import (
	"testing"
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBudgetUtilizationPercent(t *testing.T) {
	tests := []struct {
		name      string
		allocated string
		spent     string
		want      string
	}{
		{"typical", "10000000", "2000000", "20"},
		{"zero allocation ignores spent", "0", "500000", "0"},
		{"zero allocation zero spent", "0", "0", "0"},
		{"overrun not clamped", "1000000", "1200000", "120"},
		{"rounds half up", "800", "1", "0.13"},
		{"repeating fraction", "3", "1", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &entity.Project{
				BudgetAllocated: dec(tt.allocated),
				BudgetSpent:     dec(tt.spent),
			}
			got := BudgetUtilizationPercent(p)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("BudgetUtilizationPercent() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKPIAchievementPercent(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		achieved string
		want     string
	}{
		{"typical", "100", "20", "20"},
		{"zero target", "0", "42", "0"},
		{"exceeds target not clamped", "50", "60", "120"},
		{"fractional", "150", "100", "66.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &entity.Project{
				KPITarget:   dec(tt.target),
				KPIAchieved: dec(tt.achieved),
			}
			got := KPIAchievementPercent(p)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("KPIAchievementPercent() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	today := date(2026, time.March, 10)

	tests := []struct {
		name       string
		status     string
		plannedEnd time.Time
		want       int
	}{
		{"future deadline", entity.ProjectStatusOnTrack, date(2026, time.March, 25), 15},
		{"deadline today", entity.ProjectStatusOnTrack, today, 0},
		{"past deadline floors at zero", entity.ProjectStatusDelayed, date(2026, time.February, 1), 0},
		{"complete always zero", entity.ProjectStatusComplete, date(2026, time.December, 31), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &entity.Project{Status: tt.status, PlannedEnd: tt.plannedEnd}
			if got := DaysRemaining(p, today); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsDelayed(t *testing.T) {
	today := date(2026, time.March, 10)

	// Planned end 50 days ago, started 200 days ago, still DELAYED.
	p := &entity.Project{
		Status:     entity.ProjectStatusDelayed,
		StartDate:  today.AddDate(0, 0, -200),
		PlannedEnd: today.AddDate(0, 0, -50),
	}
	if !IsDelayed(p, today) {
		t.Error("expected project past planned end to be delayed")
	}

	p.Status = entity.ProjectStatusComplete
	if IsDelayed(p, today) {
		t.Error("completed project must never report delayed")
	}

	p.Status = entity.ProjectStatusOnTrack
	p.PlannedEnd = today
	if IsDelayed(p, today) {
		t.Error("planned end today is not yet delayed")
	}
}

func TestContractorCompletionRate(t *testing.T) {
	c := &entity.Contractor{TotalProjects: 0, CompletedProjects: 0}
	if got := ContractorCompletionRate(c); !got.IsZero() {
		t.Errorf("zero projects must yield zero rate, got %s", got)
	}

	c = &entity.Contractor{TotalProjects: 10, CompletedProjects: 7}
	if got := ContractorCompletionRate(c); !got.Equal(dec("70")) {
		t.Errorf("ContractorCompletionRate() = %s, want 70", got)
	}

	c = &entity.Contractor{TotalProjects: 3, CompletedProjects: 2}
	if got := ContractorCompletionRate(c); !got.Equal(dec("66.67")) {
		t.Errorf("ContractorCompletionRate() = %s, want 66.67", got)
	}
}

func TestCostOverrun(t *testing.T) {
	proc := &entity.Procurement{
		TenderAmount: dec("1000000"),
		AwardAmount:  dec("1150000"),
	}
	if got := CostOverrunPercent(proc); !got.Equal(dec("15")) {
		t.Errorf("CostOverrunPercent() = %s, want 15", got)
	}
	if !HasCostOverrun(proc) {
		t.Error("award above tender must report overrun")
	}

	proc = &entity.Procurement{TenderAmount: dec("0"), AwardAmount: dec("999")}
	if got := CostOverrunPercent(proc); !got.IsZero() {
		t.Errorf("zero tender must yield zero overrun, got %s", got)
	}

	proc = &entity.Procurement{TenderAmount: dec("1000000"), AwardAmount: dec("900000")}
	if got := CostOverrunPercent(proc); !got.Equal(dec("-10")) {
		t.Errorf("under-run should be negative, got %s", got)
	}
	if HasCostOverrun(proc) {
		t.Error("award below tender is not an overrun")
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	today := date(2026, time.June, 1)
	p := &entity.Project{
		Status:          entity.ProjectStatusOnTrack,
		StartDate:       date(2026, time.January, 1),
		PlannedEnd:      date(2026, time.December, 31),
		ProgressPercent: dec("40"),
		BudgetAllocated: dec("5000000"),
		BudgetSpent:     dec("1234567.89"),
		KPITarget:       dec("300"),
		KPIAchieved:     dec("120"),
	}

	first := Compute(p, today)
	second := Compute(p, today)

	if !first.BudgetUtilizationPercent.Equal(second.BudgetUtilizationPercent) ||
		!first.KPIAchievementPercent.Equal(second.KPIAchievementPercent) ||
		first.DaysRemaining != second.DaysRemaining ||
		first.IsDelayed != second.IsDelayed ||
		first.ShouldBeAtRisk != second.ShouldBeAtRisk {
		t.Errorf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(date(2026, time.March, 1), date(2026, time.March, 11)); got != 10 {
		t.Errorf("DaysBetween forward = %d, want 10", got)
	}
	if got := DaysBetween(date(2026, time.March, 11), date(2026, time.March, 1)); got != -10 {
		t.Errorf("DaysBetween backward = %d, want -10", got)
	}
	// Time-of-day must not leak into the day count.
	a := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween across midnight = %d, want 1", got)
	}
}
