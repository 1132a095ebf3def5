package metrics

import (
	"testing"
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
)

func riskProject(start, plannedEnd time.Time, status, kpiTarget, kpiAchieved string) *entity.Project {
	return &entity.Project{
		Status:      status,
		StartDate:   start,
		PlannedEnd:  plannedEnd,
		KPITarget:   dec(kpiTarget),
		KPIAchieved: dec(kpiAchieved),
	}
}

func TestShouldBeAtRisk(t *testing.T) {
	today := date(2026, time.July, 1)

	tests := []struct {
		name    string
		project *entity.Project
		want    bool
	}{
		{
			"behind on KPI past half duration",
			riskProject(today.AddDate(0, 0, -60), today.AddDate(0, 0, 40), entity.ProjectStatusOnTrack, "100", "30"),
			true,
		},
		{
			"exactly half duration elapsed stays false",
			riskProject(today.AddDate(0, 0, -50), today.AddDate(0, 0, 50), entity.ProjectStatusOnTrack, "100", "30"),
			false,
		},
		{
			"one day past half duration flips true",
			riskProject(today.AddDate(0, 0, -51), today.AddDate(0, 0, 49), entity.ProjectStatusOnTrack, "100", "30"),
			true,
		},
		{
			"kpi at 60 percent is safe",
			riskProject(today.AddDate(0, 0, -60), today.AddDate(0, 0, 40), entity.ProjectStatusOnTrack, "100", "60"),
			false,
		},
		{
			"kpi just below 60 percent",
			riskProject(today.AddDate(0, 0, -60), today.AddDate(0, 0, 40), entity.ProjectStatusOnTrack, "100", "59.99"),
			true,
		},
		{
			"completed projects ignored",
			riskProject(today.AddDate(0, 0, -60), today.AddDate(0, 0, 40), entity.ProjectStatusComplete, "100", "0"),
			false,
		},
		{
			"delayed projects ignored",
			riskProject(today.AddDate(0, 0, -60), today.AddDate(0, 0, 40), entity.ProjectStatusDelayed, "100", "0"),
			false,
		},
		{
			"at-risk status still evaluated",
			riskProject(today.AddDate(0, 0, -60), today.AddDate(0, 0, 40), entity.ProjectStatusAtRisk, "100", "30"),
			true,
		},
		{
			"non-positive duration degrades to false",
			riskProject(today, today, entity.ProjectStatusOnTrack, "100", "0"),
			false,
		},
		{
			"planned end before start degrades to false",
			riskProject(today.AddDate(0, 0, -10), today.AddDate(0, 0, -20), entity.ProjectStatusOnTrack, "100", "0"),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldBeAtRisk(tt.project, today); got != tt.want {
				t.Errorf("ShouldBeAtRisk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpectedProgress(t *testing.T) {
	today := date(2026, time.July, 1)

	p := riskProject(today.AddDate(0, 0, -25), today.AddDate(0, 0, 75), entity.ProjectStatusOnTrack, "100", "0")
	expected, ok := ExpectedProgress(p, today)
	if !ok || !expected.Equal(dec("25")) {
		t.Errorf("ExpectedProgress() = %s, %v; want 25, true", expected, ok)
	}

	// Elapsed beyond the planned window caps at 100.
	p = riskProject(today.AddDate(0, 0, -200), today.AddDate(0, 0, -100), entity.ProjectStatusOnTrack, "100", "0")
	expected, ok = ExpectedProgress(p, today)
	if !ok || !expected.Equal(dec("100")) {
		t.Errorf("ExpectedProgress() past end = %s, %v; want 100, true", expected, ok)
	}

	// Undefined for malformed dates.
	p = riskProject(today, today, entity.ProjectStatusOnTrack, "100", "0")
	if _, ok = ExpectedProgress(p, today); ok {
		t.Error("zero duration must report expected progress as undefined")
	}
}

func TestRecomputeStatus(t *testing.T) {
	today := date(2026, time.July, 1)

	tests := []struct {
		name    string
		project *entity.Project
		want    string
	}{
		{
			"full progress forces complete",
			&entity.Project{
				Status:          entity.ProjectStatusOnTrack,
				StartDate:       today.AddDate(0, 0, -100),
				PlannedEnd:      today.AddDate(0, 0, 100),
				ProgressPercent: dec("100"),
				KPITarget:       dec("100"),
			},
			entity.ProjectStatusComplete,
		},
		{
			"year-long project at 90 percent on deadline day",
			&entity.Project{
				Status:          entity.ProjectStatusOnTrack,
				StartDate:       today.AddDate(0, 0, -365),
				PlannedEnd:      today,
				ProgressPercent: dec("90"),
				KPITarget:       dec("100"),
				KPIAchieved:     dec("90"),
			},
			entity.ProjectStatusAtRisk, // expected 100, gap 10
		},
		{
			"large gap is delayed",
			&entity.Project{
				Status:          entity.ProjectStatusOnTrack,
				StartDate:       today.AddDate(0, 0, -80),
				PlannedEnd:      today.AddDate(0, 0, 20),
				ProgressPercent: dec("50"), // expected 80, gap 30
				KPITarget:       dec("100"),
				KPIAchieved:     dec("50"),
			},
			entity.ProjectStatusDelayed,
		},
		{
			"small gap but KPI pace flags at risk",
			&entity.Project{
				Status:          entity.ProjectStatusOnTrack,
				StartDate:       today.AddDate(0, 0, -60),
				PlannedEnd:      today.AddDate(0, 0, 40),
				ProgressPercent: dec("58"), // expected 60, gap 2
				KPITarget:       dec("100"),
				KPIAchieved:     dec("30"),
			},
			entity.ProjectStatusAtRisk,
		},
		{
			"on schedule and on KPI",
			&entity.Project{
				Status:          entity.ProjectStatusOnTrack,
				StartDate:       today.AddDate(0, 0, -60),
				PlannedEnd:      today.AddDate(0, 0, 40),
				ProgressPercent: dec("58"),
				KPITarget:       dec("100"),
				KPIAchieved:     dec("70"),
			},
			entity.ProjectStatusOnTrack,
		},
		{
			"malformed duration skips gap and risk checks",
			&entity.Project{
				Status:          entity.ProjectStatusOnTrack,
				StartDate:       today,
				PlannedEnd:      today.AddDate(0, 0, -10),
				ProgressPercent: dec("10"),
				KPITarget:       dec("100"),
			},
			entity.ProjectStatusOnTrack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecomputeStatus(tt.project, today); got != tt.want {
				t.Errorf("RecomputeStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}
