package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/metrics"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/shopspring/decimal"
)

// SimulationService 演示数据推进服务。随机推进未完成项目的进度、
// KPI与支出，并重算状态，用于演示环境模拟实时更新。
type SimulationService struct {
	projectRepo *repository.ProjectRepository
	kpiRepo     *repository.KPIHistoryRepository
}

// NewSimulationService 创建演示推进服务
func NewSimulationService(projectRepo *repository.ProjectRepository, kpiRepo *repository.KPIHistoryRepository) *SimulationService {
	return &SimulationService{projectRepo: projectRepo, kpiRepo: kpiRepo}
}

// AdvanceResult 单轮推进结果
type AdvanceResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

// AdvanceProjects 推进最多count个未完成项目；count<=0时推进全部。
// 尚未开工的项目跳过。每次推进写入当日KPI历史快照。
func (s *SimulationService) AdvanceProjects(ctx context.Context, count int, today time.Time) (*AdvanceResult, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active projects: %w", err)
	}

	if count > 0 && count < len(projects) {
		rand.Shuffle(len(projects), func(i, j int) {
			projects[i], projects[j] = projects[j], projects[i]
		})
		projects = projects[:count]
	}

	result := &AdvanceResult{Scanned: len(projects)}
	for i := range projects {
		updated, err := s.advance(ctx, &projects[i], today)
		if err != nil {
			return result, err
		}
		if updated {
			result.Updated++
		}
	}
	return result, nil
}

func (s *SimulationService) advance(ctx context.Context, project *entity.Project, today time.Time) (bool, error) {
	if project.StartDate.After(today) {
		return false, nil
	}

	expected, ok := metrics.ExpectedProgress(project, today)
	if !ok {
		return false, nil
	}

	// 单轮最多推进5%，且不越过计划进度太多
	current, _ := project.ProgressPercent.Float64()
	headroom, _ := expected.Sub(project.ProgressPercent).Float64()
	maxIncrease := headroom + 2.0
	if maxIncrease > 5.0 {
		maxIncrease = 5.0
	}
	if maxIncrease <= 0 {
		return false, nil
	}

	newProgress := current + rand.Float64()*maxIncrease
	if newProgress > 100 {
		newProgress = 100
	}
	project.ProgressPercent = decimal.NewFromFloat(newProgress).Round(2)

	// KPI达成按进度等比推进
	ratio := project.ProgressPercent.Div(decimal.NewFromInt(100))
	project.KPIAchieved = project.KPITarget.Mul(ratio).Round(2)

	// 支出按进度推进，带±10%扰动，封顶在预算的120%
	variance := decimal.NewFromFloat(0.9 + rand.Float64()*0.2)
	spent := project.BudgetAllocated.Mul(ratio).Mul(variance).Round(2)
	budgetCap := project.BudgetAllocated.Mul(decimal.NewFromFloat(1.2))
	if spent.GreaterThan(budgetCap) {
		spent = budgetCap.Round(2)
	}
	project.BudgetSpent = spent

	project.Status = metrics.RecomputeStatus(project, today)
	if project.Status == entity.ProjectStatusComplete {
		end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		project.ActualEnd = &end
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}

	snapshot := &entity.KPIHistory{
		ID:          uuid.New().String()[:32],
		ProjectID:   project.ID,
		Date:        time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
		KPIAchieved: project.KPIAchieved,
		Notes:       fmt.Sprintf("Automated update - Progress: %s%%", project.ProgressPercent.StringFixed(1)),
		CreatedAt:   time.Now(),
	}
	if err := s.kpiRepo.Record(ctx, snapshot); err != nil {
		return false, fmt.Errorf("record kpi snapshot: %w", err)
	}

	return true, nil
}
