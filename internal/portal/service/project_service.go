package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/metrics"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/shopspring/decimal"
)

// ProjectService 项目服务
type ProjectService struct {
	projectRepo    *repository.ProjectRepository
	sectorRepo     *repository.SectorRepository
	districtRepo   *repository.DistrictRepository
	contractorRepo *repository.ContractorRepository
	kpiRepo        *repository.KPIHistoryRepository
}

// NewProjectService 创建项目服务
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	sectorRepo *repository.SectorRepository,
	districtRepo *repository.DistrictRepository,
	contractorRepo *repository.ContractorRepository,
	kpiRepo *repository.KPIHistoryRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		sectorRepo:     sectorRepo,
		districtRepo:   districtRepo,
		contractorRepo: contractorRepo,
		kpiRepo:        kpiRepo,
	}
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name            string           `json:"name" binding:"required,max=300"`
	Description     string           `json:"description"`
	SectorID        string           `json:"sector_id" binding:"required"`
	DistrictID      string           `json:"district_id" binding:"required"`
	ContractorID    *string          `json:"contractor_id"`
	StartDate       string           `json:"start_date" binding:"required"`
	PlannedEnd      string           `json:"planned_end" binding:"required"`
	BudgetAllocated decimal.Decimal  `json:"budget_allocated" binding:"required"`
	KPITarget       decimal.Decimal  `json:"kpi_target" binding:"required"`
	KPIUnit         string           `json:"kpi_unit"`
	Latitude        *decimal.Decimal `json:"latitude"`
	Longitude       *decimal.Decimal `json:"longitude"`
}

// UpdateProjectRequest 更新项目请求，nil字段保持原值
type UpdateProjectRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	ContractorID    *string          `json:"contractor_id"`
	PlannedEnd      *string          `json:"planned_end"`
	Status          *string          `json:"status"`
	ProgressPercent *decimal.Decimal `json:"progress_percent"`
	BudgetSpent     *decimal.Decimal `json:"budget_spent"`
	KPIAchieved     *decimal.Decimal `json:"kpi_achieved"`
	Latitude        *decimal.Decimal `json:"latitude"`
	Longitude       *decimal.Decimal `json:"longitude"`
}

// ProjectDetail 项目及其派生指标
type ProjectDetail struct {
	entity.Project
	Metrics metrics.ProjectMetrics `json:"metrics"`
}

const dateLayout = "2006-01-02"

// Create 创建项目
func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest, userID string) (*entity.Project, error) {
	if _, err := s.sectorRepo.FindByID(ctx, req.SectorID); err != nil {
		return nil, fmt.Errorf("sector not found: %w", err)
	}
	if _, err := s.districtRepo.FindByID(ctx, req.DistrictID); err != nil {
		return nil, fmt.Errorf("district not found: %w", err)
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	plannedEnd, err := time.Parse(dateLayout, req.PlannedEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid planned_end: %w", err)
	}
	if !plannedEnd.After(startDate) {
		return nil, fmt.Errorf("planned_end must be after start_date")
	}
	if req.BudgetAllocated.IsNegative() || req.KPITarget.IsNegative() {
		return nil, fmt.Errorf("budget and kpi target must not be negative")
	}

	kpiUnit := req.KPIUnit
	if kpiUnit == "" {
		kpiUnit = "units"
	}

	now := time.Now()
	project := &entity.Project{
		ID:              uuid.New().String()[:32],
		Name:            req.Name,
		Description:     req.Description,
		SectorID:        req.SectorID,
		DistrictID:      req.DistrictID,
		StartDate:       startDate,
		PlannedEnd:      plannedEnd,
		Status:          entity.ProjectStatusOnTrack,
		ProgressPercent: decimal.Zero,
		BudgetAllocated: req.BudgetAllocated,
		BudgetSpent:     decimal.Zero,
		KPITarget:       req.KPITarget,
		KPIAchieved:     decimal.Zero,
		KPIUnit:         kpiUnit,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.ContractorID != nil && *req.ContractorID != "" {
		contractor, err := s.contractorRepo.FindByID(ctx, *req.ContractorID)
		if err != nil {
			return nil, fmt.Errorf("contractor not found: %w", err)
		}
		project.ContractorID = req.ContractorID
		contractor.TotalProjects++
		if err := s.contractorRepo.Update(ctx, contractor); err != nil {
			return nil, fmt.Errorf("update contractor: %w", err)
		}
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return project, nil
}

// Get 获取项目详情及派生指标
func (s *ProjectService) Get(ctx context.Context, id string, today time.Time) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{
		Project: *project,
		Metrics: metrics.Compute(project, today),
	}, nil
}

// List 分页获取项目列表及派生指标
func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}, today time.Time) ([]ProjectDetail, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	details := make([]ProjectDetail, 0, len(projects))
	for i := range projects {
		details = append(details, ProjectDetail{
			Project: projects[i],
			Metrics: metrics.Compute(&projects[i], today),
		})
	}
	return details, total, nil
}

// Update 更新项目
func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.PlannedEnd != nil {
		plannedEnd, err := time.Parse(dateLayout, *req.PlannedEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid planned_end: %w", err)
		}
		project.PlannedEnd = plannedEnd
	}
	if req.Status != nil {
		if !entity.ValidProjectStatus(*req.Status) {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
		project.Status = *req.Status
	}
	if req.ProgressPercent != nil {
		if req.ProgressPercent.IsNegative() {
			return nil, fmt.Errorf("progress_percent must not be negative")
		}
		project.ProgressPercent = *req.ProgressPercent
	}
	if req.BudgetSpent != nil {
		if req.BudgetSpent.IsNegative() {
			return nil, fmt.Errorf("budget_spent must not be negative")
		}
		project.BudgetSpent = *req.BudgetSpent
	}
	if req.KPIAchieved != nil {
		if req.KPIAchieved.IsNegative() {
			return nil, fmt.Errorf("kpi_achieved must not be negative")
		}
		project.KPIAchieved = *req.KPIAchieved
	}
	if req.Latitude != nil {
		project.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		project.Longitude = req.Longitude
	}

	if req.ContractorID != nil && *req.ContractorID != "" {
		if project.ContractorID == nil || *project.ContractorID != *req.ContractorID {
			contractor, err := s.contractorRepo.FindByID(ctx, *req.ContractorID)
			if err != nil {
				return nil, fmt.Errorf("contractor not found: %w", err)
			}
			contractor.TotalProjects++
			if err := s.contractorRepo.Update(ctx, contractor); err != nil {
				return nil, fmt.Errorf("update contractor: %w", err)
			}
			project.ContractorID = req.ContractorID
		}
	}

	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return project, nil
}

// Delete 软删除项目
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

// RecordKPIRequest 录入KPI请求
type RecordKPIRequest struct {
	KPIAchieved decimal.Decimal `json:"kpi_achieved" binding:"required"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
}

// RecordKPI 录入项目KPI快照并更新项目当前值。
// 同一项目同一天重复录入按覆盖处理。
func (s *ProjectService) RecordKPI(ctx context.Context, projectID string, req *RecordKPIRequest, userID string, today time.Time) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if req.KPIAchieved.IsNegative() {
		return nil, fmt.Errorf("kpi_achieved must not be negative")
	}

	date := today
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	snapshot := &entity.KPIHistory{
		ID:          uuid.New().String()[:32],
		ProjectID:   project.ID,
		Date:        date,
		KPIAchieved: req.KPIAchieved,
		Notes:       req.Notes,
		RecordedBy:  userID,
		CreatedAt:   time.Now(),
	}
	if err := s.kpiRepo.Record(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("record kpi: %w", err)
	}

	project.KPIAchieved = req.KPIAchieved
	project.UpdatedAt = time.Now()
	if err := s.applyStatus(ctx, project, today); err != nil {
		return nil, err
	}

	return project, nil
}

// KPIHistory 获取项目KPI历史
func (s *ProjectService) KPIHistory(ctx context.Context, projectID string) ([]entity.KPIHistory, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.kpiRepo.ListByProject(ctx, projectID)
}

// RecomputeStatus 重算单个项目的状态并持久化
func (s *ProjectService) RecomputeStatus(ctx context.Context, projectID string, today time.Time) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.applyStatus(ctx, project, today); err != nil {
		return nil, err
	}
	return project, nil
}

// RecomputeAll 重算全部未完成项目的状态，返回状态发生变化的数量
func (s *ProjectService) RecomputeAll(ctx context.Context, today time.Time) (int, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active projects: %w", err)
	}

	changed := 0
	for i := range projects {
		before := projects[i].Status
		if err := s.applyStatus(ctx, &projects[i], today); err != nil {
			return changed, err
		}
		if projects[i].Status != before {
			changed++
		}
	}
	return changed, nil
}

// applyStatus 重算状态并写回。进入COMPLETE时记录实际完成日期，
// 并累加承建商的完工计数。
func (s *ProjectService) applyStatus(ctx context.Context, project *entity.Project, today time.Time) error {
	before := project.Status
	project.Status = metrics.RecomputeStatus(project, today)

	if project.Status == entity.ProjectStatusComplete && before != entity.ProjectStatusComplete {
		end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		project.ActualEnd = &end
		if project.ContractorID != nil {
			contractor, err := s.contractorRepo.FindByID(ctx, *project.ContractorID)
			if err == nil {
				contractor.CompletedProjects++
				if err := s.contractorRepo.Update(ctx, contractor); err != nil {
					return fmt.Errorf("update contractor: %w", err)
				}
			}
		}
	}

	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}
