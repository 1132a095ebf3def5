package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/metrics"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/shopspring/decimal"
)

// DashboardService 门户看板服务
type DashboardService struct {
	projectRepo  *repository.ProjectRepository
	sectorRepo   *repository.SectorRepository
	districtRepo *repository.DistrictRepository
	feedbackRepo *repository.FeedbackRepository
}

// NewDashboardService 创建看板服务
func NewDashboardService(
	projectRepo *repository.ProjectRepository,
	sectorRepo *repository.SectorRepository,
	districtRepo *repository.DistrictRepository,
	feedbackRepo *repository.FeedbackRepository,
) *DashboardService {
	return &DashboardService{
		projectRepo:  projectRepo,
		sectorRepo:   sectorRepo,
		districtRepo: districtRepo,
		feedbackRepo: feedbackRepo,
	}
}

// GetPortalStats 获取门户总览统计
func (s *DashboardService) GetPortalStats(ctx context.Context) (*metrics.PortalStats, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	stats := metrics.ComputePortalStats(projects)
	return &stats, nil
}

// FinanceSummary 按板块和行政区分组的预算汇总
type FinanceSummary struct {
	BySector   []metrics.FinanceSummaryRow `json:"by_sector"`
	ByDistrict []metrics.FinanceSummaryRow `json:"by_district"`
}

// GetFinanceSummary 获取预算汇总。没有项目的板块和行政区照常输出零值行。
func (s *DashboardService) GetFinanceSummary(ctx context.Context) (*FinanceSummary, error) {
	sectors, err := s.sectorRepo.ListWithProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	districts, err := s.districtRepo.ListWithProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}

	summary := &FinanceSummary{
		BySector:   make([]metrics.FinanceSummaryRow, 0, len(sectors)),
		ByDistrict: make([]metrics.FinanceSummaryRow, 0, len(districts)),
	}
	for i := range sectors {
		summary.BySector = append(summary.BySector, metrics.SummarizeGroup(sectors[i].Name, sectors[i].Projects))
	}
	for i := range districts {
		summary.ByDistrict = append(summary.ByDistrict, metrics.SummarizeGroup(districts[i].Name, districts[i].Projects))
	}
	return summary, nil
}

// MapPoint 地图点位
type MapPoint struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	Sector          string          `json:"sector"`
	District        string          `json:"district"`
	Latitude        decimal.Decimal `json:"latitude"`
	Longitude       decimal.Decimal `json:"longitude"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
}

// GetMapData 获取带坐标项目的地图点位
func (s *DashboardService) GetMapData(ctx context.Context) ([]MapPoint, error) {
	projects, err := s.projectRepo.ListWithLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects with location: %w", err)
	}

	points := make([]MapPoint, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		point := MapPoint{
			ID:              p.ID,
			Name:            p.Name,
			Status:          p.Status,
			Latitude:        *p.Latitude,
			Longitude:       *p.Longitude,
			ProgressPercent: p.ProgressPercent,
		}
		if p.Sector != nil {
			point.Sector = p.Sector.Name
		}
		if p.District != nil {
			point.District = p.District.Name
		}
		points = append(points, point)
	}
	return points, nil
}

// ActivityItem 动态条目
type ActivityItem struct {
	Type      string    `json:"type"`
	ProjectID string    `json:"project_id"`
	Project   string    `json:"project"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// GetRecentActivity 获取最近动态：新建项目与公开反馈
func (s *DashboardService) GetRecentActivity(ctx context.Context, days, limit int) ([]ActivityItem, error) {
	since := time.Now().AddDate(0, 0, -days)

	projects, err := s.projectRepo.ListCreatedSince(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent projects: %w", err)
	}
	feedback, err := s.feedbackRepo.ListRecentPublic(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent feedback: %w", err)
	}

	items := make([]ActivityItem, 0, len(projects)+len(feedback))
	for i := range projects {
		p := &projects[i]
		items = append(items, ActivityItem{
			Type:      "project_created",
			ProjectID: p.ID,
			Project:   p.Name,
			Detail:    fmt.Sprintf("New project in %s", districtName(p)),
			Timestamp: p.CreatedAt,
		})
	}
	for i := range feedback {
		fb := &feedback[i]
		item := ActivityItem{
			Type:      "feedback",
			ProjectID: fb.ProjectID,
			Detail:    fmt.Sprintf("Citizen feedback, rating %d/5", fb.Rating),
			Timestamp: fb.CreatedAt,
		}
		if fb.Project != nil {
			item.Project = fb.Project.Name
		}
		items = append(items, item)
	}

	// 按时间倒序
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func districtName(p *entity.Project) string {
	if p.District != nil {
		return p.District.Name
	}
	return "the province"
}
