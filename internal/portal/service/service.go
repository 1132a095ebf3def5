package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/samidhothar/SafeProvinceMonitor/internal/config"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
)

// Services 服务集合
type Services struct {
	Auth        *AuthService
	Project     *ProjectService
	Dashboard   *DashboardService
	Catalog     *CatalogService
	Procurement *ProcurementService
	Feedback    *FeedbackService
	Export      *ExportService
	Simulation  *SimulationService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	projectSvc := NewProjectService(repos.Project, repos.Sector, repos.District, repos.Contractor, repos.KPIHistory)
	return &Services{
		Auth:        NewAuthService(repos.User, rdb, cfg),
		Project:     projectSvc,
		Dashboard:   NewDashboardService(repos.Project, repos.Sector, repos.District, repos.Feedback),
		Catalog:     NewCatalogService(repos.Sector, repos.District, repos.Contractor),
		Procurement: NewProcurementService(repos.Procurement, repos.Project, repos.Contractor),
		Feedback:    NewFeedbackService(repos.Feedback, repos.Project, rdb, cfg),
		Export:      NewExportService(repos.Project),
		Simulation:  NewSimulationService(repos.Project, repos.KPIHistory),
	}
}
