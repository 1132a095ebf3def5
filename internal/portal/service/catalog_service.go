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

// CatalogService 基础目录服务：板块、行政区、承建商
type CatalogService struct {
	sectorRepo     *repository.SectorRepository
	districtRepo   *repository.DistrictRepository
	contractorRepo *repository.ContractorRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	sectorRepo *repository.SectorRepository,
	districtRepo *repository.DistrictRepository,
	contractorRepo *repository.ContractorRepository,
) *CatalogService {
	return &CatalogService{
		sectorRepo:     sectorRepo,
		districtRepo:   districtRepo,
		contractorRepo: contractorRepo,
	}
}

// SectorSummary 板块及项目数
type SectorSummary struct {
	entity.Sector
	ProjectCount int `json:"project_count"`
}

// ListSectors 获取全部板块及项目数
func (s *CatalogService) ListSectors(ctx context.Context) ([]SectorSummary, error) {
	sectors, err := s.sectorRepo.ListWithProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	summaries := make([]SectorSummary, 0, len(sectors))
	for i := range sectors {
		count := len(sectors[i].Projects)
		sectors[i].Projects = nil
		summaries = append(summaries, SectorSummary{Sector: sectors[i], ProjectCount: count})
	}
	return summaries, nil
}

// DistrictSummary 行政区及项目数
type DistrictSummary struct {
	entity.District
	ProjectCount int `json:"project_count"`
}

// ListDistricts 获取全部行政区及项目数
func (s *CatalogService) ListDistricts(ctx context.Context) ([]DistrictSummary, error) {
	districts, err := s.districtRepo.ListWithProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	summaries := make([]DistrictSummary, 0, len(districts))
	for i := range districts {
		count := len(districts[i].Projects)
		districts[i].Projects = nil
		summaries = append(summaries, DistrictSummary{District: districts[i], ProjectCount: count})
	}
	return summaries, nil
}

// ContractorSummary 承建商及完工率
type ContractorSummary struct {
	entity.Contractor
	CompletionRate decimal.Decimal `json:"completion_rate"`
}

// ListContractors 获取在册承建商及完工率
func (s *CatalogService) ListContractors(ctx context.Context) ([]ContractorSummary, error) {
	contractors, err := s.contractorRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	summaries := make([]ContractorSummary, 0, len(contractors))
	for i := range contractors {
		summaries = append(summaries, ContractorSummary{
			Contractor:     contractors[i],
			CompletionRate: metrics.ContractorCompletionRate(&contractors[i]),
		})
	}
	return summaries, nil
}

// CreateContractorRequest 创建承建商请求
type CreateContractorRequest struct {
	Name               string          `json:"name" binding:"required,max=200"`
	RegistrationNumber string          `json:"registration_number" binding:"required,max=100"`
	ContactPerson      string          `json:"contact_person"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	Address            string          `json:"address"`
	Rating             decimal.Decimal `json:"rating"`
}

// CreateContractor 创建承建商
func (s *CatalogService) CreateContractor(ctx context.Context, req *CreateContractorRequest) (*entity.Contractor, error) {
	if req.Rating.IsNegative() || req.Rating.GreaterThan(decimal.NewFromInt(5)) {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}

	now := time.Now()
	contractor := &entity.Contractor{
		ID:                 uuid.New().String()[:32],
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		ContactPerson:      req.ContactPerson,
		Phone:              req.Phone,
		Email:              req.Email,
		Address:            req.Address,
		Rating:             req.Rating,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.contractorRepo.Create(ctx, contractor); err != nil {
		return nil, fmt.Errorf("create contractor: %w", err)
	}
	return contractor, nil
}
