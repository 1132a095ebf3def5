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

// ProcurementService 采购服务
type ProcurementService struct {
	procurementRepo *repository.ProcurementRepository
	projectRepo     *repository.ProjectRepository
	contractorRepo  *repository.ContractorRepository
}

// NewProcurementService 创建采购服务
func NewProcurementService(
	procurementRepo *repository.ProcurementRepository,
	projectRepo *repository.ProjectRepository,
	contractorRepo *repository.ContractorRepository,
) *ProcurementService {
	return &ProcurementService{
		procurementRepo: procurementRepo,
		projectRepo:     projectRepo,
		contractorRepo:  contractorRepo,
	}
}

// CreateProcurementRequest 创建采购记录请求
type CreateProcurementRequest struct {
	ProjectID           string          `json:"project_id" binding:"required"`
	ContractorID        string          `json:"contractor_id" binding:"required"`
	TenderID            string          `json:"tender_id" binding:"required,max=100"`
	TenderTitle         string          `json:"tender_title" binding:"required,max=300"`
	TenderAmount        decimal.Decimal `json:"tender_amount" binding:"required"`
	AwardAmount         decimal.Decimal `json:"award_amount" binding:"required"`
	AwardDate           string          `json:"award_date" binding:"required"`
	TenderDocumentURL   string          `json:"tender_document_url"`
	BOQDocumentURL      string          `json:"boq_document_url"`
	ContractDocumentURL string          `json:"contract_document_url"`
	Notes               string          `json:"notes"`
}

// ProcurementDetail 采购记录及超支指标
type ProcurementDetail struct {
	entity.Procurement
	CostOverrunPercent decimal.Decimal `json:"cost_overrun_percent"`
	HasCostOverrun     bool            `json:"has_cost_overrun"`
}

// Create 创建采购记录
func (s *ProcurementService) Create(ctx context.Context, req *CreateProcurementRequest) (*entity.Procurement, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	if _, err := s.contractorRepo.FindByID(ctx, req.ContractorID); err != nil {
		return nil, fmt.Errorf("contractor not found: %w", err)
	}
	if req.TenderAmount.IsNegative() || req.AwardAmount.IsNegative() {
		return nil, fmt.Errorf("tender and award amounts must not be negative")
	}
	awardDate, err := time.Parse(dateLayout, req.AwardDate)
	if err != nil {
		return nil, fmt.Errorf("invalid award_date: %w", err)
	}

	now := time.Now()
	proc := &entity.Procurement{
		ID:                  uuid.New().String()[:32],
		ProjectID:           req.ProjectID,
		ContractorID:        req.ContractorID,
		TenderID:            req.TenderID,
		TenderTitle:         req.TenderTitle,
		TenderAmount:        req.TenderAmount,
		AwardAmount:         req.AwardAmount,
		AwardDate:           awardDate,
		TenderDocumentURL:   req.TenderDocumentURL,
		BOQDocumentURL:      req.BOQDocumentURL,
		ContractDocumentURL: req.ContractDocumentURL,
		IsActive:            true,
		Notes:               req.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.procurementRepo.Create(ctx, proc); err != nil {
		return nil, fmt.Errorf("create procurement: %w", err)
	}
	return proc, nil
}

// List 分页获取采购记录及超支指标
func (s *ProcurementService) List(ctx context.Context, page, pageSize int) ([]ProcurementDetail, int64, error) {
	procurements, total, err := s.procurementRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return withOverrun(procurements), total, nil
}

// ListByProject 获取项目的采购记录及超支指标
func (s *ProcurementService) ListByProject(ctx context.Context, projectID string) ([]ProcurementDetail, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	procurements, err := s.procurementRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return withOverrun(procurements), nil
}

func withOverrun(procurements []entity.Procurement) []ProcurementDetail {
	details := make([]ProcurementDetail, 0, len(procurements))
	for i := range procurements {
		details = append(details, ProcurementDetail{
			Procurement:        procurements[i],
			CostOverrunPercent: metrics.CostOverrunPercent(&procurements[i]),
			HasCostOverrun:     metrics.HasCostOverrun(&procurements[i]),
		})
	}
	return details
}
