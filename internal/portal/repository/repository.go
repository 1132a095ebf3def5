package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	User        *UserRepository
	Sector      *SectorRepository
	District    *DistrictRepository
	Contractor  *ContractorRepository
	Project     *ProjectRepository
	Procurement *ProcurementRepository
	KPIHistory  *KPIHistoryRepository
	Feedback    *FeedbackRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Sector:      NewSectorRepository(db),
		District:    NewDistrictRepository(db),
		Contractor:  NewContractorRepository(db),
		Project:     NewProjectRepository(db),
		Procurement: NewProcurementRepository(db),
		KPIHistory:  NewKPIHistoryRepository(db),
		Feedback:    NewFeedbackRepository(db),
	}
}
