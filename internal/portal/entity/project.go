package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project 项目实体
type Project struct {
	ID           string  `json:"id" gorm:"primaryKey;size:32"`
	Name         string  `json:"name" gorm:"size:300;not null"`
	Description  string  `json:"description" gorm:"type:text"`
	SectorID     string  `json:"sector_id" gorm:"size:32;not null;index:idx_projects_sector_district"`
	DistrictID   string  `json:"district_id" gorm:"size:32;not null;index:idx_projects_sector_district"`
	ContractorID *string `json:"contractor_id" gorm:"size:32"`

	// Timeline
	StartDate  time.Time  `json:"start_date" gorm:"type:date;not null;index:idx_projects_timeline"`
	PlannedEnd time.Time  `json:"planned_end" gorm:"type:date;not null;index:idx_projects_timeline"`
	ActualEnd  *time.Time `json:"actual_end" gorm:"type:date"`

	// Status and progress. ProgressPercent 是独立存储的进度值，
	// 与KPI达成率分开跟踪，两者允许偏离。
	Status          string          `json:"status" gorm:"size:16;not null;default:ON_TRACK;index"`
	ProgressPercent decimal.Decimal `json:"progress_percent" gorm:"type:decimal(5,2);not null;default:0"`

	// Financial
	BudgetAllocated decimal.Decimal `json:"budget_allocated" gorm:"type:decimal(15,2);not null"`
	BudgetSpent     decimal.Decimal `json:"budget_spent" gorm:"type:decimal(15,2);not null;default:0"`

	// KPIs
	KPITarget   decimal.Decimal `json:"kpi_target" gorm:"type:decimal(10,2);not null"`
	KPIAchieved decimal.Decimal `json:"kpi_achieved" gorm:"type:decimal(10,2);not null;default:0"`
	KPIUnit     string          `json:"kpi_unit" gorm:"size:50;default:units"`

	// Location
	Latitude  *decimal.Decimal `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude *decimal.Decimal `json:"longitude" gorm:"type:decimal(10,7)"`

	CreatedBy string         `json:"created_by" gorm:"size:32;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// 关联
	Sector     *Sector     `json:"sector,omitempty" gorm:"foreignKey:SectorID"`
	District   *District   `json:"district,omitempty" gorm:"foreignKey:DistrictID"`
	Contractor *Contractor `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
	Creator    *User       `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectStatus 项目状态
const (
	ProjectStatusOnTrack  = "ON_TRACK"
	ProjectStatusAtRisk   = "AT_RISK"
	ProjectStatusDelayed  = "DELAYED"
	ProjectStatusComplete = "COMPLETE"
)

// ValidProjectStatus reports whether s is one of the four lifecycle states.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusOnTrack, ProjectStatusAtRisk, ProjectStatusDelayed, ProjectStatusComplete:
		return true
	}
	return false
}
