package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIHistory KPI历史快照，每个项目每天最多一条
type KPIHistory struct {
	ID          string          `json:"id" gorm:"primaryKey;size:32"`
	ProjectID   string          `json:"project_id" gorm:"size:32;not null;uniqueIndex:idx_kpi_history_project_date"`
	Date        time.Time       `json:"date" gorm:"type:date;not null;uniqueIndex:idx_kpi_history_project_date"`
	KPIAchieved decimal.Decimal `json:"kpi_achieved" gorm:"type:decimal(10,2);not null"`
	Notes       string          `json:"notes" gorm:"type:text"`
	RecordedBy  string          `json:"recorded_by" gorm:"size:32"`
	CreatedAt   time.Time       `json:"created_at"`

	// 关联
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (KPIHistory) TableName() string {
	return "kpi_history"
}
