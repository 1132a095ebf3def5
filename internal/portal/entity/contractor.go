package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contractor 承建商实体
type Contractor struct {
	ID                 string          `json:"id" gorm:"primaryKey;size:32"`
	Name               string          `json:"name" gorm:"size:200;not null"`
	RegistrationNumber string          `json:"registration_number" gorm:"size:100;not null;uniqueIndex"`
	ContactPerson      string          `json:"contact_person" gorm:"size:100"`
	Phone              string          `json:"phone" gorm:"size:20"`
	Email              string          `json:"email" gorm:"size:254"`
	Address            string          `json:"address" gorm:"type:text"`
	Rating             decimal.Decimal `json:"rating" gorm:"type:decimal(3,2);not null;default:0"`
	TotalProjects      int             `json:"total_projects" gorm:"not null;default:0"`
	CompletedProjects  int             `json:"completed_projects" gorm:"not null;default:0"`
	IsActive           bool            `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// 关联
	Projects     []Project     `json:"projects,omitempty" gorm:"foreignKey:ContractorID"`
	Procurements []Procurement `json:"procurements,omitempty" gorm:"foreignKey:ContractorID"`
}

func (Contractor) TableName() string {
	return "contractors"
}
