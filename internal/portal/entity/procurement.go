package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procurement 采购/招标记录实体
type Procurement struct {
	ID           string          `json:"id" gorm:"primaryKey;size:32"`
	ProjectID    string          `json:"project_id" gorm:"size:32;not null;index"`
	ContractorID string          `json:"contractor_id" gorm:"size:32;not null"`
	TenderID     string          `json:"tender_id" gorm:"size:100;not null;uniqueIndex"`
	TenderTitle  string          `json:"tender_title" gorm:"size:300;not null"`
	TenderAmount decimal.Decimal `json:"tender_amount" gorm:"type:decimal(15,2);not null"`
	AwardAmount  decimal.Decimal `json:"award_amount" gorm:"type:decimal(15,2);not null"`
	AwardDate    time.Time       `json:"award_date" gorm:"type:date;not null;index"`

	// 文档链接
	TenderDocumentURL   string `json:"tender_document_url" gorm:"size:512"`
	BOQDocumentURL      string `json:"boq_document_url" gorm:"size:512"`
	ContractDocumentURL string `json:"contract_document_url" gorm:"size:512"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Project    *Project    `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Contractor *Contractor `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
}

func (Procurement) TableName() string {
	return "procurements"
}
