package models

import (
	"database/sql"
	"time"
)

// IncomeRecord is the storage row for one income entry. Identifiers are
// caller-supplied or wall-clock strings; timestamps are stamped by the
// handlers, not by gorm.
type IncomeRecord struct {
	ID           string          `gorm:"primaryKey;size:64"`
	Date         *string         `gorm:"size:32"`
	ClientName   string          `gorm:"size:255"`
	ServiceType  string          `gorm:"size:255"`
	PricingModel string          `gorm:"size:255"`
	Gross        sql.NullFloat64 `gorm:"type:decimal(12,2)"`
	Net          sql.NullFloat64 `gorm:"type:decimal(12,2)"`
	PaymentMode  string          `gorm:"size:100"`
	Status       string          `gorm:"size:100"`
	RefID        string          `gorm:"column:ref_id;size:100"`
	Notes        string          `gorm:"type:text"`
	CreatedAt    time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime:false"`
}

func (IncomeRecord) TableName() string {
	return "income_records"
}
