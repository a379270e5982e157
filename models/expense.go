package models

import (
	"database/sql"
	"time"
)

// ExpenseRecord is the storage row for one expense entry.
type ExpenseRecord struct {
	ID        string          `gorm:"primaryKey;size:64"`
	Date      *string         `gorm:"size:32"`
	Vendor    string          `gorm:"size:255"`
	Category  string          `gorm:"size:100"`
	Type      string          `gorm:"size:100"`
	Service   string          `gorm:"size:255"`
	Amount    sql.NullFloat64 `gorm:"type:decimal(12,2)"`
	Payment   string          `gorm:"size:100"`
	Status    string          `gorm:"size:100"`
	Recurring string          `gorm:"size:20"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false"`
}

func (ExpenseRecord) TableName() string {
	return "expense_records"
}
