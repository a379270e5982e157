package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// CashAccount is the storage row for one cash-account balance entry.
type CashAccount struct {
	ID          string          `gorm:"primaryKey;size:64"`
	Month       string          `gorm:"size:32"`
	AccountName string          `gorm:"size:255"`
	Category    string          `gorm:"size:100"`
	Institution string          `gorm:"size:255"`
	Balance     sql.NullFloat64 `gorm:"type:decimal(14,2)"`
	CreatedAt   time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime:false"`
}

func (CashAccount) TableName() string {
	return "cash_accounts"
}

// CashMovement is the singleton cash-movement snapshot, addressed by the
// fixed id 1 and fully overwritten on every write.
type CashMovement struct {
	ID        uint            `gorm:"primaryKey"`
	Data      json.RawMessage `gorm:"type:json"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false"`
}

func (CashMovement) TableName() string {
	return "cash_movement"
}
