package models

import (
	"encoding/json"
	"time"
)

// BusinessConfig is the singleton business-configuration row (fixed id 1).
// Each JSON column is merged independently: a write only touches the
// columns present in the request.
type BusinessConfig struct {
	ID                uint            `gorm:"primaryKey"`
	Columns           json.RawMessage `gorm:"type:json"`
	BusinessData      json.RawMessage `gorm:"column:business_data;type:json"`
	DashboardExpenses json.RawMessage `gorm:"column:dashboard_expenses;type:json"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime:false"`
}

func (BusinessConfig) TableName() string {
	return "business_config"
}
