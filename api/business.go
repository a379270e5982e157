package api

import (
	"encoding/json"
	"errors"
	"time"

	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// businessConfigID addresses the singleton configuration row.
const businessConfigID = 1

// defaultBusinessColumns is the column set returned before the first save.
var defaultBusinessColumns = json.RawMessage(`["Service A","Service B"]`)

// BusinessHandler serves the singleton business configuration blob.
type BusinessHandler struct{}

func NewBusinessHandler() *BusinessHandler {
	return &BusinessHandler{}
}

// BusinessConfig is the client-facing configuration shape.
type BusinessConfig struct {
	Columns           json.RawMessage `json:"columns"`
	BusinessData      json.RawMessage `json:"businessData"`
	DashboardExpenses json.RawMessage `json:"dashboardExpenses"`
}

// businessWrite carries a partial update; nil sub-fields were absent from
// the request and must stay untouched in storage.
type businessWrite struct {
	Columns           *json.RawMessage `json:"columns"`
	BusinessData      *json.RawMessage `json:"businessData"`
	DashboardExpenses *json.RawMessage `json:"dashboardExpenses"`
}

// Get returns the stored configuration, or the documented defaults when
// nothing has been saved yet.
// @Summary Read the business configuration
// @Tags business
// @Produce json
// @Success 200 {object} Response{data=BusinessConfig}
// @Router /api/business [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	var row models.BusinessConfig
	err := database.DB.First(&row, "id = ?", businessConfigID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		InternalError(c, SafeErrorMessage(err, "Failed to load business config"))
		return
	}

	cfg := BusinessConfig{
		Columns:           row.Columns,
		BusinessData:      row.BusinessData,
		DashboardExpenses: row.DashboardExpenses,
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = defaultBusinessColumns
	}
	if len(cfg.BusinessData) == 0 {
		cfg.BusinessData = json.RawMessage(`{}`)
	}
	if len(cfg.DashboardExpenses) == 0 {
		cfg.DashboardExpenses = json.RawMessage(`{}`)
	}
	Success(c, cfg)
}

// Save upserts the singleton row, overwriting only the sub-fields present
// in the request. POST and PUT are equivalent.
// @Summary Save the business configuration (partial merge)
// @Tags business
// @Accept json
// @Produce json
// @Param config body BusinessConfig true "any subset of the three sub-fields"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/business [put]
func (h *BusinessHandler) Save(c *gin.Context) {
	var req businessWrite
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	row := models.BusinessConfig{
		ID:        businessConfigID,
		UpdatedAt: time.Now().UTC(),
	}
	updates := []string{"updated_at"}
	if req.Columns != nil {
		row.Columns = *req.Columns
		updates = append(updates, "columns")
	}
	if req.BusinessData != nil {
		row.BusinessData = *req.BusinessData
		updates = append(updates, "business_data")
	}
	if req.DashboardExpenses != nil {
		row.DashboardExpenses = *req.DashboardExpenses
		updates = append(updates, "dashboard_expenses")
	}

	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to save business config"))
		return
	}
	SuccessWithMessage(c, "Business data saved", nil)
}
