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

// ExpenseHandler serves the expense record collection.
type ExpenseHandler struct{}

func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// Expense is the client-facing shape of an expense record.
type Expense struct {
	ID        string  `json:"id"`
	Date      *string `json:"date"`
	Vendor    string  `json:"vendor"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Service   string  `json:"service"`
	Amount    float64 `json:"amount"`
	Payment   string  `json:"payment"`
	Status    string  `json:"status"`
	Recurring string  `json:"recurring"`
	Notes     string  `json:"notes"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func expenseToExternal(row *models.ExpenseRecord) *Expense {
	if row == nil {
		return nil
	}
	return &Expense{
		ID:        row.ID,
		Date:      row.Date,
		Vendor:    row.Vendor,
		Category:  row.Category,
		Type:      row.Type,
		Service:   row.Service,
		Amount:    numValue(row.Amount),
		Payment:   row.Payment,
		Status:    row.Status,
		Recurring: row.Recurring,
		Notes:     row.Notes,
		CreatedAt: timeValue(row.CreatedAt),
		UpdatedAt: timeValue(row.UpdatedAt),
	}
}

func expenseToInternal(rec payload) models.ExpenseRecord {
	return models.ExpenseRecord{
		ID:        rec.id(),
		Date:      rec.date("date"),
		Vendor:    rec.str("vendor"),
		Category:  rec.str("category"),
		Type:      rec.str("type"),
		Service:   rec.str("service"),
		Amount:    nullFloat(rec.num("amount")),
		Payment:   rec.str("payment"),
		Status:    rec.str("status"),
		Recurring: rec.strDefault("No", "recurring"),
		Notes:     rec.str("notes"),
		UpdatedAt: time.Now().UTC(),
	}
}

var expenseUpdateColumns = []string{
	"date", "vendor", "category", "type", "service",
	"amount", "payment", "status", "recurring", "notes", "updated_at",
}

// List returns all expense records in insertion order.
// @Summary List expense records
// @Tags expenses
// @Produce json
// @Success 200 {object} Response{data=[]Expense}
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var rows []models.ExpenseRecord
	if err := database.DB.Order("created_at ASC").Find(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load expense records"))
		return
	}
	records := make([]*Expense, 0, len(rows))
	for i := range rows {
		records = append(records, expenseToExternal(&rows[i]))
	}
	Success(c, records)
}

// Create inserts one expense record, assigning an id when absent.
// @Summary Create an expense record
// @Tags expenses
// @Accept json
// @Produce json
// @Param record body Expense true "expense record, partial allowed"
// @Success 201 {object} Response{data=Expense}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var rec payload
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	row := expenseToInternal(rec)
	if row.ID == "" {
		row.ID = newRecordID()
	}
	row.CreatedAt = time.Now().UTC()

	if err := database.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "Record already exists")
			return
		}
		InternalError(c, SafeErrorMessage(err, "Failed to create expense record"))
		return
	}
	Created(c, expenseToExternal(&row))
}

// Replace handles PUT: array body replaces the collection, single object
// is upserted by id.
// @Summary Replace one expense record or the whole collection
// @Tags expenses
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/expenses [put]
func (h *ExpenseHandler) Replace(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if isJSONArray(raw) {
		h.replaceAll(c, raw)
		return
	}

	var rec payload
	if err := json.Unmarshal(raw, &rec); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	row := expenseToInternal(rec)
	if row.ID == "" {
		row.ID = newRecordID()
	}
	row.CreatedAt = time.Now().UTC()

	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(expenseUpdateColumns),
	}).Create(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to save expense record"))
		return
	}
	database.DB.First(&row, "id = ?", row.ID)
	Success(c, expenseToExternal(&row))
}

// replaceAll substitutes the entire collection. Delete and insert are not
// one transaction; see the income handler for the trade-off.
func (h *ExpenseHandler) replaceAll(c *gin.Context, raw []byte) {
	var records []payload
	if err := json.Unmarshal(raw, &records); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var ids []string
	if err := database.DB.Model(&models.ExpenseRecord{}).Pluck("id", &ids).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to read expense records"))
		return
	}
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Delete(&models.ExpenseRecord{}).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "Failed to clear expense records"))
			return
		}
	}
	if len(records) > 0 {
		rows := make([]models.ExpenseRecord, 0, len(records))
		for _, rec := range records {
			row := expenseToInternal(rec)
			if row.ID == "" {
				row.ID = newRecordID()
			}
			row.CreatedAt = rec.createdAt()
			rows = append(rows, row)
		}
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&rows).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "Failed to save expense records"))
			return
		}
	}
	Success(c, json.RawMessage(raw))
}

// Delete removes one record by the id query parameter.
// @Summary Delete an expense record
// @Tags expenses
// @Produce json
// @Param id query string true "record id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/expenses [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}
	if err := database.DB.Where("id = ?", id).Delete(&models.ExpenseRecord{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to delete expense record"))
		return
	}
	SuccessWithMessage(c, "Record deleted", nil)
}
