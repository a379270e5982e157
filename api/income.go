package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IncomeHandler serves the income record collection.
type IncomeHandler struct{}

func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// Income is the client-facing shape of an income record.
type Income struct {
	ID           string  `json:"id"`
	Date         *string `json:"date"`
	ClientName   string  `json:"clientName"`
	ServiceType  string  `json:"serviceType"`
	PricingModel string  `json:"pricingModel"`
	Gross        float64 `json:"gross"`
	Net          float64 `json:"net"`
	PaymentMode  string  `json:"paymentMode"`
	Status       string  `json:"status"`
	RefID        string  `json:"refId"`
	Notes        string  `json:"notes"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func incomeToExternal(row *models.IncomeRecord) *Income {
	if row == nil {
		return nil
	}
	return &Income{
		ID:           row.ID,
		Date:         row.Date,
		ClientName:   row.ClientName,
		ServiceType:  row.ServiceType,
		PricingModel: row.PricingModel,
		Gross:        numValue(row.Gross),
		Net:          numValue(row.Net),
		PaymentMode:  row.PaymentMode,
		Status:       row.Status,
		RefID:        row.RefID,
		Notes:        row.Notes,
		CreatedAt:    timeValue(row.CreatedAt),
		UpdatedAt:    timeValue(row.UpdatedAt),
	}
}

// incomeToInternal maps a request body to a storage row and stamps
// updated_at. created_at is the caller's responsibility.
func incomeToInternal(rec payload) models.IncomeRecord {
	return models.IncomeRecord{
		ID:           rec.id(),
		Date:         rec.date("date"),
		ClientName:   rec.str("clientName", "client_name"),
		ServiceType:  rec.str("serviceType", "service_type"),
		PricingModel: rec.str("pricingModel", "pricing_model"),
		Gross:        nullFloat(rec.num("gross")),
		Net:          nullFloat(rec.num("net")),
		PaymentMode:  rec.str("paymentMode", "payment_mode"),
		Status:       rec.str("status"),
		RefID:        rec.str("refId", "ref_id"),
		Notes:        rec.str("notes"),
		UpdatedAt:    time.Now().UTC(),
	}
}

// incomeUpdateColumns are the columns overwritten by an upsert on an
// existing id. created_at is deliberately absent so it survives updates.
var incomeUpdateColumns = []string{
	"date", "client_name", "service_type", "pricing_model",
	"gross", "net", "payment_mode", "status", "ref_id", "notes", "updated_at",
}

// List returns all income records in insertion order.
// @Summary List income records
// @Tags income
// @Produce json
// @Success 200 {object} Response{data=[]Income}
// @Router /api/income [get]
func (h *IncomeHandler) List(c *gin.Context) {
	var rows []models.IncomeRecord
	if err := database.DB.Order("created_at ASC").Find(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load income records"))
		return
	}
	records := make([]*Income, 0, len(rows))
	for i := range rows {
		records = append(records, incomeToExternal(&rows[i]))
	}
	Success(c, records)
}

// Create inserts one income record, assigning an id when absent.
// @Summary Create an income record
// @Tags income
// @Accept json
// @Produce json
// @Param record body Income true "income record, partial allowed"
// @Success 201 {object} Response{data=Income}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/income [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var rec payload
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	row := incomeToInternal(rec)
	if row.ID == "" {
		row.ID = newRecordID()
	}
	row.CreatedAt = time.Now().UTC()

	if err := database.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "Record already exists")
			return
		}
		InternalError(c, SafeErrorMessage(err, "Failed to create income record"))
		return
	}
	Created(c, incomeToExternal(&row))
}

// Replace handles PUT. An array body replaces the whole collection, a
// single object is upserted by id.
// @Summary Replace one income record or the whole collection
// @Tags income
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/income [put]
func (h *IncomeHandler) Replace(c *gin.Context) {
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
	row := incomeToInternal(rec)
	if row.ID == "" {
		row.ID = newRecordID()
	}
	row.CreatedAt = time.Now().UTC()

	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(incomeUpdateColumns),
	}).Create(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to save income record"))
		return
	}
	database.DB.First(&row, "id = ?", row.ID)
	Success(c, incomeToExternal(&row))
}

// replaceAll substitutes the entire collection with the payload. The
// delete and insert steps are not wrapped in a transaction: a failure in
// between leaves the collection empty. Best-effort full-state save, not
// incremental sync.
func (h *IncomeHandler) replaceAll(c *gin.Context, raw []byte) {
	var records []payload
	if err := json.Unmarshal(raw, &records); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var ids []string
	if err := database.DB.Model(&models.IncomeRecord{}).Pluck("id", &ids).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to read income records"))
		return
	}
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Delete(&models.IncomeRecord{}).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "Failed to clear income records"))
			return
		}
	}
	if len(records) > 0 {
		rows := make([]models.IncomeRecord, 0, len(records))
		for _, rec := range records {
			row := incomeToInternal(rec)
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
			InternalError(c, SafeErrorMessage(err, "Failed to save income records"))
			return
		}
	}
	// Callers get back exactly what they sent.
	Success(c, json.RawMessage(raw))
}

// Delete removes one record by the id query parameter. Deleting an
// unknown id still succeeds; no existence check is made.
// @Summary Delete an income record
// @Tags income
// @Produce json
// @Param id query string true "record id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/income [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}
	if err := database.DB.Where("id = ?", id).Delete(&models.IncomeRecord{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to delete income record"))
		return
	}
	SuccessWithMessage(c, "Record deleted", nil)
}

// isJSONArray reports whether the body holds a JSON array, which selects
// the bulk replace-all path on PUT.
func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
