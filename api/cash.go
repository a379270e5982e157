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

// cashMovementID addresses the singleton snapshot row.
const cashMovementID = 1

// CashHandler serves the cash-account collection and, behind
// ?type=movement, the singleton cash-movement snapshot.
type CashHandler struct{}

func NewCashHandler() *CashHandler {
	return &CashHandler{}
}

// CashAccount is the client-facing shape of a cash-account record.
type CashAccount struct {
	ID          string  `json:"id"`
	Month       string  `json:"month"`
	AccountName string  `json:"accountName"`
	Category    string  `json:"category"`
	Institution string  `json:"institution"`
	Balance     float64 `json:"balance"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func cashAccountToExternal(row *models.CashAccount) *CashAccount {
	if row == nil {
		return nil
	}
	return &CashAccount{
		ID:          row.ID,
		Month:       row.Month,
		AccountName: row.AccountName,
		Category:    row.Category,
		Institution: row.Institution,
		Balance:     numValue(row.Balance),
		CreatedAt:   timeValue(row.CreatedAt),
		UpdatedAt:   timeValue(row.UpdatedAt),
	}
}

func cashAccountToInternal(rec payload) models.CashAccount {
	return models.CashAccount{
		ID:          rec.id(),
		Month:       rec.str("month"),
		AccountName: rec.str("accountName", "account_name"),
		Category:    rec.str("category"),
		Institution: rec.str("institution"),
		Balance:     nullFloat(rec.num("balance")),
		UpdatedAt:   time.Now().UTC(),
	}
}

var cashUpdateColumns = []string{
	"month", "account_name", "category", "institution", "balance", "updated_at",
}

// movement reports whether the request targets the snapshot blob.
func movement(c *gin.Context) bool {
	return c.Query("type") == "movement"
}

// Get lists cash accounts, or returns the movement snapshot when
// ?type=movement is set.
// @Summary List cash accounts or read the cash-movement snapshot
// @Tags cash
// @Produce json
// @Param type query string false "set to movement for the snapshot blob"
// @Success 200 {object} Response
// @Router /api/cash [get]
func (h *CashHandler) Get(c *gin.Context) {
	if movement(c) {
		var row models.CashMovement
		err := database.DB.First(&row, "id = ?", cashMovementID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			InternalError(c, SafeErrorMessage(err, "Failed to load cash movement"))
			return
		}
		if len(row.Data) == 0 {
			Success(c, json.RawMessage("{}"))
			return
		}
		Success(c, row.Data)
		return
	}

	var rows []models.CashAccount
	if err := database.DB.Order("created_at ASC").Find(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load cash accounts"))
		return
	}
	records := make([]*CashAccount, 0, len(rows))
	for i := range rows {
		records = append(records, cashAccountToExternal(&rows[i]))
	}
	Success(c, records)
}

// Create inserts a cash account, or overwrites the movement snapshot when
// ?type=movement is set (POST and PUT are equivalent for the snapshot).
// @Summary Create a cash account or write the cash-movement snapshot
// @Tags cash
// @Accept json
// @Produce json
// @Success 201 {object} Response{data=CashAccount}
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/cash [post]
func (h *CashHandler) Create(c *gin.Context) {
	if movement(c) {
		h.writeMovement(c)
		return
	}

	var rec payload
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	row := cashAccountToInternal(rec)
	if row.ID == "" {
		row.ID = newRecordID()
	}
	row.CreatedAt = time.Now().UTC()

	if err := database.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "Record already exists")
			return
		}
		InternalError(c, SafeErrorMessage(err, "Failed to create cash account"))
		return
	}
	Created(c, cashAccountToExternal(&row))
}

// Replace handles PUT for both the account collection (single object or
// replace-all array) and the movement snapshot.
// @Summary Replace cash accounts or the cash-movement snapshot
// @Tags cash
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/cash [put]
func (h *CashHandler) Replace(c *gin.Context) {
	if movement(c) {
		h.writeMovement(c)
		return
	}

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
	row := cashAccountToInternal(rec)
	if row.ID == "" {
		row.ID = newRecordID()
	}
	row.CreatedAt = time.Now().UTC()

	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(cashUpdateColumns),
	}).Create(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to save cash account"))
		return
	}
	database.DB.First(&row, "id = ?", row.ID)
	Success(c, cashAccountToExternal(&row))
}

// replaceAll substitutes the account collection; same non-atomic
// delete-then-insert sequence as the other collections.
func (h *CashHandler) replaceAll(c *gin.Context, raw []byte) {
	var records []payload
	if err := json.Unmarshal(raw, &records); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var ids []string
	if err := database.DB.Model(&models.CashAccount{}).Pluck("id", &ids).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to read cash accounts"))
		return
	}
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Delete(&models.CashAccount{}).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "Failed to clear cash accounts"))
			return
		}
	}
	if len(records) > 0 {
		rows := make([]models.CashAccount, 0, len(records))
		for _, rec := range records {
			row := cashAccountToInternal(rec)
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
			InternalError(c, SafeErrorMessage(err, "Failed to save cash accounts"))
			return
		}
	}
	Success(c, json.RawMessage(raw))
}

// writeMovement fully overwrites the snapshot blob; absent fields are not
// preserved, unlike the business config.
func (h *CashHandler) writeMovement(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if !json.Valid(raw) {
		BadRequest(c, "Invalid request body")
		return
	}

	row := models.CashMovement{
		ID:        cashMovementID,
		Data:      json.RawMessage(raw),
		UpdatedAt: time.Now().UTC(),
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to save cash movement"))
		return
	}
	Success(c, json.RawMessage(raw))
}

// Delete removes one cash account by the id query parameter.
// @Summary Delete a cash account
// @Tags cash
// @Produce json
// @Param id query string true "record id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/cash [delete]
func (h *CashHandler) Delete(c *gin.Context) {
	if movement(c) {
		MethodNotAllowed(c)
		return
	}
	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}
	if err := database.DB.Where("id = ?", id).Delete(&models.CashAccount{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to delete cash account"))
		return
	}
	SuccessWithMessage(c, "Record deleted", nil)
}
