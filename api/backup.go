package api

import (
	"log"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// BackupHandler exports all records to the configured spreadsheet.
type BackupHandler struct {
	sheets   service.SheetWriter
	notifier *service.Notifier
	cfg      *config.SheetsConfig
}

// NewBackupHandler wires the handler with its collaborators. sheets may be
// nil when the backup destination is not configured.
func NewBackupHandler(sheets service.SheetWriter, notifier *service.Notifier, cfg *config.SheetsConfig) *BackupHandler {
	return &BackupHandler{sheets: sheets, notifier: notifier, cfg: cfg}
}

// Run pushes income, expenses and cash accounts to their tabs, each one a
// clear-then-write. The three pushes run concurrently; any failure fails
// the whole response, but tabs already written are not rolled back.
// @Summary Back up all records to Google Sheets
// @Tags backup
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Failure 503 {object} Response
// @Router /api/backup [post]
func (h *BackupHandler) Run(c *gin.Context) {
	if h.sheets == nil {
		ServiceUnavailable(c, "Sheets backup not configured")
		return
	}

	started := time.Now()

	var income []models.IncomeRecord
	if err := database.DB.Order("date").Find(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load income records"))
		return
	}
	var expenses []models.ExpenseRecord
	if err := database.DB.Order("date").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load expense records"))
		return
	}
	var cash []models.CashAccount
	if err := database.DB.Find(&cash).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load cash accounts"))
		return
	}

	incomeRows := incomeSheetRows(income)
	expenseRows := expenseSheetRows(expenses)
	cashRows := cashSheetRows(cash)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error { return h.sheets.ReplaceSheet(ctx, h.cfg.IncomeSheet, incomeRows) })
	g.Go(func() error { return h.sheets.ReplaceSheet(ctx, h.cfg.ExpenseSheet, expenseRows) })
	g.Go(func() error { return h.sheets.ReplaceSheet(ctx, h.cfg.CashSheet, cashRows) })

	if err := g.Wait(); err != nil {
		log.Printf("backup failed: %v", err)
		InternalError(c, SafeErrorMessage(err, "Backup failed"))
		return
	}

	if h.notifier != nil && h.notifier.Enabled() {
		if err := h.notifier.SendBackupReport(len(income), len(expenses), len(cash), time.Since(started)); err != nil {
			log.Printf("backup report mail failed: %v", err)
		}
	}

	SuccessWithMessage(c, "Backup complete!", nil)
}

func dateCell(d *string) interface{} {
	if d == nil {
		return ""
	}
	return *d
}

func incomeSheetRows(records []models.IncomeRecord) [][]interface{} {
	rows := [][]interface{}{
		{"ID", "Date", "Client", "Service", "Pricing", "Gross", "Net", "Status", "Ref ID"},
	}
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID, dateCell(r.Date), r.ClientName, r.ServiceType, r.PricingModel,
			numValue(r.Gross), numValue(r.Net), r.Status, r.RefID,
		})
	}
	return rows
}

func expenseSheetRows(records []models.ExpenseRecord) [][]interface{} {
	rows := [][]interface{}{
		{"ID", "Date", "Vendor", "Category", "Type", "Amount", "Payment", "Status"},
	}
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID, dateCell(r.Date), r.Vendor, r.Category, r.Type,
			numValue(r.Amount), r.Payment, r.Status,
		})
	}
	return rows
}

func cashSheetRows(records []models.CashAccount) [][]interface{} {
	rows := [][]interface{}{
		{"ID", "Month", "Account", "Institution", "Balance"},
	}
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID, r.Month, r.AccountName, r.Institution, numValue(r.Balance),
		})
	}
	return rows
}
