package api

import (
	"fmt"
	"net/http"
	"time"

	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves download exports of all records.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportJSON dumps every collection in one envelope.
// @Summary Export all records as JSON
// @Tags export
// @Produce json
// @Success 200 {object} Response
// @Router /api/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	var income []models.IncomeRecord
	if err := database.DB.Order("created_at ASC").Find(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load income records"))
		return
	}
	var expenses []models.ExpenseRecord
	if err := database.DB.Order("created_at ASC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load expense records"))
		return
	}
	var cash []models.CashAccount
	if err := database.DB.Order("created_at ASC").Find(&cash).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load cash accounts"))
		return
	}

	incomeOut := make([]*Income, 0, len(income))
	for i := range income {
		incomeOut = append(incomeOut, incomeToExternal(&income[i]))
	}
	expenseOut := make([]*Expense, 0, len(expenses))
	for i := range expenses {
		expenseOut = append(expenseOut, expenseToExternal(&expenses[i]))
	}
	cashOut := make([]*CashAccount, 0, len(cash))
	for i := range cash {
		cashOut = append(cashOut, cashAccountToExternal(&cash[i]))
	}

	Success(c, gin.H{
		"income":       incomeOut,
		"expenses":     expenseOut,
		"cashAccounts": cashOut,
	})
}

// ExportExcel streams an xlsx workbook with one sheet per collection.
// @Summary Export all records as an Excel workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx workbook"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
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

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	writeSheet := func(name string, rows [][]interface{}) {
		f.NewSheet(name)
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			f.SetSheetRow(name, cell, &row)
		}
		if len(rows) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
			f.SetCellStyle(name, "A1", last, headerStyle)
		}
	}

	writeSheet("Income", incomeSheetRows(income))
	writeSheet("Expenses", expenseSheetRows(expenses))
	writeSheet("Cash Accounts", cashSheetRows(cash))
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("finance_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "Failed to generate Excel file"})
		return
	}
}
