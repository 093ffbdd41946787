package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Kind", "Title", "Amount", "Description", "Date"}

func (h *ExportHandler) loadTransactions(userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := h.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("occurred_at DESC").
		Find(&txns).Error
	return txns, err
}

// ExportCSV streams all non-deleted transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	txns, err := h.loadTransactions(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range txns {
		t := &txns[i]
		writer.Write([]string{
			string(t.Kind),
			t.Title,
			t.Amount.StringFixed(2),
			t.Description,
			t.OccurredAt.Format("2006-01-02"),
		})
	}
}

// ExportXLSX writes all non-deleted transactions as a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	txns, err := h.loadTransactions(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, head := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx := range txns {
		t := &txns[idx]
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), string(t.Kind))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.OccurredAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to export")
	}
}
