package handler

import (
	"net/http"
	"strconv"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler reads the ledger. Transactions are written only by
// the ledger package; here they are listed, summarized and soft-deleted.
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TransactionHandler{DB: db, PageSize: pageSize}
}

type transactionResp struct {
	ID          uint      `json:"id"`
	WalletID    uint      `json:"wallet_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	File        string    `json:"file,omitempty"`
	Amount      string    `json:"amount"`
	Kind        string    `json:"kind"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		WalletID:    t.WalletID,
		Title:       t.Title,
		Description: t.Description,
		File:        t.File,
		Amount:      t.Amount.StringFixed(2),
		Kind:        string(t.Kind),
		OccurredAt:  t.OccurredAt,
		CreatedAt:   t.CreatedAt,
	}
}

// ListTransactions supports time range, kind and wallet filters plus
// pagination, and returns credit/debit totals over the same filter.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND is_deleted = ?", user.ID, false)

	if startStr := c.Query("start"); startStr != "" {
		start, err := util.ValidateDate(startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
			return
		}
		base = base.Where("occurred_at >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := util.ValidateDate(endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
			return
		}
		// end date is inclusive: filter below the next day
		base = base.Where("occurred_at < ?", end.AddDate(0, 0, 1))
	}
	if kind := c.Query("kind"); kind == "credit" || kind == "debit" {
		base = base.Where("kind = ?", kind)
	}
	if walletStr := c.Query("wallet_id"); walletStr != "" {
		walletID, err := strconv.Atoi(walletStr)
		if err != nil || walletID <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid wallet id")
			return
		}
		base = base.Where("wallet_id = ?", walletID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count transactions")
		return
	}

	var txns []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Order("occurred_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	items := make([]transactionResp, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResp(&txns[i]))
	}

	// summary over the same filter, soft-deleted rows excluded
	var all []models.Transaction
	if err := base.Session(&gorm.Session{}).Find(&all).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to summarize transactions")
		return
	}

	totalCredit := decimal.Zero
	totalDebit := decimal.Zero
	for i := range all {
		if all[i].Kind == models.TxCredit {
			totalCredit = totalCredit.Add(all[i].Amount)
		} else {
			totalDebit = totalDebit.Add(all[i].Amount)
		}
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
		"summary": gin.H{
			"total_credit": totalCredit.StringFixed(2),
			"total_debit":  totalDebit.StringFixed(2),
			"net":          totalCredit.Sub(totalDebit).StringFixed(2),
		},
	})
}

// DeleteTransaction soft-deletes a ledger entry. The wallet balance is
// deliberately left alone; a reversal is a separate, explicit action.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	now := time.Now()
	res := h.DB.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, user.ID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
		})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Success(c, util.Response{
		"message": "transaction deleted",
	})
}
