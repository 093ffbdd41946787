package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spendwise/internal/ledger"
	"spendwise/internal/models"
	"spendwise/internal/schedule"
	"spendwise/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SourceHandler manages financial sources. Creating a spontaneous source
// realizes it immediately through the schedule processor; an expense
// larger than the wallet balance rejects the whole creation.
type SourceHandler struct {
	DB        *gorm.DB
	Processor *schedule.Processor
}

func NewSourceHandler(db *gorm.DB, processor *schedule.Processor) *SourceHandler {
	return &SourceHandler{DB: db, Processor: processor}
}

type createSourceReq struct {
	WalletID        uint   `json:"wallet_id" binding:"required"`
	Kind            string `json:"kind" binding:"required,oneof=income expense"`
	Name            string `json:"name" binding:"required,max=64"`
	Description     string `json:"description" binding:"max=255"`
	Amount          string `json:"amount" binding:"required"`
	IsFixed         bool   `json:"is_fixed"`
	CycleDayOfMonth int    `json:"cycle_day_of_month"`
	CyclePeriod     string `json:"cycle_period"`
	EntryDate       string `json:"entry_date"`
}

type updateSourceReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=255"`
	Amount      string `json:"amount" binding:"required"`
}

type sourceResp struct {
	ID              uint       `json:"id"`
	WalletID        uint       `json:"wallet_id"`
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Amount          string     `json:"amount"`
	IsFixed         bool       `json:"is_fixed"`
	CycleDayOfMonth int        `json:"cycle_day_of_month,omitempty"`
	CyclePeriod     string     `json:"cycle_period,omitempty"`
	NextDueDate     *time.Time `json:"next_due_date,omitempty"`
	EntryDate       *time.Time `json:"entry_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toSourceResp(s *models.FinancialSource) sourceResp {
	return sourceResp{
		ID:              s.ID,
		WalletID:        s.WalletID,
		Kind:            string(s.Kind),
		Name:            s.Name,
		Description:     s.Description,
		Amount:          s.Amount.StringFixed(2),
		IsFixed:         s.IsFixed,
		CycleDayOfMonth: s.CycleDayOfMonth,
		CyclePeriod:     string(s.CyclePeriod),
		NextDueDate:     s.NextDueDate,
		EntryDate:       s.EntryDate,
		CreatedAt:       s.CreatedAt,
	}
}

func validCyclePeriod(p string) bool {
	switch models.CyclePeriod(p) {
	case models.PeriodMonthly, models.PeriodQuarterly, models.PeriodYearly:
		return true
	}
	return false
}

func (h *SourceHandler) CreateSource(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createSourceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "enter a valid amount")
		return
	}

	// the wallet must exist and belong to the caller before anything mutates
	var wallet models.Wallet
	if err := h.DB.Where("id = ? AND user_id = ?", req.WalletID, user.ID).
		First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "wallet not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load wallet")
		}
		return
	}

	src := models.FinancialSource{
		UserID:      user.ID,
		WalletID:    wallet.ID,
		Kind:        models.SourceKind(req.Kind),
		Name:        req.Name,
		Description: req.Description,
		Amount:      amount,
		IsFixed:     req.IsFixed,
	}

	if req.IsFixed {
		if err := util.ValidateCycleDay(req.CycleDayOfMonth); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		if !validCyclePeriod(req.CyclePeriod) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"cycle period must be monthly, quarterly or yearly")
			return
		}
		src.CycleDayOfMonth = req.CycleDayOfMonth
		src.CyclePeriod = models.CyclePeriod(req.CyclePeriod)

		// fixed sources wait for the daily run; NextDueDate stays nil so the
		// first matching run picks them up
		if err := h.DB.Create(&src).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save source")
			return
		}

		util.Success(c, util.Response{
			"source": toSourceResp(&src),
		})
		return
	}

	// spontaneous: realize right now
	if req.EntryDate != "" {
		d, err := util.ValidateDate(req.EntryDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "entry date must be YYYY-MM-DD")
			return
		}
		src.EntryDate = &d
	}

	txn, err := h.Processor.RealizeSpontaneous(&src)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			util.Error(c, http.StatusBadRequest, util.CodeInsufficientBalance,
				"insufficient wallet balance")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save source")
		return
	}

	util.Success(c, util.Response{
		"source":      toSourceResp(&src),
		"transaction": toTransactionResp(txn),
	})
}

func (h *SourceHandler) ListSources(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	q := h.DB.Where("user_id = ? AND is_deleted = ?", user.ID, false)

	if kind := c.Query("kind"); kind == "income" || kind == "expense" {
		q = q.Where("kind = ?", kind)
	}
	if fixed := c.Query("fixed"); fixed == "true" || fixed == "false" {
		q = q.Where("is_fixed = ?", fixed == "true")
	}

	var sources []models.FinancialSource
	if err := q.Order("id ASC").Find(&sources).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load sources")
		return
	}

	items := make([]sourceResp, 0, len(sources))
	for i := range sources {
		items = append(items, toSourceResp(&sources[i]))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// UpdateSource edits name, description and amount. Edits never touch
// transactions already created, and never the schedule fields.
func (h *SourceHandler) UpdateSource(c *gin.Context) {
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

	var req updateSourceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "enter a valid amount")
		return
	}

	var src models.FinancialSource
	if err := h.DB.Where("id = ? AND user_id = ? AND is_deleted = ?", id, user.ID, false).
		First(&src).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "source not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load source")
		}
		return
	}

	src.Name = strings.TrimSpace(req.Name)
	src.Description = req.Description
	src.Amount = amount
	if err := h.DB.Save(&src).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save source")
		return
	}

	util.Success(c, util.Response{
		"source": toSourceResp(&src),
	})
}

// DeleteSource soft-deletes a source. History stays; the daily run never
// selects it again.
func (h *SourceHandler) DeleteSource(c *gin.Context) {
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
	res := h.DB.Model(&models.FinancialSource{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, user.ID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
		})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete source")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "source not found")
		return
	}

	util.Success(c, util.Response{
		"message": "source deleted",
	})
}
