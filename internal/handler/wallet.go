package handler

import (
	"net/http"
	"strconv"
	"strings"

	"spendwise/internal/models"
	"spendwise/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletHandler serves wallet CRUD. Balances are only ever written by
// the ledger package; this handler sets the opening balance at creation
// and reads afterwards.
type WalletHandler struct {
	DB *gorm.DB
}

func NewWalletHandler(db *gorm.DB) *WalletHandler {
	return &WalletHandler{DB: db}
}

type createWalletReq struct {
	Name           string `json:"name" binding:"required,max=64"`
	InitialBalance string `json:"initial_balance"`
}

type walletResp struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

func toWalletResp(w *models.Wallet) walletResp {
	return walletResp{
		ID:      w.ID,
		Name:    w.Name,
		Balance: w.Balance.StringFixed(2),
	}
}

func (h *WalletHandler) CreateWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createWalletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "wallet name is required")
		return
	}

	balance := decimal.Zero
	if req.InitialBalance != "" {
		d, err := decimal.NewFromString(req.InitialBalance)
		if err != nil || d.Sign() < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "initial balance must be a non-negative amount")
			return
		}
		balance = d
	}

	wallet := models.Wallet{
		UserID:  user.ID,
		Name:    req.Name,
		Balance: balance,
	}
	if err := h.DB.Create(&wallet).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create wallet")
		return
	}

	util.Success(c, util.Response{
		"wallet": toWalletResp(&wallet),
	})
}

func (h *WalletHandler) ListWallets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var wallets []models.Wallet
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&wallets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load wallets")
		return
	}

	items := make([]walletResp, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResp(&wallets[i]))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
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

	var wallet models.Wallet
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "wallet not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load wallet")
		}
		return
	}

	util.Success(c, util.Response{
		"wallet": toWalletResp(&wallet),
	})
}
