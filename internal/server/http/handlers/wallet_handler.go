package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/server/http/dto"
)

// WalletHandler exposes wallet endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Balance handles GET /api/user/wallet.
func (h *WalletHandler) Balance(c *gin.Context) {
	balance, err := h.facade.Balance(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: dto.Money(balance)})
}

// Transactions handles GET /api/user/wallet/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	entries, err := h.facade.Transactions(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toTransactionResponse(entry))
	}
	c.JSON(http.StatusOK, resp)
}

// TopUp handles POST /api/user/wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Reference) == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	entry, err := h.facade.TopUp(c.Request.Context(), CurrentUserID(c), strings.TrimSpace(req.Reference))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPaymentNotVerified):
			c.Status(http.StatusPaymentRequired)
		case errors.Is(err, domainErrors.ErrAlreadyProcessed):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(*entry))
}

func toTransactionResponse(entry model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          entry.ID,
		OrderID:     entry.OrderID,
		Amount:      dto.Money(entry.Amount),
		Type:        string(entry.Type),
		Status:      string(entry.Status),
		Reference:   entry.Reference,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}
