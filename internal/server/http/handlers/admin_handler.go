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

// AdminHandler exposes operator endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// PushSetting handles GET /api/admin/settings/push.
func (h *AdminHandler) PushSetting(c *gin.Context) {
	enabled, err := h.facade.PushEnabled(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.PushSettingResponse{Enabled: enabled})
}

// SetPushSetting handles PUT /api/admin/settings/push.
func (h *AdminHandler) SetPushSetting(c *gin.Context) {
	var req dto.PushSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetPushEnabled(c.Request.Context(), *req.Enabled); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.PushSettingResponse{Enabled: *req.Enabled})
}

// OverrideStatus handles PUT /api/admin/orders/:id/status.
func (h *AdminHandler) OverrideStatus(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.StatusOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status := model.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	order, err := h.facade.OverrideStatus(c.Request.Context(), orderID, status)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Resubmit handles POST /api/admin/orders/:id/submit.
func (h *AdminHandler) Resubmit(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Resubmit(c.Request.Context(), orderID)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Reconcile handles POST /api/admin/reconcile.
func (h *AdminHandler) Reconcile(c *gin.Context) {
	report, err := h.facade.Reconcile(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
