package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/server/http/dto"
)

// CartHandler exposes the customer's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/user/cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	line, err := h.facade.AddCartLine(c.Request.Context(), CurrentUserID(c), model.CartLine{
		ProductRef:        req.ProductRef,
		VariantRef:        req.VariantRef,
		BeneficiaryNumber: req.BeneficiaryNumber,
		Network:           req.Network,
		BundleSize:        req.BundleSize,
		UnitPrice:         req.UnitPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCartLine):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toCartLineResponse(*line))
}

// List handles GET /api/user/cart.
func (h *CartHandler) List(c *gin.Context) {
	lines, err := h.facade.CartLines(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.CartResponse{
		Lines: make([]dto.CartLineResponse, 0, len(lines)),
		Total: dto.Money(model.CartTotal(lines)),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, toCartLineResponse(line))
	}
	c.JSON(http.StatusOK, resp)
}

// Remove handles DELETE /api/user/cart/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	lineID, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveCartLine(c.Request.Context(), CurrentUserID(c), lineID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func toCartLineResponse(line model.CartLine) dto.CartLineResponse {
	return dto.CartLineResponse{
		ID:                line.ID,
		ProductRef:        line.ProductRef,
		VariantRef:        line.VariantRef,
		BeneficiaryNumber: line.BeneficiaryNumber,
		Network:           line.Network,
		BundleSize:        line.BundleSize,
		UnitPrice:         dto.Money(line.UnitPrice),
		AddedAt:           line.CreatedAt,
	}
}
