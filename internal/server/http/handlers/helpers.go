package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/server/http/dto"
	"github.com/polkiloo/bundlemart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                order.ID,
		BeneficiaryNumber: order.BeneficiaryNumber,
		Network:           order.Network,
		BundleSize:        order.BundleSize,
		Total:             dto.Money(order.Total),
		Status:            string(order.Status),
		APIStatus:         string(order.APIStatus),
		Refunded:          order.Refunded,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
	if order.HasProviderReference() {
		resp.ProviderReference = *order.ProviderReference
	}
	return resp
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}
