package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/server/http/dto"
	"github.com/polkiloo/bundlemart/internal/server/http/middleware"
)

// AuthHandler serves customer registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Register(c.Request.Context(), req.Login, req.Password, req.Phone)
	h.respond(c, token, err, http.StatusBadRequest)
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	h.respond(c, token, err, http.StatusUnauthorized)
}

// respond issues the session on success. Bad credentials map to
// invalidStatus: malformed input on register, a wrong password on login.
func (h *AuthHandler) respond(c *gin.Context, token string, err error, invalidStatus int) {
	switch {
	case err == nil:
		middleware.SetAuthCookie(c, token)
		c.Status(http.StatusOK)
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.Status(invalidStatus)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
