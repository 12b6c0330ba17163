package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/auth"
)

type AuthHandler struct {
	auth   auth.Authenticator
	logger *zap.Logger
}

func NewAuthHandler(a auth.Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: a, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login signs the operator in and returns the session token. A failed
// sign-in surfaces the provider's message; there is no retry policy.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("sign-in rejected", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout revokes the presented session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	authz := strings.TrimSpace(c.GetHeader("Authorization"))
	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if token != "" {
		h.auth.SignOut(token)
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
