package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-console/internal/delivery/http/response"
	"go-portfolio-console/internal/domain"
	"go-portfolio-console/pkg/apperror"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers the login route. The rate limiter wraps this one
// route only.
func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase, limiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	public.POST("/login", limiter, handler.Login)
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Password is required"))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", LoginResponse{Token: token})
}
