package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-portfolio-console/config"
	"go-portfolio-console/internal/delivery/http/middleware"
	"go-portfolio-console/internal/delivery/http/response"
	"go-portfolio-console/internal/domain"
	"go-portfolio-console/internal/usecase"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	PortfolioUC domain.PortfolioUsecase
	SkillsUC    domain.SkillsUsecase
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	loginLimiter := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewAuthHandler(api, deps.AuthUC, loginLimiter)
		NewPortfolioHandler(api, protected, deps.PortfolioUC, deps.SkillsUC)
		NewSkillsHandler(protected, deps.SkillsUC)
		NewContactHandler(api, deps.ContactUC)
	}

	return r
}
