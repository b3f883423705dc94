package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-console/internal/delivery/http/response"
	"go-portfolio-console/internal/domain"
	"go-portfolio-console/pkg/apperror"
)

type SkillsHandler struct {
	skillsUC domain.SkillsUsecase
}

// NewSkillsHandler registers the categorization settings routes. The path
// keeps the /linkedin prefix the frontend has always used.
func NewSkillsHandler(protected *gin.RouterGroup, skillsUC domain.SkillsUsecase) {
	handler := &SkillsHandler{skillsUC: skillsUC}

	protected.GET("/linkedin/configure-categorization", handler.GetCategorization)
	protected.POST("/linkedin/configure-categorization", handler.Configure)
}

func (h *SkillsHandler) GetCategorization(c *gin.Context) {
	settings, err := h.skillsUC.Categorization(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categorization settings retrieved", settings)
}

type ConfigureRequest struct {
	Categorization domain.CategorizationSettings `json:"categorization"`
}

func (h *SkillsHandler) Configure(c *gin.Context) {
	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Request body must contain a categorization object"))
		return
	}

	if err := h.skillsUC.Configure(c.Request.Context(), req.Categorization); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categorization settings saved", req.Categorization)
}
