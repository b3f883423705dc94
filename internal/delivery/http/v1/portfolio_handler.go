package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-portfolio-console/internal/delivery/http/response"
	"go-portfolio-console/internal/domain"
	"go-portfolio-console/pkg/apperror"
)

// maxSectionPayload bounds section bodies so a stray upload cannot balloon
// the jsonb column.
const maxSectionPayload = 1 << 20

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
	skillsUC    domain.SkillsUsecase
}

// NewPortfolioHandler registers the portfolio routes. Reads are public,
// writes go through the protected group.
//
// Skills sub-resources live under /portfolio/:section/:resource because gin
// rejects a static /portfolio/skills/structure route next to the :section
// parameter; the handler dispatches on the resource name instead.
func NewPortfolioHandler(public *gin.RouterGroup, protected *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, skillsUC domain.SkillsUsecase) {
	handler := &PortfolioHandler{
		portfolioUC: portfolioUC,
		skillsUC:    skillsUC,
	}

	public.GET("/portfolio", handler.GetDocument)
	public.GET("/portfolio/:section", handler.GetSection)
	public.GET("/portfolio/:section/:resource", handler.GetSectionResource)

	protected.PUT("/portfolio", handler.ReplaceDocument)
	protected.PUT("/portfolio/:section", handler.ReplaceSection)
	protected.POST("/reset-data", handler.ResetData)
}

func (h *PortfolioHandler) GetDocument(c *gin.Context) {
	doc, err := h.portfolioUC.GetDocument(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio retrieved", doc)
}

func (h *PortfolioHandler) GetSection(c *gin.Context) {
	name := c.Param("section")

	payload, err := h.portfolioUC.GetSection(c.Request.Context(), name)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section retrieved", payload)
}

// GetSectionResource serves the read-only skills sub-resources.
func (h *PortfolioHandler) GetSectionResource(c *gin.Context) {
	section := c.Param("section")
	resource := c.Param("resource")

	if section != domain.SectionSkills {
		c.Error(apperror.NotFound("Unknown resource"))
		return
	}

	switch resource {
	case "structure":
		structure, err := h.skillsUC.Structure(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Skills structure retrieved", structure)
	case "flat":
		flattened, err := h.skillsUC.Flattened(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Flattened skills retrieved", flattened)
	default:
		c.Error(apperror.NotFound("Unknown resource"))
	}
}

func (h *PortfolioHandler) ReplaceSection(c *gin.Context) {
	name := c.Param("section")

	payload, err := readJSONBody(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.portfolioUC.ReplaceSection(c.Request.Context(), name, payload); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section updated", payload)
}

func (h *PortfolioHandler) ReplaceDocument(c *gin.Context) {
	payload, err := readJSONBody(c)
	if err != nil {
		c.Error(err)
		return
	}

	var doc domain.PortfolioDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		c.Error(apperror.BadRequest("Request body must be a JSON object of sections"))
		return
	}

	if err := h.portfolioUC.ReplaceDocument(c.Request.Context(), doc); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio updated", doc)
}

func (h *PortfolioHandler) ResetData(c *gin.Context) {
	if err := h.portfolioUC.Reset(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio reset to defaults", nil)
}

func readJSONBody(c *gin.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSectionPayload))
	if err != nil {
		return nil, apperror.BadRequest("Failed to read request body")
	}
	if len(body) == 0 || !json.Valid(body) {
		return nil, apperror.BadRequest("Request body must be valid JSON")
	}
	return json.RawMessage(body), nil
}
