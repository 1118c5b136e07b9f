package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ymy1064-stack/App-backend/internal/services"
)

// SEORequest is the wire shape for POST /seo/generate.
type SEORequest struct {
	Topic    string `json:"topic" example:"Getting started with sourdough"`
	Script   string `json:"script,omitempty" example:"Full video script text..."`
	Language string `json:"language,omitempty" example:"pt-BR"`
	Shorts   bool   `json:"shorts,omitempty" example:"false"`
}

// SEOResponse is the success envelope for SEO generation.
type SEOResponse struct {
	OK       bool             `json:"ok" example:"true"`
	Cached   bool             `json:"cached" example:"false"`
	Provider string           `json:"provider,omitempty" example:"gemini"`
	Data     services.SEOData `json:"data"`
}

// SEOHandler serves the SEO metadata generation endpoint.
type SEOHandler struct {
	Service *services.SEOService
}

// Generate godoc
// @Summary      Generate SEO metadata
// @Description  Produces a title, description and tags for a video topic or script. Counts against the caller's daily SEO quota unless served from cache.
// @Tags         seo
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string      false  "Stable caller identifier; anonymous callers are fingerprinted"
// @Param        request    body      SEORequest  true   "Generation input"
// @Success      200  {object}  SEOResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /seo/generate [post]
func (h *SEOHandler) Generate(c *gin.Context) {
	var req SEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	res, err := h.Service.Generate(c.Request.Context(), identityFrom(c), services.SEORequest{
		Topic:    req.Topic,
		Script:   req.Script,
		Language: req.Language,
		Shorts:   req.Shorts,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyInput):
			fail(c, http.StatusBadRequest, "topic or script is required", nil)
		case errors.Is(err, services.ErrQuotaExceeded):
			fail(c, http.StatusTooManyRequests, "daily seo limit reached", nil)
		case errors.Is(err, services.ErrServiceDegraded):
			degraded(c, "generation temporarily unavailable",
				services.SEOFallback(strings.TrimSpace(req.Topic)))
		default:
			fail(c, http.StatusInternalServerError, "internal server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, SEOResponse{
		OK:       true,
		Cached:   res.Cached,
		Provider: res.Provider,
		Data:     res.Data,
	})
}
