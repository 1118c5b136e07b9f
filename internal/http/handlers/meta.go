package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymy1064-stack/App-backend/internal/services"
)

// HealthResponse is the liveness envelope.
type HealthResponse struct {
	OK   bool   `json:"ok" example:"true"`
	Time string `json:"time" example:"2026-01-02T15:04:05Z"`
}

// QuotaResponse reports the caller's remaining daily budget.
type QuotaResponse struct {
	OK        bool           `json:"ok" example:"true"`
	Date      string         `json:"date" example:"2026-01-02"`
	Remaining QuotaRemaining `json:"remaining"`
}

// QuotaRemaining splits the remaining budget by feature.
type QuotaRemaining struct {
	SEO   int `json:"seo" example:"5"`
	Learn int `json:"learn" example:"10"`
}

// MetaHandler serves health and quota introspection.
type MetaHandler struct {
	Quota services.Quota

	// nowFn is a test seam.
	nowFn func() time.Time
}

func NewMetaHandler(q services.Quota) *MetaHandler {
	return &MetaHandler{Quota: q, nowFn: time.Now}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         meta
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		OK:   true,
		Time: h.nowFn().UTC().Format(time.RFC3339),
	})
}

// RemainingQuota godoc
// @Summary      Remaining daily quota
// @Description  Reports how many SEO generations and learning questions the caller has left today (UTC). Never consumes quota.
// @Tags         meta
// @Produce      json
// @Param        X-User-ID  header  string  false  "Stable caller identifier; anonymous callers are fingerprinted"
// @Success      200  {object}  QuotaResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /quota [get]
func (h *MetaHandler) RemainingQuota(c *gin.Context) {
	day := h.Quota.Today()
	rem, err := h.Quota.Remaining(c.Request.Context(), day, identityFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal server error", err)
		return
	}
	c.JSON(http.StatusOK, QuotaResponse{
		OK:   true,
		Date: day,
		Remaining: QuotaRemaining{
			SEO:   rem.SEO,
			Learn: rem.Learn,
		},
	})
}
