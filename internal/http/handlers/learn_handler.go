package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymy1064-stack/App-backend/internal/services"
)

// LearnRequest is the wire shape for POST /learn/ask.
type LearnRequest struct {
	Question string `json:"question" example:"What does the defer keyword do?"`
	Language string `json:"language,omitempty" example:"en"`
	Section  string `json:"section,omitempty" example:"functions"`
}

// LearnResponse is the success envelope for learning answers.
type LearnResponse struct {
	OK       bool   `json:"ok" example:"true"`
	Cached   bool   `json:"cached" example:"false"`
	Provider string `json:"provider,omitempty" example:"openrouter"`
	Answer   string `json:"answer"`
}

// LearnHandler serves the learning Q&A endpoint.
type LearnHandler struct {
	Service *services.LearnService
}

// Ask godoc
// @Summary      Ask a learning question
// @Description  Answers a study question in the requested language. Counts against the caller's daily learning quota unless served from cache.
// @Tags         learn
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string        false  "Stable caller identifier; anonymous callers are fingerprinted"
// @Param        request    body      LearnRequest  true   "Question input"
// @Success      200  {object}  LearnResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /learn/ask [post]
func (h *LearnHandler) Ask(c *gin.Context) {
	var req LearnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	res, err := h.Service.Ask(c.Request.Context(), identityFrom(c), services.LearnRequest{
		Question: req.Question,
		Language: req.Language,
		Section:  req.Section,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyInput):
			fail(c, http.StatusBadRequest, "question is required", nil)
		case errors.Is(err, services.ErrQuotaExceeded):
			fail(c, http.StatusTooManyRequests, "daily learning limit reached", nil)
		case errors.Is(err, services.ErrServiceDegraded):
			degraded(c, "tutor temporarily unavailable", services.LearnFallback())
		default:
			fail(c, http.StatusInternalServerError, "internal server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, LearnResponse{
		OK:       true,
		Cached:   res.Cached,
		Provider: res.Provider,
		Answer:   res.Answer,
	})
}
