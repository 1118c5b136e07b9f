// Package handlers holds the Gin HTTP handlers: the two generation
// endpoints plus the health and quota meta endpoints. Handlers translate
// between the wire envelopes and the service layer; all business rules
// live below them.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymy1064-stack/App-backend/internal/http/middleware"
	"github.com/ymy1064-stack/App-backend/internal/identity"
)

// ErrorResponse is the failure envelope. Fallback is only populated on
// degraded (503) responses so clients always have something to render.
type ErrorResponse struct {
	OK       bool   `json:"ok" example:"false"`
	Error    string `json:"error" example:"daily limit reached"`
	Fallback any    `json:"fallback,omitempty"`
}

// identityFrom derives the pseudonymous caller key. An explicit X-User-ID
// wins; anonymous callers fall back to the hashed network fingerprint.
func identityFrom(c *gin.Context) string {
	return identity.Resolve(c.GetHeader("X-User-ID"), c.ClientIP(), c.Request.UserAgent())
}

// fail writes the error envelope and logs server-side failures with the
// request-scoped logger. Client errors are not logged here; the access
// log already records them at warn level.
func fail(c *gin.Context, status int, msg string, err error) {
	if status >= http.StatusInternalServerError && err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Int("status", status).Msg(msg)
	}
	c.JSON(status, ErrorResponse{OK: false, Error: msg})
}

// degraded writes the 503 envelope carrying a static fallback payload.
func degraded(c *gin.Context, msg string, fallback any) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		OK:       false,
		Error:    msg,
		Fallback: fallback,
	})
}
