package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gtd-capture/internal/extraction"
	"gtd-capture/pkg/llmtransport"
	"gtd-capture/pkg/response"
)

// respondError translates domain and transport errors into HTTP
// responses. Transport exhaustion maps to 502: the upstream model
// endpoint failed, not this service.
func (h *handler) respondError(c *gin.Context, err error) {
	var transportErr *llmtransport.TransportError

	switch {
	case errors.Is(err, extraction.ErrEmptyInput):
		response.Error(c, err, nil)
	case errors.Is(err, extraction.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, extraction.ErrSessionBusy):
		response.Conflict(c, err)
	case errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, response.Resp{
			ErrorCode: http.StatusBadGateway,
			Message:   transportErr.Error(),
		})
	default:
		response.InternalError(c, err)
	}
}
