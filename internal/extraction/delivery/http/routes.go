package http

import (
	"github.com/gin-gonic/gin"

	"gtd-capture/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. All
// routes share the request-id and rate-limit middleware.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	extractions := rg.Group("/extractions", mw.RequestID(), mw.RateLimit())
	{
		extractions.POST("", h.Extract)
	}

	sessions := rg.Group("/sessions", mw.RequestID(), mw.RateLimit())
	{
		sessions.POST("", h.StartSession)
		sessions.POST("/:id/messages", h.SendMessage)
		sessions.POST("/:id/finalize", h.FinalizeSession)
		sessions.DELETE("/:id", h.ResetSession)
	}

	checklists := rg.Group("/checklists", mw.RequestID(), mw.RateLimit())
	{
		checklists.POST("/stats", h.ChecklistStats)
		checklists.POST("/update", h.ChecklistUpdate)
	}
}
