package http

import (
	"github.com/gin-gonic/gin"

	"gtd-capture/internal/checklist"
	"gtd-capture/internal/extraction"
	"gtd-capture/pkg/log"
)

// Handler is the public interface for the extraction HTTP delivery layer.
type Handler interface {
	Extract(c *gin.Context)
	StartSession(c *gin.Context)
	SendMessage(c *gin.Context)
	FinalizeSession(c *gin.Context)
	ResetSession(c *gin.Context)
	ChecklistStats(c *gin.Context)
	ChecklistUpdate(c *gin.Context)
}

type handler struct {
	l         log.Logger
	uc        extraction.UseCase
	checklist checklist.Service
}

// New creates a new HTTP handler for the extraction domain.
func New(l log.Logger, uc extraction.UseCase, cl checklist.Service) *handler {
	return &handler{
		l:         l,
		uc:        uc,
		checklist: cl,
	}
}
