package http

import (
	"github.com/gin-gonic/gin"
)

// processExtractReq binds and validates the extraction request body.
func (h *handler) processExtractReq(c *gin.Context) (extractReq, error) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSendReq binds the refinement message body.
func (h *handler) processSendReq(c *gin.Context) (sendReq, error) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processChecklistUpdateReq binds the checklist update body.
func (h *handler) processChecklistUpdateReq(c *gin.Context) (checklistUpdateReq, error) {
	var req checklistUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processChecklistStatsReq binds the checklist stats body.
func (h *handler) processChecklistStatsReq(c *gin.Context) (checklistStatsReq, error) {
	var req checklistStatsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
