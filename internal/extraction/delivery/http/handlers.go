package http

import (
	"github.com/gin-gonic/gin"

	"gtd-capture/internal/checklist"
	"gtd-capture/pkg/response"
)

// Extract godoc
// @Summary     Extract actions from captured text
// @Description Runs the full pipeline: optimizes oversized input, queries the model, validates the reply and renders checklist lines.
// @Tags        Extraction
// @Accept      json
// @Produce     json
// @Param       body body extractReq true "Captured text"
// @Success     200 {object} extractResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Upstream model unavailable"
// @Router      /api/v1/extractions [POST]
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Extract(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Extract: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newExtractResp(output))
}

// StartSession godoc
// @Summary     Start a refinement session
// @Description Opens a multi-turn session seeded with the captured text. No model call is made yet.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       body body extractReq true "Captured text"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/sessions [POST]
func (h *handler) StartSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.StartSession(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.StartSession: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, sessionResp{
		SessionID: output.SessionID,
		Messages:  output.Messages,
	})
}

// SendMessage godoc
// @Summary     Send a refinement message
// @Description Appends a user message to the session thread and returns the assistant reply.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id   path string  true "Session ID"
// @Param       body body sendReq true "Refinement message"
// @Success     200 {object} sendResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "A request is already in flight"
// @Failure     502 {object} response.Resp "Upstream model unavailable"
// @Router      /api/v1/sessions/{id}/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSendReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SendMessage(ctx, c.Param("id"), req.Message)
	if err != nil {
		h.l.Errorf(ctx, "uc.SendMessage: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, sendResp{
		SessionID: output.SessionID,
		Reply:     output.Reply,
		Messages:  output.Messages,
	})
}

// FinalizeSession godoc
// @Summary     Finalize a refinement session
// @Description Forces a JSON-only closing turn when strict mode is on, then interprets the latest assistant message into actions.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} extractResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "A request is already in flight"
// @Failure     502 {object} response.Resp "Upstream model unavailable"
// @Router      /api/v1/sessions/{id}/finalize [POST]
func (h *handler) FinalizeSession(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.FinalizeSession(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.FinalizeSession: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newExtractResp(output))
}

// ResetSession godoc
// @Summary     Reset a refinement session
// @Description Drops the session thread and removes the session.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [DELETE]
func (h *handler) ResetSession(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.ResetSession(ctx, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "uc.ResetSession: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// ChecklistStats godoc
// @Summary     Checklist progress
// @Description Parses checklist markup and returns completion statistics.
// @Tags        Checklists
// @Accept      json
// @Produce     json
// @Param       body body checklistStatsReq true "Checklist markup"
// @Success     200 {object} checklistStatsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/checklists/stats [POST]
func (h *handler) ChecklistStats(c *gin.Context) {
	req, err := h.processChecklistStatsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	response.OK(c, newChecklistStatsResp(h.checklist.GetStats(req.Content)))
}

// ChecklistUpdate godoc
// @Summary     Update checklist entries
// @Description Flips the checked state of entries matching a text fragment.
// @Tags        Checklists
// @Accept      json
// @Produce     json
// @Param       body body checklistUpdateReq true "Checklist markup and match"
// @Success     200 {object} checklistUpdateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/checklists/update [POST]
func (h *handler) ChecklistUpdate(c *gin.Context) {
	req, err := h.processChecklistUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out := h.checklist.Update(checklist.UpdateInput{
		Content: req.Content,
		Match:   req.Match,
		Checked: req.Checked,
	})

	response.OK(c, checklistUpdateResp{
		Content: out.Content,
		Updated: out.Updated,
		Count:   out.Count,
	})
}
