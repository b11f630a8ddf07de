package handlers

import (
	"log"
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type RespondHandler struct {
	respondService     *services.RespondService
	fingerprintService *services.FingerprintService
}

func NewRespondHandler(respondService *services.RespondService, fingerprintService *services.FingerprintService) *RespondHandler {
	return &RespondHandler{respondService: respondService, fingerprintService: fingerprintService}
}

type StartRespondRequest struct {
	FormID      string `json:"form_id" binding:"required" example:"1f0d6b9e-..."`
	SessionID   string `json:"session_id" example:"carried across reloads"`
	Fingerprint string `json:"fingerprint" example:"device fingerprint"`
}

type RespondValueRequest struct {
	Value any `json:"value" binding:"required"`
}

type CompleteRequest struct {
	Fingerprint string `json:"fingerprint"`
}

type BlockedResponse struct {
	Blocked bool   `json:"blocked"`
	Message string `json:"message"`
}

// Start godoc
// @Summary      Start or resume a respondent traversal
// @Description  On single-response forms a known fingerprint is rejected with 409. A failed duplicate check allows the respondent through.
// @Tags         respond
// @Accept       json
// @Produce      json
// @Param        request body StartRespondRequest true "Form and optional session/fingerprint"
// @Success      200 {object} services.RespondState
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} BlockedResponse
// @Router       /api/v1/respond/start [post]
func (h *RespondHandler) Start(c *gin.Context) {
	var req StartRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if req.Fingerprint != "" {
		blocked := h.checkGuard(req.FormID, req.Fingerprint)
		if blocked {
			c.JSON(http.StatusConflict, BlockedResponse{Blocked: true, Message: "already responded"})
			return
		}
	}

	state, err := h.respondService.Start(req.FormID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// checkGuard runs the duplicate check for single-response forms. Any
// failure during the check allows the respondent through: availability
// beats strictness here.
func (h *RespondHandler) checkGuard(formUUID, fingerprint string) bool {
	form, err := h.respondService.FormByUUID(formUUID)
	if err != nil || !form.SingleResponse {
		return false
	}

	duplicate, err := h.fingerprintService.CheckDuplicate(formUUID, fingerprint)
	if err != nil {
		log.Printf("respond: duplicate check failed, allowing respondent: %v", err)
		return false
	}
	return duplicate
}

// GetState godoc
// @Summary      Current position of a traversal
// @Tags         respond
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200 {object} services.RespondState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/respond/sessions/{sessionId} [get]
func (h *RespondHandler) GetState(c *gin.Context) {
	state, err := h.respondService.State(c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Answer godoc
// @Summary      Record the answer for the current section
// @Description  Accumulates only; nothing is persisted until navigation.
// @Tags         respond
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        request body RespondValueRequest true "Answer value"
// @Success      200 {object} services.RespondState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/respond/sessions/{sessionId}/answer [post]
func (h *RespondHandler) Answer(c *gin.Context) {
	var req RespondValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.respondService.Answer(c.Param("sessionId"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Next godoc
// @Summary      Persist the current answer and advance
// @Description  Rejected when the current section has no accumulated answer.
// @Tags         respond
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200 {object} services.RespondState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/respond/sessions/{sessionId}/next [post]
func (h *RespondHandler) Next(c *gin.Context) {
	state, err := h.respondService.Next(c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Previous godoc
// @Summary      Step back one section
// @Tags         respond
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200 {object} services.RespondState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/respond/sessions/{sessionId}/previous [post]
func (h *RespondHandler) Previous(c *gin.Context) {
	state, err := h.respondService.Previous(c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Complete godoc
// @Summary      Persist the final answer and finish the traversal
// @Description  Records the fingerprint for single-response forms; recording failures never block completion.
// @Tags         respond
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        request body CompleteRequest false "Optional fingerprint"
// @Success      200 {object} services.RespondState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/respond/sessions/{sessionId}/complete [post]
func (h *RespondHandler) Complete(c *gin.Context) {
	var req CompleteRequest
	_ = c.ShouldBindJSON(&req)

	form, formErr := h.respondService.Form(c.Param("sessionId"))

	state, err := h.respondService.Complete(c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Fingerprint != "" && formErr == nil && form.SingleResponse {
		if _, err := h.fingerprintService.Record(form.FormUUID, req.Fingerprint); err != nil {
			log.Printf("respond: record fingerprint: %v", err)
		}
	}

	c.JSON(http.StatusOK, state)
}
