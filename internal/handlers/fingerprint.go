package handlers

import (
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type FingerprintHandler struct {
	fingerprintService *services.FingerprintService
}

func NewFingerprintHandler(fingerprintService *services.FingerprintService) *FingerprintHandler {
	return &FingerprintHandler{fingerprintService: fingerprintService}
}

type FingerprintRequest struct {
	Fingerprint string `json:"fingerprint" binding:"required" example:"a41be0..."`
	FormUUID    string `json:"FormUUID" binding:"required" example:"1f0d6b9e-..."`
}

type FingerprintResponse struct {
	Exists      bool   `json:"exists"`
	IsDuplicate bool   `json:"isDuplicate"`
	Created     bool   `json:"created,omitempty"`
	Message     string `json:"message"`
}

// CheckFingerprint godoc
// @Summary      Check whether a device already responded to a form
// @Description  404 means "no record" (new respondent), which is distinct from an error.
// @Tags         fingerprint
// @Produce      json
// @Param        fingerprint query string true "Device fingerprint"
// @Param        FormUUID query string true "Form UUID"
// @Success      200 {object} FingerprintResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} FingerprintResponse
// @Router       /api/v1/fingerprint [get]
func (h *FingerprintHandler) CheckFingerprint(c *gin.Context) {
	fingerprint := c.Query("fingerprint")
	formUUID := c.Query("FormUUID")
	if fingerprint == "" || formUUID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fingerprint and FormUUID are required"})
		return
	}

	exists, err := h.fingerprintService.CheckDuplicate(formUUID, fingerprint)
	if err != nil {
		respondError(c, err)
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, FingerprintResponse{
			Exists:      false,
			IsDuplicate: false,
			Message:     "fingerprint not found (new respondent)",
		})
		return
	}

	c.JSON(http.StatusOK, FingerprintResponse{
		Exists:      true,
		IsDuplicate: true,
		Message:     "already responded",
	})
}

// RecordFingerprint godoc
// @Summary      Record a device as having responded to a form
// @Description  Idempotent: a pair that already exists reports created=false with status 200.
// @Tags         fingerprint
// @Accept       json
// @Produce      json
// @Param        request body FingerprintRequest true "Fingerprint data"
// @Success      200 {object} FingerprintResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/fingerprint [post]
func (h *FingerprintHandler) RecordFingerprint(c *gin.Context) {
	var req FingerprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.fingerprintService.Record(req.FormUUID, req.Fingerprint)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := FingerprintResponse{Created: created}
	if created {
		resp.Message = "fingerprint recorded"
	} else {
		resp.Exists = true
		resp.IsDuplicate = true
		resp.Message = "fingerprint already recorded"
	}
	c.JSON(http.StatusOK, resp)
}
