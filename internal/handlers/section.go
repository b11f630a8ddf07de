package handlers

import (
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type SectionHandler struct {
	formService *services.FormService
}

func NewSectionHandler(formService *services.FormService) *SectionHandler {
	return &SectionHandler{formService: formService}
}

type SectionRequest struct {
	SectionName string `json:"SectionName" binding:"required,min=1,max=255" example:"満足度を教えてください"`
	SectionType string `json:"SectionType" binding:"required" example:"star"`
	SectionDesc string `json:"SectionDesc" example:"{\"maxStars\":5}"`
}

type ReorderRequest struct {
	Order []services.SectionOrder `json:"order" binding:"required"`
}

// CreateSection godoc
// @Summary      Add a section to a form
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form UUID"
// @Param        request body SectionRequest true "Section data"
// @Success      201 {object} Section
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/sections [post]
func (h *SectionHandler) CreateSection(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	section, err := h.formService.CreateSection(c.Param("id"), userID, services.SectionInput{
		SectionName: req.SectionName,
		SectionType: req.SectionType,
		SectionDesc: req.SectionDesc,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, section)
}

// UpdateSection godoc
// @Summary      Update a section
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Section UUID"
// @Param        request body SectionRequest true "Section data"
// @Success      200 {object} Section
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sections/{id} [put]
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	section, err := h.formService.UpdateSection(c.Param("id"), userID, services.SectionInput{
		SectionName: req.SectionName,
		SectionType: req.SectionType,
		SectionDesc: req.SectionDesc,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, section)
}

// DeleteSection godoc
// @Summary      Soft-delete a section
// @Tags         sections
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Section UUID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sections/{id} [delete]
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.formService.DeleteSection(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "section deleted"})
}

// ReorderSections godoc
// @Summary      Rewrite the display order of a form's sections
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form UUID"
// @Param        request body ReorderRequest true "New order"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id}/sections/reorder [put]
func (h *SectionHandler) ReorderSections(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.formService.ReorderSections(c.Param("id"), userID, req.Order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "sections reordered"})
}
