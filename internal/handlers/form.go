package handlers

import (
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(formService *services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

type FormRequest struct {
	FormName       string `json:"FormName" binding:"required,min=1,max=255" example:"文化祭アンケート"`
	FormMessage    string `json:"FormMessage" example:"ご回答ありがとうございました"`
	SingleResponse bool   `json:"singleResponse"`
}

// ListForms godoc
// @Summary      List the authenticated owner's forms
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Form
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	userID := c.GetUint("user_id")

	forms, err := h.formService.ListForms(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

// CreateForm godoc
// @Summary      Create a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body FormRequest true "Form data"
// @Success      201 {object} Form
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	form, err := h.formService.CreateForm(userID, req.FormName, req.FormMessage, req.SingleResponse)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GetForm godoc
// @Summary      Get a form with its sections
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form UUID"
// @Success      200 {object} Form
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	userID := c.GetUint("user_id")

	form, err := h.formService.GetForm(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// GetPublicForm godoc
// @Summary      Get a form as a respondent sees it
// @Description  No authentication; soft-deleted forms are not found. Section descriptors arrive pre-parsed in each section's config.
// @Tags         forms
// @Produce      json
// @Param        id path string true "Form UUID"
// @Success      200 {object} services.PublicForm
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/public/forms/{id} [get]
func (h *FormHandler) GetPublicForm(c *gin.Context) {
	form, err := h.formService.GetPublicForm(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateForm godoc
// @Summary      Update a form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form UUID"
// @Param        request body FormRequest true "Form data"
// @Success      200 {object} Form
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id} [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	form, err := h.formService.UpdateForm(c.Param("id"), userID, req.FormName, req.FormMessage, req.SingleResponse)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm godoc
// @Summary      Soft-delete a form
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form UUID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.formService.DeleteForm(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "form deleted"})
}
