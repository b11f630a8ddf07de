package handlers

import (
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerService *services.AnswerService
}

func NewAnswerHandler(answerService *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

type AnswerRequest struct {
	FormID     string `json:"form_id" binding:"required" example:"1f0d6b9e-..."`
	SectionID  string `json:"section_id" binding:"required" example:"8a2c41d7-..."`
	AnswerID   string `json:"answer_id" binding:"required" example:"session uuid"`
	AnswerData string `json:"answer_data" binding:"required" example:"{\"text\":\"A\",\"predict\":\"\"}"`
}

// SaveAnswer godoc
// @Summary      Append one answer row
// @Description  Rows are append-only; repeat submissions create new rows under the same answer_id.
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        request body AnswerRequest true "Answer payload"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/answer [post]
func (h *AnswerHandler) SaveAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.answerService.SaveAnswer(req.FormID, req.SectionID, req.AnswerID, req.AnswerData)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "answer saved"})
}
