package handlers

import (
	"errors"
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Form = models.Form
type Section = models.Section

// respondError maps the fault taxonomy onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fault.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fault.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case fault.IsClientError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
