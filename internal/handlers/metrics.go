package handlers

import (
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metricsService *services.MetricsService
}

func NewMetricsHandler(metricsService *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

type MetricRequest struct {
	Type string `json:"type" binding:"required" example:"access"`
}

type MetricResponse struct {
	Name string `json:"name"`
	Num  int64  `json:"num"`
}

// IncrementMetric godoc
// @Summary      Bump a usage counter
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        request body MetricRequest true "Counter name (access or answer)"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/metrics [post]
func (h *MetricsHandler) IncrementMetric(c *gin.Context) {
	var req MetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.metricsService.Increment(req.Type); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "metric incremented"})
}

// GetMetric godoc
// @Summary      Read a usage counter
// @Tags         metrics
// @Produce      json
// @Param        name path string true "Counter name"
// @Success      200 {object} MetricResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/metrics/{name} [get]
func (h *MetricsHandler) GetMetric(c *gin.Context) {
	name := c.Param("name")

	num, err := h.metricsService.Get(name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MetricResponse{Name: name, Num: num})
}
