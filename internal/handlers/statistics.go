package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/events"
	"github.com/cube5963/feedo-cfes/internal/services"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService *services.StatisticsService
	hub               *events.Hub
}

func NewStatisticsHandler(statisticsService *services.StatisticsService, hub *events.Hub) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, hub: hub}
}

// GetFormStatistics godoc
// @Summary      Full statistics report for a form
// @Tags         statistics
// @Produce      json
// @Param        formId path string true "Form UUID"
// @Success      200 {object} services.FormStatistics
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/statistics/{formId} [get]
func (h *StatisticsHandler) GetFormStatistics(c *gin.Context) {
	formUUID := c.Param("formId")

	result, err := h.statisticsService.GetFormStatistics(formUUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSectionStatistics godoc
// @Summary      Statistics for one section
// @Tags         statistics
// @Produce      json
// @Param        formId path string true "Form UUID"
// @Param        sectionId path string true "Section UUID"
// @Success      200 {object} stats.SectionStatistics
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/statistics/{formId}/sections/{sectionId} [get]
func (h *StatisticsHandler) GetSectionStatistics(c *gin.Context) {
	result, err := h.statisticsService.CalculateSectionStatistics(c.Param("formId"), c.Param("sectionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StreamStatistics godoc
// @Summary      Live statistics over server-sent events
// @Description  Emits one statistics_update event per recomputed section as answers arrive.
// @Tags         statistics
// @Produce      text/event-stream
// @Param        formId path string true "Form UUID"
// @Router       /api/v1/statistics/{formId}/stream [get]
func (h *StatisticsHandler) StreamStatistics(c *gin.Context) {
	formUUID := c.Param("formId")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	ch := h.hub.Subscribe(formUUID)
	defer h.hub.Unsubscribe(formUUID, ch)

	fmt.Fprintf(c.Writer, "data: {\"type\": \"connected\"}\n\n")
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("sse: marshal event: %v", err)
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			c.Writer.Flush()
		}
	}
}
