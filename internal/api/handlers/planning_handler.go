package handlers

import (
	"net/http"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

// PlanningHandler serves slotting, pick routes and travel estimates.
type PlanningHandler struct {
	engine *engine.Engine
}

func NewPlanningHandler(eng *engine.Engine) *PlanningHandler {
	return &PlanningHandler{engine: eng}
}

func (h *PlanningHandler) RecommendSlot(c *gin.Context) {
	var req domain.SlotRequest
	if !bind(c, &req) {
		return
	}
	rec, err := h.engine.RecommendSlot(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *PlanningHandler) PlanPickRoute(c *gin.Context) {
	var req domain.PickRouteRequest
	if !bind(c, &req) {
		return
	}
	route, err := h.engine.PlanPickRoute(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *PlanningHandler) TravelTime(c *gin.Context) {
	est, err := h.engine.EstimateTravelTime(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}
