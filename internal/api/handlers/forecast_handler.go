package handlers

import (
	"net/http"

	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	engine *engine.Engine
}

func NewForecastHandler(eng *engine.Engine) *ForecastHandler {
	return &ForecastHandler{engine: eng}
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	fc, err := h.engine.ForecastInventory(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

func (h *ForecastHandler) ListForecasts(c *gin.Context) {
	all, err := h.engine.ForecastAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": all})
}

func (h *ForecastHandler) GetReplenishment(c *gin.Context) {
	rec, err := h.engine.RecommendReplenishment(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
