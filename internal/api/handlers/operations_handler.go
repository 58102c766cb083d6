package handlers

import (
	"net/http"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

// OperationsHandler covers customer returns and location sensors.
type OperationsHandler struct {
	engine *engine.Engine
}

func NewOperationsHandler(eng *engine.Engine) *OperationsHandler {
	return &OperationsHandler{engine: eng}
}

func (h *OperationsHandler) RegisterReturn(c *gin.Context) {
	var req domain.ReturnRequest
	if !bind(c, &req) {
		return
	}
	rc, err := h.engine.RegisterReturn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rc)
}

func (h *OperationsHandler) ListReturns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.ListReturns(c.Request.Context())})
}

func (h *OperationsHandler) UpdateReturn(c *gin.Context) {
	var req domain.ReturnStatusRequest
	if !bind(c, &req) {
		return
	}
	rc, err := h.engine.UpdateReturnStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rc)
}

func (h *OperationsHandler) RecordSensor(c *gin.Context) {
	var req domain.SensorReadingRequest
	if !bind(c, &req) {
		return
	}
	reading, err := h.engine.RecordSensorReading(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

func (h *OperationsHandler) GetSensors(c *gin.Context) {
	readings, err := h.engine.GetSensorReadings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": readings})
}
