package handlers

import (
	"net/http"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	engine *engine.Engine
}

func NewInventoryHandler(eng *engine.Engine) *InventoryHandler {
	return &InventoryHandler{engine: eng}
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.ListProducts(c.Request.Context())})
}

func (h *InventoryHandler) GetProduct(c *gin.Context) {
	p, err := h.engine.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *InventoryHandler) UpsertProduct(c *gin.Context) {
	var req domain.UpsertProductRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.engine.UpsertProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *InventoryHandler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.ListLocations(c.Request.Context())})
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.ListInventory(c.Request.Context())})
}

func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req domain.MovementRequest
	if !bind(c, &req) {
		return
	}
	entry, err := h.engine.RecordMovement(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.ListMovements(c.Request.Context())})
}

func (h *InventoryHandler) VerifyLedger(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.VerifyLedger(c.Request.Context()))
}

func (h *InventoryHandler) ExportLedger(c *gin.Context) {
	export, err := h.engine.ExportLedger(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}
