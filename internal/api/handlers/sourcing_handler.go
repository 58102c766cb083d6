package handlers

import (
	"net/http"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

type SourcingHandler struct {
	engine *engine.Engine
}

func NewSourcingHandler(eng *engine.Engine) *SourcingHandler {
	return &SourcingHandler{engine: eng}
}

func (h *SourcingHandler) ListSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.ListSuppliers(c.Request.Context())})
}

func (h *SourcingHandler) AddSupplier(c *gin.Context) {
	var req domain.SupplierProfile
	if !bind(c, &req) {
		return
	}
	saved, err := h.engine.AddSupplier(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *SourcingHandler) RecommendSupplier(c *gin.Context) {
	var req domain.SupplierRecommendationRequest
	if !bind(c, &req) {
		return
	}
	rec, err := h.engine.RecommendSupplier(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *SourcingHandler) Reconcile(c *gin.Context) {
	var req domain.ReconciliationRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.engine.ReconcileAccounting(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SourcingHandler) RecommendPackaging(c *gin.Context) {
	var req domain.PackagingRequest
	if !bind(c, &req) {
		return
	}
	rec, err := h.engine.RecommendPackaging(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
