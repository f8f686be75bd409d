package handler

import (
	"net/http"

	"libreria/internal/dto"
	"libreria/internal/service"

	"github.com/gin-gonic/gin"
)

type HistorialHandler struct{ svc service.HistorialService }

func NewHistorialHandler(svc service.HistorialService) *HistorialHandler {
	return &HistorialHandler{svc: svc}
}

// Listar returns closed-shift summaries, optionally filtered by date and period.
func (h *HistorialHandler) Listar(c *gin.Context) {
	filtro := dto.FiltroHistorial{
		Fecha:   c.Query("fecha"),
		Periodo: c.Query("periodo"),
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Detalle returns one closed shift with its frozen ledger, audit trails and totals.
func (h *HistorialHandler) Detalle(c *gin.Context) {
	resp, err := h.svc.Detalle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
