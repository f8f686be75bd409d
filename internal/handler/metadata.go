package handler

import (
	"net/http"

	"libreria/internal/service"

	"github.com/gin-gonic/gin"
)

type MetadataHandler struct{ svc service.MetadataService }

func NewMetadataHandler(svc service.MetadataService) *MetadataHandler {
	return &MetadataHandler{svc: svc}
}

// Buscar godoc
// @Summary Resuelve titulo, autor, editorial y precio para un ISBN
// @Tags metadata
// @Produce json
// @Security BearerAuth
// @Param isbn path string true "ISBN-10 o ISBN-13, solo digitos"
// @Success 200 {object} dto.MetadataResponse
// @Failure 404 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/metadata/{isbn} [get]
func (h *MetadataHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
