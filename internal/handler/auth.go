package handler

import (
	"errors"
	"net/http"

	"libreria/internal/dto"
	"libreria/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.CredencialService }

func NewAuthHandler(svc service.CredencialService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Autentica una identidad y emite un token de acceso
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Identidad y secreto"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verificar godoc
// @Summary Comprueba una credencial sin emitir token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.CredencialRequest true "Identidad y secreto"
// @Success 200 {object} dto.VerificarResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/auth/verificar [post]
func (h *AuthHandler) Verificar(c *gin.Context) {
	var req dto.CredencialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.Verificar(c.Request.Context(), req.Identidad, req.Secreto)
	if errors.Is(err, service.ErrCredencialesInvalidas) {
		c.JSON(http.StatusOK, dto.VerificarResponse{OK: false})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerificarResponse{OK: true})
}

// Rotar changes a secret by proving the current one.
func (h *AuthHandler) Rotar(c *gin.Context) {
	var req dto.RotarSecretoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Rotar(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset sets a new secret for an identity, gated on the admin password.
// This is the forgotten-PIN path.
func (h *AuthHandler) Reset(c *gin.Context) {
	var req dto.ResetSecretoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPorAdmin(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
