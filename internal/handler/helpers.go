package handler

import (
	"errors"
	"net/http"
	"reflect"

	"libreria/internal/apierror"
	"libreria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeInvalidFormat, "JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates service sentinels into HTTP status + stable code.
// Unknown errors become an opaque 500: internals never reach the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFormatoInvalido), errors.Is(err, service.ErrMontoInvalido):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeInvalidFormat, err.Error()))
	case errors.Is(err, service.ErrCredencialesInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.CodeInvalidCredentials, err.Error()))
	case errors.Is(err, service.ErrAdminRequerido):
		c.JSON(http.StatusForbidden, apierror.New(apierror.CodeAdminRequired, err.Error()))
	case errors.Is(err, service.ErrNoEsAutorOriginal):
		c.JSON(http.StatusForbidden, apierror.New(apierror.CodeNotOriginalAuthor, err.Error()))
	case errors.Is(err, service.ErrYaAbierto):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeAlreadyOpen, err.Error()))
	case errors.Is(err, service.ErrSinTurnoAbierto):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeShiftNotOpen, err.Error()))
	case errors.Is(err, service.ErrTurnoNoAbierto):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeNotOpen, err.Error()))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, err.Error()))
	case errors.Is(err, service.ErrYaExiste):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeAlreadyExists, err.Error()))
	case errors.Is(err, service.ErrTransicionInvalida):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeInvalidTransition, err.Error()))
	case errors.Is(err, service.ErrUpstreamNoDisponible):
		c.JSON(http.StatusServiceUnavailable, apierror.New(apierror.CodeUpstreamUnavailable, err.Error()))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("error no mapeado")
		c.JSON(http.StatusInternalServerError, apierror.New(apierror.CodeInternal, "Error interno del servidor"))
	}
}
