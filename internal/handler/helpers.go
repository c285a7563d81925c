package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
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

// respondError maps the typed errors raised by the services to HTTP statuses.
// Anything unrecognized is an internal failure: the detail goes to the log,
// never to the client.
func respondError(c *gin.Context, err error) {
	var notFound *apierror.NotFoundError
	var sinStock *apierror.StockInsuficienteError
	var porcentajes *apierror.PorcentajeError
	var negocio *apierror.APIError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &sinStock):
		c.JSON(http.StatusConflict, gin.H{"detail": sinStock.Error(), "stock": sinStock})
	case errors.As(err, &porcentajes):
		c.JSON(http.StatusBadRequest, apierror.New(porcentajes.Error()))
	case errors.As(err, &negocio):
		c.JSON(http.StatusBadRequest, negocio)
	case errors.Is(err, repository.ErrConflictoStock):
		c.JSON(http.StatusConflict, apierror.New("El stock cambio mientras se procesaba la operacion. Reintente."))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Registro no encontrado"))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("error interno")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// parseID reads the :id path param as a UUID, writing a 400 on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
