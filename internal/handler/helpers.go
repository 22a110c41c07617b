package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/middleware"
	"github.com/vitorduarteebb/otica2/internal/service"
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
		c.JSON(http.StatusBadRequest, apperr.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apperr.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds query-string filters and runs their validation tags.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apperr.New("Parâmetros inválidos: "+err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apperr.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error to its HTTP response via the apperr
// taxonomy.
func respondError(c *gin.Context, err error) {
	status, body := apperr.Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err) // surfaces in the ErrorHandler log
	}
	c.JSON(status, body)
}

// actorFrom builds the service-layer actor out of the validated JWT claims.
func actorFrom(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	actor := service.Actor{Role: claims.Role}
	if id, err := uuid.Parse(claims.Subject); err == nil {
		actor.UserID = id
	}
	if claims.StoreID != nil {
		if sid, err := uuid.Parse(*claims.StoreID); err == nil {
			actor.StoreID = &sid
		}
	}
	return actor
}

// pathID parses the :id path parameter, writing the 400 response on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}
