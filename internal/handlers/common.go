package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
)

// IdentityKey is the gin context key the auth middleware stores the caller under.
const IdentityKey = "identity"

func identityFrom(c *gin.Context) (helpers.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return helpers.Identity{}, false
	}

	ident, ok := value.(helpers.Identity)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid identity in context"))
		return helpers.Identity{}, false
	}

	return ident, true
}

// respondError translates the domain error taxonomy to HTTP statuses. Unknown
// errors are recorded on the gin context for the ErrorHandler middleware and
// surfaced as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
	}
}
