package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhaven/api/internal/models"
	"github.com/stayhaven/api/internal/services"
)

func AdminListUsers(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			return
		}

		users, err := a.ListUsers(c.Request.Context(), ident)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(users, ""))
	}
}

func AdminDeleteUser(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			return
		}

		if err := a.DeleteUser(c.Request.Context(), ident, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "User deleted successfully"))
	}
}
