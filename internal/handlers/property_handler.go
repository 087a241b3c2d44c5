package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stayhaven/api/internal/models"
	"github.com/stayhaven/api/internal/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination reads page/limit query params, falling back to sane values on
// anything unparseable or out of range.
func pagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

func CreateProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			return
		}

		var property models.Property
		if err := c.ShouldBindJSON(&property); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		created, err := p.CreateProperty(c.Request.Context(), ident, &property)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Property created successfully"))
	}
}

func ListProperties(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)

		properties, total, err := p.ListProperties(c.Request.Context(), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.PaginatedResponse(properties, page, limit, int(total)))
	}
}

func GetProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		property, err := p.GetProperty(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(property, ""))
	}
}

func DeleteProperty(p *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			return
		}

		if err := p.DeleteProperty(c.Request.Context(), ident, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Property deleted successfully"))
	}
}
