package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhaven/api/internal/models"
	"github.com/stayhaven/api/internal/services"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			return
		}

		var in models.CreateReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		review, err := r.CreateReview(c.Request.Context(), ident, in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review submitted successfully"))
	}
}
