package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhaven/api/internal/config"
	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"github.com/stayhaven/api/internal/services"
)

func setAuthCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		helpers.AuthCookieName,
		token,
		int(helpers.TokenLifetime.Seconds()),
		"/",
		"", // current domain
		cfg.IsProduction(),
		true,
	)
}

func userSummary(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

func Signup(u *services.UserService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		user, err := u.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := helpers.CreateToken(user.ID.Hex(), cfg.JWTSecret)
		if err != nil {
			respondError(c, err)
			return
		}
		setAuthCookie(c, cfg, token)

		c.JSON(http.StatusCreated, models.SuccessResponse(userSummary(user), "Account created successfully"))
	}
}

func Login(u *services.UserService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		user, err := u.Authenticate(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := helpers.CreateToken(user.ID.Hex(), cfg.JWTSecret)
		if err != nil {
			respondError(c, err)
			return
		}
		setAuthCookie(c, cfg, token)

		c.JSON(http.StatusOK, models.SuccessResponse(userSummary(user), "Logged in successfully"))
	}
}

func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(helpers.AuthCookieName, "", -1, "/", "", cfg.IsProduction(), true)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(ident, ""))
	}
}
