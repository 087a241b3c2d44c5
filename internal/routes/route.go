package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stayhaven/api/internal/container"
	"github.com/stayhaven/api/internal/handlers"
	"github.com/stayhaven/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "stayhaven-api",
			})
		})

		// public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/signup",
				middleware.RateLimit(container.RedisClient, container.Logger, "10-10m", "signup"),
				handlers.Signup(container.UserService, container.Config))
			auth.POST("/login",
				middleware.RateLimit(container.RedisClient, container.Logger, "20-5m", "login"),
				handlers.Login(container.UserService, container.Config))
			auth.POST("/logout", handlers.Logout(container.Config))
		}

		// property browsing is public
		v1.GET("/properties", handlers.ListProperties(container.PropertyService))
		v1.GET("/properties/:id", handlers.GetProperty(container.PropertyService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Config, container.Logger))

	protected.GET("/auth/me", handlers.Me())

	propertyRoutes := protected.Group("/properties")
	{
		propertyRoutes.POST("", handlers.CreateProperty(container.PropertyService))
		propertyRoutes.DELETE("/:id", handlers.DeleteProperty(container.PropertyService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("", handlers.ListBookings(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.BookingService))
		bookingRoutes.PATCH("/:id", handlers.UpdateBooking(container.BookingService))
	}

	protected.POST("/reviews", handlers.CreateReview(container.ReviewService))

	adminRoutes := protected.Group("/admin")
	{
		adminRoutes.GET("/users", handlers.AdminListUsers(container.AdminService))
		adminRoutes.DELETE("/users/:id", handlers.AdminDeleteUser(container.AdminService))
	}

	return r
}
