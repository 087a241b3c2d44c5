package container

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/stayhaven/api/internal/config"
	"github.com/stayhaven/api/internal/models"
	"github.com/stayhaven/api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	// Database clients
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client

	UserService     *services.UserService
	PropertyService *services.PropertyService
	BookingService  *services.BookingService
	ReviewService   *services.ReviewService
	AdminService    *services.AdminService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)

	userService := services.NewUserService(repo)
	propertyService := services.NewPropertyService(repo, repo)
	bookingService := services.NewBookingService(repo, repo)
	reviewService := services.NewReviewService(repo, repo, repo)
	adminService := services.NewAdminService(repo, repo, repo)

	return &Container{
		Logger:          logger,
		Config:          cfg,
		MongoDBClient:   mongoDBClient,
		RedisClient:     redisClient,
		UserService:     userService,
		PropertyService: propertyService,
		BookingService:  bookingService,
		ReviewService:   reviewService,
		AdminService:    adminService,
	}
}
