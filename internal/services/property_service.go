package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyService struct {
	propertyRepo models.PropertyRepo
	bookingRepo  models.BookingRepo
}

func NewPropertyService(propertyRepo models.PropertyRepo, bookingRepo models.BookingRepo) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
	}
}

func (ps *PropertyService) CreateProperty(ctx context.Context, ident helpers.Identity, property *models.Property) (*models.Property, error) {
	if !ident.CanHost() {
		return nil, fmt.Errorf("%w: only hosts can list properties", models.ErrForbidden)
	}

	if err := models.Validate.Struct(property); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	now := time.Now().UTC()
	property.HostID = ident.UserID
	property.Rating = 0
	property.ReviewCount = 0
	property.CreatedAt = now
	property.UpdatedAt = now

	return ps.propertyRepo.CreateProperty(ctx, property)
}

func (ps *PropertyService) ListProperties(ctx context.Context, page, limit int) ([]*models.Property, int64, error) {
	return ps.propertyRepo.ListProperties(ctx, page, limit)
}

func (ps *PropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	propertyID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid property id", models.ErrValidation)
	}
	return ps.propertyRepo.GetPropertyByID(ctx, propertyID)
}

// DeleteProperty removes a listing. Owner only, and blocked while any
// non-cancelled booking still references the property.
func (ps *PropertyService) DeleteProperty(ctx context.Context, ident helpers.Identity, id string) error {
	if !ident.CanHost() {
		return fmt.Errorf("%w: only hosts can delete properties", models.ErrForbidden)
	}

	propertyID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid property id", models.ErrValidation)
	}

	property, err := ps.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if !ident.IsOwner(property.HostID) {
		return fmt.Errorf("%w: you can only delete your own properties", models.ErrForbidden)
	}

	active, err := ps.bookingRepo.CountActiveByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: property has active bookings and cannot be deleted", models.ErrConflict)
	}

	return ps.propertyRepo.DeleteProperty(ctx, propertyID)
}
