package services

import (
	"context"
	"fmt"

	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService struct {
	userRepo     models.UserRepo
	propertyRepo models.PropertyRepo
	bookingRepo  models.BookingRepo
}

func NewAdminService(userRepo models.UserRepo, propertyRepo models.PropertyRepo, bookingRepo models.BookingRepo) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
	}
}

func (as *AdminService) ListUsers(ctx context.Context, ident helpers.Identity) ([]*models.User, error) {
	if !ident.CanAdminister() {
		return nil, fmt.Errorf("%w: admin access required", models.ErrForbidden)
	}
	return as.userRepo.ListUsers(ctx)
}

// DeleteUser cascades an account deletion. Order matters: bookings go first,
// then hosted properties, then the user record, so no booking is ever left
// pointing at a property whose ownership has been severed.
func (as *AdminService) DeleteUser(ctx context.Context, ident helpers.Identity, id string) error {
	if !ident.CanAdminister() {
		return fmt.Errorf("%w: admin access required", models.ErrForbidden)
	}

	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", models.ErrValidation)
	}

	if ident.UserID == userID {
		return fmt.Errorf("%w: you cannot delete your own account here", models.ErrValidation)
	}

	target, err := as.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	hostedIDs, err := as.propertyRepo.ListPropertyIDsByHost(ctx, target.ID)
	if err != nil {
		return err
	}

	if err := as.bookingRepo.DeleteBookingsForUser(ctx, target.ID, hostedIDs); err != nil {
		return err
	}
	if err := as.propertyRepo.DeletePropertiesByHost(ctx, target.ID); err != nil {
		return err
	}
	return as.userRepo.DeleteUser(ctx, target.ID)
}
