package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService struct {
	bookingRepo  models.BookingRepo
	propertyRepo models.PropertyRepo
}

func NewBookingService(bookingRepo models.BookingRepo, propertyRepo models.PropertyRepo) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

// CreateBooking validates the request, serializes the overlap check-then-insert
// on a per-property lock, snapshots the price, and persists an auto-confirmed
// booking.
func (bs *BookingService) CreateBooking(ctx context.Context, ident helpers.Identity, in models.CreateBookingInput) (*models.BookingDetail, error) {
	if !ident.CanBook() {
		return nil, fmt.Errorf("%w: only renters can book properties", models.ErrForbidden)
	}

	if err := models.Validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: property_id, check_in, and check_out are required", models.ErrValidation)
	}

	propertyID, err := primitive.ObjectIDFromHex(in.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid property id", models.ErrValidation)
	}

	checkIn, err := helpers.ParseDate(in.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-in date", models.ErrValidation)
	}
	checkOut, err := helpers.ParseDate(in.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-out date", models.ErrValidation)
	}

	today := helpers.StartOfDay(time.Now())
	if checkIn.Before(today) {
		return nil, fmt.Errorf("%w: check-in date cannot be in the past", models.ErrValidation)
	}

	nights := helpers.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: check-out must be after check-in", models.ErrValidation)
	}

	property, err := bs.propertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	// The overlap check and insert must not interleave with a concurrent
	// request for the same property.
	if err := bs.bookingRepo.AcquirePropertyLock(ctx, propertyID); err != nil {
		return nil, err
	}
	defer bs.bookingRepo.ReleasePropertyLock(ctx, propertyID)

	conflicts, err := bs.bookingRepo.CountActiveOverlapping(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, fmt.Errorf("%w: selected dates are not available", models.ErrConflict)
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		RenterID:   ident.UserID,
		PropertyID: property.ID,
		HostID:     property.HostID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     nights,
		TotalPrice: helpers.Round2(float64(nights) * property.PricePerNight),
		Status:     models.BookingConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	return bs.bookingRepo.GetBookingDetail(ctx, created.ID)
}

func (bs *BookingService) ListBookings(ctx context.Context, ident helpers.Identity) ([]*models.BookingDetail, error) {
	if !ident.CanBook() {
		return nil, fmt.Errorf("%w: only renters have bookings", models.ErrForbidden)
	}
	return bs.bookingRepo.ListBookingsByRenter(ctx, ident.UserID)
}

func (bs *BookingService) GetBooking(ctx context.Context, ident helpers.Identity, id string) (*models.BookingDetail, error) {
	if !ident.CanBook() {
		return nil, fmt.Errorf("%w: only renters have bookings", models.ErrForbidden)
	}

	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", models.ErrValidation)
	}

	detail, err := bs.bookingRepo.GetBookingDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.RenterID != ident.UserID {
		// Do not reveal other renters' bookings.
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}

	return detail, nil
}

// CancelBooking flips a booking to cancelled. One-way transition, only before
// the check-in day.
func (bs *BookingService) CancelBooking(ctx context.Context, ident helpers.Identity, id string, in models.UpdateBookingInput) (*models.BookingDetail, error) {
	if !ident.CanBook() {
		return nil, fmt.Errorf("%w: only renters can cancel bookings", models.ErrForbidden)
	}

	if in.Action != "cancel" {
		return nil, fmt.Errorf("%w: only cancel action is supported", models.ErrValidation)
	}

	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", models.ErrValidation)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != ident.UserID {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}

	if booking.Status == models.BookingCancelled {
		return nil, fmt.Errorf("%w: booking is already cancelled", models.ErrValidation)
	}

	today := helpers.StartOfDay(time.Now())
	if !helpers.StartOfDay(booking.CheckIn).After(today) {
		return nil, fmt.Errorf("%w: booking cannot be cancelled on or after check-in date", models.ErrValidation)
	}

	if err := bs.bookingRepo.CancelBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	return bs.bookingRepo.GetBookingDetail(ctx, bookingID)
}
