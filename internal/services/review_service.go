package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviewRepo   models.ReviewRepo
	bookingRepo  models.BookingRepo
	propertyRepo models.PropertyRepo
}

func NewReviewService(reviewRepo models.ReviewRepo, bookingRepo models.BookingRepo, propertyRepo models.PropertyRepo) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

// CreateReview records a one-time review for a completed stay and recomputes
// the property's aggregate rating.
func (rs *ReviewService) CreateReview(ctx context.Context, ident helpers.Identity, in models.CreateReviewInput) (*models.ReviewCreated, error) {
	if !ident.CanBook() {
		return nil, fmt.Errorf("%w: only renters can write reviews", models.ErrForbidden)
	}

	bookingID, err := primitive.ObjectIDFromHex(in.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", models.ErrValidation)
	}

	review := &models.Review{Rating: in.Rating, Comment: in.Comment}
	review.Sanitize()
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}

	booking, err := rs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RenterID != ident.UserID {
		return nil, fmt.Errorf("%w: you can review only your own stays", models.ErrForbidden)
	}
	if booking.Status != models.BookingConfirmed {
		return nil, fmt.Errorf("%w: only confirmed bookings can be reviewed", models.ErrValidation)
	}

	today := helpers.StartOfDay(time.Now())
	if !helpers.StartOfDay(booking.CheckOut).Before(today) {
		return nil, fmt.Errorf("%w: you can review after your stay is completed", models.ErrValidation)
	}

	review.BookingID = booking.ID
	review.PropertyID = booking.PropertyID
	review.HostID = booking.HostID
	review.RenterID = booking.RenterID
	review.CreatedAt = time.Now().UTC()

	// Uniqueness per booking is enforced by the store's unique index, which is
	// what keeps concurrent duplicate submissions safe.
	created, err := rs.reviewRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	summary, err := rs.reviewRepo.PropertyRatingSummary(ctx, booking.PropertyID)
	if err != nil {
		return nil, err
	}
	rating := helpers.Round2(summary.AvgRating)
	if err := rs.propertyRepo.UpdatePropertyRating(ctx, booking.PropertyID, rating, summary.ReviewCount); err != nil {
		return nil, err
	}

	return &models.ReviewCreated{
		ID:        created.ID,
		BookingID: created.BookingID,
		Rating:    created.Rating,
		Comment:   created.Comment,
		CreatedAt: created.CreatedAt,
	}, nil
}
