package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhaven/api/internal/helpers"
	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// seedCompletedStay stores a confirmed booking whose stay ended yesterday.
func seedCompletedStay(store *fakeStore, property *models.Property, renterID primitive.ObjectID) *models.Booking {
	today := helpers.StartOfDay(time.Now())
	booking := &models.Booking{
		ID:         primitive.NewObjectID(),
		RenterID:   renterID,
		PropertyID: property.ID,
		HostID:     property.HostID,
		CheckIn:    today.AddDate(0, 0, -4),
		CheckOut:   today.AddDate(0, 0, -1),
		Nights:     3,
		TotalPrice: 300,
		Status:     models.BookingConfirmed,
		CreatedAt:  time.Now().UTC(),
	}
	store.bookings[booking.ID] = booking
	return booking
}

func TestCreateReviewUpdatesPropertyAggregate(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	ident := renterIdentity()
	booking := seedCompletedStay(store, property, ident.UserID)

	created, err := svc.CreateReview(context.Background(), ident, models.CreateReviewInput{
		BookingID: booking.ID.Hex(),
		Rating:    4,
		Comment:   "Lovely place, clean and quiet.",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, created.BookingID)
	assert.Equal(t, 4, created.Rating)

	assert.Equal(t, 4.0, property.Rating)
	assert.Equal(t, 1, property.ReviewCount)

	// A second stay's review moves the mean.
	other := renterIdentity()
	second := seedCompletedStay(store, property, other.UserID)
	_, err = svc.CreateReview(context.Background(), other, models.CreateReviewInput{
		BookingID: second.ID.Hex(),
		Rating:    5,
		Comment:   "Great host!",
	})
	require.NoError(t, err)
	assert.Equal(t, 4.5, property.Rating)
	assert.Equal(t, 2, property.ReviewCount)
}

func TestCreateReviewRoundsAggregateToTwoDecimals(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)

	ratings := []int{4, 4, 5}
	for _, rating := range ratings {
		ident := renterIdentity()
		booking := seedCompletedStay(store, property, ident.UserID)
		_, err := svc.CreateReview(context.Background(), ident, models.CreateReviewInput{
			BookingID: booking.ID.Hex(),
			Rating:    rating,
			Comment:   "Comfortable stay overall.",
		})
		require.NoError(t, err)
	}

	// mean of 4,4,5 = 4.333... stored as 4.33
	assert.Equal(t, 4.33, property.Rating)
	assert.Equal(t, 3, property.ReviewCount)
}

func TestCreateReviewDuplicateConflict(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	ident := renterIdentity()
	booking := seedCompletedStay(store, property, ident.UserID)

	in := models.CreateReviewInput{
		BookingID: booking.ID.Hex(),
		Rating:    5,
		Comment:   "Would stay again.",
	}
	_, err := svc.CreateReview(context.Background(), ident, in)
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), ident, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConflict))
}

func TestCreateReviewOnlyOwnStay(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	booking := seedCompletedStay(store, property, primitive.NewObjectID())

	_, err := svc.CreateReview(context.Background(), renterIdentity(), models.CreateReviewInput{
		BookingID: booking.ID.Hex(),
		Rating:    4,
		Comment:   "Not my stay though.",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrForbidden))
}

func TestCreateReviewRequiresConfirmedBooking(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	ident := renterIdentity()
	booking := seedCompletedStay(store, property, ident.UserID)
	booking.Status = models.BookingCancelled

	_, err := svc.CreateReview(context.Background(), ident, models.CreateReviewInput{
		BookingID: booking.ID.Hex(),
		Rating:    4,
		Comment:   "Cancelled but trying anyway.",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestCreateReviewRequiresCompletedStay(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	ident := renterIdentity()

	today := helpers.StartOfDay(time.Now())
	booking := &models.Booking{
		ID:         primitive.NewObjectID(),
		RenterID:   ident.UserID,
		PropertyID: property.ID,
		HostID:     property.HostID,
		CheckIn:    today.AddDate(0, 0, -2),
		CheckOut:   today, // checking out today, stay not completed yet
		Nights:     2,
		TotalPrice: 200,
		Status:     models.BookingConfirmed,
	}
	store.bookings[booking.ID] = booking

	_, err := svc.CreateReview(context.Background(), ident, models.CreateReviewInput{
		BookingID: booking.ID.Hex(),
		Rating:    4,
		Comment:   "A bit early for this.",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.Contains(t, err.Error(), "completed")
}

func TestCreateReviewInputBounds(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	ident := renterIdentity()
	booking := seedCompletedStay(store, property, ident.UserID)

	cases := []struct {
		name    string
		rating  int
		comment string
	}{
		{"rating too low", 0, "Fine stay."},
		{"rating too high", 6, "Fine stay."},
		{"comment too short", 4, "ok"},
		{"comment too long", 4, strings.Repeat("a", 501)},
		{"comment whitespace only", 4, "   "},
		{"two accented characters", 4, "éé"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateReview(context.Background(), ident, models.CreateReviewInput{
				BookingID: booking.ID.Hex(),
				Rating:    tc.rating,
				Comment:   tc.comment,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrValidation))
		})
	}
}

func TestCreateReviewAcceptsMultibyteComment(t *testing.T) {
	store := newFakeStore()
	property := seedProperty(store, 100)
	svc := NewReviewService(store, store, store)
	ident := renterIdentity()
	booking := seedCompletedStay(store, property, ident.UserID)

	// 200 characters, 600 bytes. Length bounds count characters.
	created, err := svc.CreateReview(context.Background(), ident, models.CreateReviewInput{
		BookingID: booking.ID.Hex(),
		Rating:    5,
		Comment:   strings.Repeat("宿", 200),
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("宿", 200), created.Comment)
}

func TestCreateReviewInvalidBookingID(t *testing.T) {
	store := newFakeStore()
	svc := NewReviewService(store, store, store)

	_, err := svc.CreateReview(context.Background(), renterIdentity(), models.CreateReviewInput{
		BookingID: "not-an-id",
		Rating:    4,
		Comment:   "Pleasant enough.",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}
