package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/stayhaven/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// In-memory repo fakes. They share an events slice so cascade ordering can be
// asserted, and the booking fake records lock acquire/release pairs.

type fakeStore struct {
	users      map[primitive.ObjectID]*models.User
	properties map[primitive.ObjectID]*models.Property
	bookings   map[primitive.ObjectID]*models.Booking
	reviews    map[primitive.ObjectID]*models.Review

	events     []string
	lockHeld   map[string]bool
	lockEvents []string
	failLock   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[primitive.ObjectID]*models.User),
		properties: make(map[primitive.ObjectID]*models.Property),
		bookings:   make(map[primitive.ObjectID]*models.Booking),
		reviews:    make(map[primitive.ObjectID]*models.Review),
		lockHeld:   make(map[string]bool),
	}
}

// UserRepo

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("%w: email already exists", models.ErrValidation)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	delete(f.users, id)
	f.events = append(f.events, "delete_user")
	return nil
}

// PropertyRepo

func (f *fakeStore) CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	property.BeforeCreate()
	f.properties[property.ID] = property
	return property, nil
}

func (f *fakeStore) GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	property, ok := f.properties[id]
	if !ok {
		return nil, fmt.Errorf("%w: property not found", models.ErrNotFound)
	}
	return property, nil
}

func (f *fakeStore) ListProperties(ctx context.Context, page, limit int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	for _, p := range f.properties {
		properties = append(properties, p)
	}
	sort.Slice(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})
	total := int64(len(properties))
	start := (page - 1) * limit
	if start > len(properties) {
		start = len(properties)
	}
	end := start + limit
	if end > len(properties) {
		end = len(properties)
	}
	return properties[start:end], total, nil
}

func (f *fakeStore) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.properties[id]; !ok {
		return fmt.Errorf("%w: property not found", models.ErrNotFound)
	}
	delete(f.properties, id)
	return nil
}

func (f *fakeStore) UpdatePropertyRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	property, ok := f.properties[id]
	if !ok {
		return fmt.Errorf("%w: property not found", models.ErrNotFound)
	}
	property.Rating = rating
	property.ReviewCount = reviewCount
	return nil
}

func (f *fakeStore) ListPropertyIDsByHost(ctx context.Context, hostID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, p := range f.properties {
		if p.HostID == hostID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (f *fakeStore) DeletePropertiesByHost(ctx context.Context, hostID primitive.ObjectID) error {
	for id, p := range f.properties {
		if p.HostID == hostID {
			delete(f.properties, id)
		}
	}
	f.events = append(f.events, "delete_properties")
	return nil
}

// BookingRepo

func (f *fakeStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.BeforeCreate()
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeStore) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	return booking, nil
}

func (f *fakeStore) GetBookingDetail(ctx context.Context, id primitive.ObjectID) (*models.BookingDetail, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	detail := &models.BookingDetail{Booking: *booking}
	if property, ok := f.properties[booking.PropertyID]; ok {
		detail.Property = &models.PropertySummary{
			ID:            property.ID,
			Title:         property.Title,
			Location:      property.Location,
			Images:        property.Images,
			PricePerNight: property.PricePerNight,
		}
	}
	if host, ok := f.users[booking.HostID]; ok {
		detail.Host = &models.UserSummary{ID: host.ID, Name: host.Name}
	}
	return detail, nil
}

func (f *fakeStore) ListBookingsByRenter(ctx context.Context, renterID primitive.ObjectID) ([]*models.BookingDetail, error) {
	var details []*models.BookingDetail
	for id, b := range f.bookings {
		if b.RenterID == renterID {
			detail, err := f.GetBookingDetail(ctx, id)
			if err != nil {
				return nil, err
			}
			details = append(details, detail)
		}
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})
	return details, nil
}

func (f *fakeStore) CancelBooking(ctx context.Context, id primitive.ObjectID) error {
	booking, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	booking.Status = models.BookingCancelled
	booking.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeStore) CountActiveOverlapping(ctx context.Context, propertyID primitive.ObjectID, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.PropertyID == propertyID && b.Status.Active() && models.Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountActiveByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.PropertyID == propertyID && b.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) DeleteBookingsForUser(ctx context.Context, userID primitive.ObjectID, hostedPropertyIDs []primitive.ObjectID) error {
	hosted := make(map[primitive.ObjectID]bool, len(hostedPropertyIDs))
	for _, id := range hostedPropertyIDs {
		hosted[id] = true
	}
	for id, b := range f.bookings {
		if b.RenterID == userID || b.HostID == userID || hosted[b.PropertyID] {
			delete(f.bookings, id)
		}
	}
	f.events = append(f.events, "delete_bookings")
	return nil
}

func (f *fakeStore) AcquirePropertyLock(ctx context.Context, propertyID primitive.ObjectID) error {
	if f.failLock || f.lockHeld[propertyID.Hex()] {
		return fmt.Errorf("%w: property is being booked, try again", models.ErrConflict)
	}
	f.lockHeld[propertyID.Hex()] = true
	f.lockEvents = append(f.lockEvents, "acquire")
	return nil
}

func (f *fakeStore) ReleasePropertyLock(ctx context.Context, propertyID primitive.ObjectID) error {
	delete(f.lockHeld, propertyID.Hex())
	f.lockEvents = append(f.lockEvents, "release")
	return nil
}

// ReviewRepo

func (f *fakeStore) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}
	for _, r := range f.reviews {
		if r.BookingID == review.BookingID {
			return nil, fmt.Errorf("%w: you have already reviewed this stay", models.ErrConflict)
		}
	}
	review.BeforeCreate()
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeStore) PropertyRatingSummary(ctx context.Context, propertyID primitive.ObjectID) (*models.RatingSummary, error) {
	summary := &models.RatingSummary{}
	var total int
	for _, r := range f.reviews {
		if r.PropertyID == propertyID {
			summary.ReviewCount++
			total += r.Rating
		}
	}
	if summary.ReviewCount > 0 {
		summary.AvgRating = float64(total) / float64(summary.ReviewCount)
	}
	return summary, nil
}
