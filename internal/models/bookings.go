package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Active reports whether the booking still blocks its date range.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RenterID   primitive.ObjectID `bson:"renter_id" json:"renter_id"`
	PropertyID primitive.ObjectID `bson:"property_id" json:"property_id"`
	HostID     primitive.ObjectID `bson:"host_id" json:"host_id"`
	// CheckIn is inclusive, CheckOut exclusive; both normalized to midnight UTC.
	CheckIn    time.Time     `bson:"check_in" json:"check_in"`
	CheckOut   time.Time     `bson:"check_out" json:"check_out"`
	Nights     int           `bson:"nights" json:"nights"`
	TotalPrice float64       `bson:"total_price" json:"total_price"`
	Status     BookingStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}

func (b *Booking) BeforeCreate() {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
}

// BookingDetail is a booking joined with its property and host summaries,
// the shape returned to renters.
type BookingDetail struct {
	Booking  `bson:",inline"`
	Property *PropertySummary `bson:"property,omitempty" json:"property,omitempty"`
	Host     *UserSummary     `bson:"host,omitempty" json:"host,omitempty"`
}

// Overlaps is the half-open interval test: [aStart, aEnd) intersects [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

type CreateBookingInput struct {
	PropertyID string `json:"property_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
}

type UpdateBookingInput struct {
	Action string `json:"action" validate:"required"`
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetBookingDetail(ctx context.Context, id primitive.ObjectID) (*BookingDetail, error)
	ListBookingsByRenter(ctx context.Context, renterID primitive.ObjectID) ([]*BookingDetail, error)
	CancelBooking(ctx context.Context, id primitive.ObjectID) error
	CountActiveOverlapping(ctx context.Context, propertyID primitive.ObjectID, checkIn, checkOut time.Time) (int64, error)
	CountActiveByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error)
	DeleteBookingsForUser(ctx context.Context, userID primitive.ObjectID, hostedPropertyIDs []primitive.ObjectID) error

	// Per-property advisory lock serializing the overlap check-then-insert.
	AcquirePropertyLock(ctx context.Context, propertyID primitive.ObjectID) error
	ReleasePropertyLock(ctx context.Context, propertyID primitive.ObjectID) error
}
