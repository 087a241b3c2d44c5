package models

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinCommentLength = 3
	MaxCommentLength = 500
)

// Review is written once per booking after the stay completed; never updated.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID  primitive.ObjectID `bson:"booking_id" json:"booking_id"`
	PropertyID primitive.ObjectID `bson:"property_id" json:"property_id"`
	HostID     primitive.ObjectID `bson:"host_id" json:"host_id"`
	RenterID   primitive.ObjectID `bson:"renter_id" json:"renter_id"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

func (r *Review) BeforeCreate() {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
}

func (r *Review) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r Review) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be an integer between 1 and 5", ErrValidation)
	}
	if n := utf8.RuneCountInString(r.Comment); n < MinCommentLength || n > MaxCommentLength {
		return fmt.Errorf("%w: comment must be between %d and %d characters", ErrValidation, MinCommentLength, MaxCommentLength)
	}
	return nil
}

type CreateReviewInput struct {
	BookingID string `json:"booking_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
}

// ReviewCreated is the payload returned after a successful submission.
type ReviewCreated struct {
	ID        primitive.ObjectID `json:"id"`
	BookingID primitive.ObjectID `json:"booking_id"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt time.Time          `json:"created_at"`
}

// RatingSummary is the aggregate recomputed for a property on every new review.
type RatingSummary struct {
	AvgRating   float64 `bson:"avg_rating"`
	ReviewCount int     `bson:"review_count"`
}

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	PropertyRatingSummary(ctx context.Context, propertyID primitive.ObjectID) (*RatingSummary, error)
}
