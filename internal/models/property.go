package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Property struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title" validate:"required"`
	Description   string             `bson:"description" json:"description" validate:"required"`
	Location      string             `bson:"location" json:"location" validate:"required"`
	PricePerNight float64            `bson:"price_per_night" json:"price_per_night" validate:"required,gt=0"`
	Images        []string           `bson:"images" json:"images"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	Bedrooms      int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms     int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	MaxGuests     int                `bson:"max_guests,omitempty" json:"max_guests,omitempty"`
	HostID        primitive.ObjectID `bson:"host_id" json:"host_id"`

	// Derived aggregates, recomputed whenever a review is created.
	Rating      float64 `bson:"rating" json:"rating"`
	ReviewCount int     `bson:"review_count" json:"review_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (p *Property) BeforeCreate() {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
}

// PropertySummary is the slice of a property embedded in booking views.
type PropertySummary struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Location      string             `bson:"location" json:"location"`
	Images        []string           `bson:"images" json:"images"`
	PricePerNight float64            `bson:"price_per_night" json:"price_per_night"`
}

type PropertyRepo interface {
	CreateProperty(ctx context.Context, property *Property) (*Property, error)
	GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*Property, error)
	ListProperties(ctx context.Context, page, limit int) ([]*Property, int64, error)
	DeleteProperty(ctx context.Context, id primitive.ObjectID) error
	UpdatePropertyRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error
	ListPropertyIDsByHost(ctx context.Context, hostID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeletePropertiesByHost(ctx context.Context, hostID primitive.ObjectID) error
}
