package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// How long a property lock may be held before the TTL monitor reaps it.
// Covers a crashed request that never reached ReleasePropertyLock.
const propertyLockTTL = 10 * time.Second

type bookingLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	booking.BeforeCreate()
	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to insert booking: %v", err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
		}
		return nil, fmt.Errorf("error finding booking: %v", err)
	}

	return &booking, nil
}

// detailPipeline joins a booking with its property and host summaries.
func detailPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         PropertiesColName,
			"localField":   "property_id",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$property", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         UsersColName,
			"localField":   "host_id",
			"foreignField": "_id",
			"as":           "host",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$host", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"host.password":         0,
			"host.email":            0,
			"host.role":             0,
			"host.saved_properties": 0,
		}}},
	}
}

func (mdb *MongodbRepo) findBookingDetails(ctx context.Context, match bson.M) ([]*BookingDetail, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Aggregate(ctx, detailPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("error aggregating bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var details []*BookingDetail
	for cursor.Next(ctx) {
		var detail BookingDetail
		if err := cursor.Decode(&detail); err != nil {
			return nil, fmt.Errorf("error decoding booking detail: %v", err)
		}
		details = append(details, &detail)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return details, nil
}

func (mdb *MongodbRepo) GetBookingDetail(ctx context.Context, id primitive.ObjectID) (*BookingDetail, error) {
	details, err := mdb.findBookingDetails(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
	}
	return details[0], nil
}

func (mdb *MongodbRepo) ListBookingsByRenter(ctx context.Context, renterID primitive.ObjectID) ([]*BookingDetail, error) {
	return mdb.findBookingDetails(ctx, bson.M{"renter_id": renterID})
}

func (mdb *MongodbRepo) CancelBooking(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$set": bson.M{
			"status":     BookingCancelled,
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("error cancelling booking: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: booking not found", ErrNotFound)
	}

	return nil
}

// CountActiveOverlapping counts pending/confirmed bookings on the property whose
// half-open [check_in, check_out) intersects the requested range.
func (mdb *MongodbRepo) CountActiveOverlapping(ctx context.Context, propertyID primitive.ObjectID, checkIn, checkOut time.Time) (int64, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$in": bson.A{BookingPending, BookingConfirmed}},
		"check_in":    bson.M{"$lt": checkOut},
		"check_out":   bson.M{"$gt": checkIn},
	}
	count, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %v", err)
	}

	return count, nil
}

func (mdb *MongodbRepo) CountActiveByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$in": bson.A{BookingPending, BookingConfirmed}},
	}
	count, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting active bookings: %v", err)
	}

	return count, nil
}

// DeleteBookingsForUser removes every booking the user touches as renter, host,
// or through a property they host. Used by the account cascade delete.
func (mdb *MongodbRepo) DeleteBookingsForUser(ctx context.Context, userID primitive.ObjectID, hostedPropertyIDs []primitive.ObjectID) error {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	or := bson.A{
		bson.M{"renter_id": userID},
		bson.M{"host_id": userID},
	}
	if len(hostedPropertyIDs) > 0 {
		or = append(or, bson.M{"property_id": bson.M{"$in": hostedPropertyIDs}})
	}

	if _, err := col.DeleteMany(ctx, bson.M{"$or": or}); err != nil {
		return fmt.Errorf("error deleting user bookings: %v", err)
	}

	return nil
}

// AcquirePropertyLock inserts a lock document keyed by the property id. InsertOne
// on a fixed _id is atomic, so exactly one concurrent writer wins; the loser gets
// a duplicate key error surfaced as ErrConflict.
func (mdb *MongodbRepo) AcquirePropertyLock(ctx context.Context, propertyID primitive.ObjectID) error {
	col, err := mdb.GetCollection(BookingLocksColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now().UTC()
	lock := bookingLock{
		ID:        propertyID.Hex(),
		ExpiresAt: now.Add(propertyLockTTL),
		CreatedAt: now,
	}
	if _, err := col.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: property is being booked, try again", ErrConflict)
		}
		return fmt.Errorf("error acquiring property lock: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) ReleasePropertyLock(ctx context.Context, propertyID primitive.ObjectID) error {
	col, err := mdb.GetCollection(BookingLocksColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.DeleteOne(ctx, bson.M{"_id": propertyID.Hex()}); err != nil {
		return fmt.Errorf("error releasing property lock: %v", err)
	}

	return nil
}
