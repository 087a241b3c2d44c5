package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateReview inserts the review. The unique index on booking_id is the
// concurrency guard: a concurrent duplicate submission loses with ErrConflict.
func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}

	review.BeforeCreate()
	col, err := mdb.GetCollection(ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: you have already reviewed this stay", ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert review: %v", err)
	}

	return review, nil
}

// PropertyRatingSummary computes the mean rating and review count for a property
// by scanning all of its reviews. Recompute-on-write keeps property reads cheap.
func (mdb *MongodbRepo) PropertyRatingSummary(ctx context.Context, propertyID primitive.ObjectID) (*RatingSummary, error) {
	col, err := mdb.GetCollection(ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"property_id": propertyID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$property_id",
			"avg_rating":   bson.M{"$avg": "$rating"},
			"review_count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating reviews: %v", err)
	}
	defer cursor.Close(ctx)

	summary := &RatingSummary{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(summary); err != nil {
			return nil, fmt.Errorf("error decoding rating summary: %v", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return summary, nil
}
