package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateProperty(ctx context.Context, property *Property) (*Property, error) {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	property.BeforeCreate()
	if _, err := col.InsertOne(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to insert property: %v", err)
	}

	return property, nil
}

func (mdb *MongodbRepo) GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*Property, error) {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var property Property
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: property not found", ErrNotFound)
		}
		return nil, fmt.Errorf("error finding property: %v", err)
	}

	return &property, nil
}

func (mdb *MongodbRepo) ListProperties(ctx context.Context, page, limit int) ([]*Property, int64, error) {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting properties: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding properties: %v", err)
	}
	defer cursor.Close(ctx)

	var properties []*Property
	for cursor.Next(ctx) {
		var property Property
		if err := cursor.Decode(&property); err != nil {
			return nil, 0, fmt.Errorf("error decoding property: %v", err)
		}
		properties = append(properties, &property)
	}

	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return properties, total, nil
}

func (mdb *MongodbRepo) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting property: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: property not found", ErrNotFound)
	}

	return nil
}

func (mdb *MongodbRepo) UpdatePropertyRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$set": bson.M{
			"rating":       rating,
			"review_count": reviewCount,
			"updated_at":   time.Now().UTC(),
		},
	}
	if _, err := col.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("error updating property rating: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) ListPropertyIDsByHost(ctx context.Context, hostID primitive.ObjectID) ([]primitive.ObjectID, error) {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := col.Find(ctx, bson.M{"host_id": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding host properties: %v", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding property id: %v", err)
		}
		ids = append(ids, doc.ID)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return ids, nil
}

func (mdb *MongodbRepo) DeletePropertiesByHost(ctx context.Context, hostID primitive.ObjectID) error {
	col, err := mdb.GetCollection(PropertiesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.DeleteMany(ctx, bson.M{"host_id": hostID}); err != nil {
		return fmt.Errorf("error deleting host properties: %v", err)
	}

	return nil
}
