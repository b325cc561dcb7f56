package tips

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	tipsCollectionName = "healthTips"
)

func NewRepository(db *mongo.Database) (Service, error) {
	return &repository{
		collection: db.Collection(tipsCollectionName),
	}, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Create(ctx context.Context, tip HealthTip) (*HealthTip, error) {
	tip.CreatedTime = time.Now()

	res, err := r.collection.InsertOne(ctx, tip)
	if err != nil {
		return nil, fmt.Errorf("error creating health tip: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	tip.Id = &id
	return &tip, nil
}

func (r *repository) Random(ctx context.Context) (*HealthTip, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$sample", Value: bson.M{"size": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error sampling health tips: %w", err)
	}

	var result []*HealthTip
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding health tip: %w", err)
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result[0], nil
}
