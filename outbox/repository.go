package outbox

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type repository struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(CollectionName),
		logger:     logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "eventType", Value: 1},
				{Key: "createdTime", Value: 1},
			},
			Options: options.Index().SetName("EventTypeCreatedTime"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, event Event) (*Event, error) {
	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("error creating outbox event: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	event.Id = &id
	return &event, nil
}

func (r *repository) MarkProcessed(ctx context.Context, eventId primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": eventId}, bson.M{
		"$set": bson.M{"processedTime": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("error marking outbox event as processed: %w", err)
	}

	return nil
}
