package reminders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	remindersCollectionName = "reminders"
)

type Repository interface {
	Create(ctx context.Context, reminder Reminder) (*Reminder, error)
	Get(ctx context.Context, reminderId string) (*Reminder, error)
	Update(ctx context.Context, reminderId string, update StatusUpdate) (*Reminder, error)
	List(ctx context.Context, filter *Filter) ([]*Reminder, error)
	Count(ctx context.Context, filter *Filter) (int64, error)
	MarkMissed(ctx context.Context, now time.Time) (int64, error)
	SetNotificationSent(ctx context.Context, reminderId string) error
}

// StatusUpdate is the persisted part of a status transition.
type StatusUpdate struct {
	Status         string
	Notes          *string
	CompletionDate *time.Time
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(remindersCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "dueDate", Value: 1},
			},
			Options: options.Index().SetName("PatientDueDate"),
		},
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "dueDate", Value: 1},
			},
			Options: options.Index().SetName("ProviderDueDate"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, reminder Reminder) (*Reminder, error) {
	reminder.CreatedTime = time.Now()
	reminder.UpdatedTime = reminder.CreatedTime

	res, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("error creating reminder: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, id.Hex())
}

func (r *repository) Get(ctx context.Context, reminderId string) (*Reminder, error) {
	id, err := primitive.ObjectIDFromHex(reminderId)
	if err != nil {
		return nil, ErrNotFound
	}

	reminder := &Reminder{}
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(reminder)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return reminder, nil
}

func (r *repository) Update(ctx context.Context, reminderId string, update StatusUpdate) (*Reminder, error) {
	id, err := primitive.ObjectIDFromHex(reminderId)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{
		"status":      update.Status,
		"updatedTime": time.Now(),
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.CompletionDate != nil {
		set["completionDate"] = *update.CompletionDate
	}

	reminder := &Reminder{}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(reminder)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return reminder, nil
}

func (r *repository) List(ctx context.Context, filter *Filter) ([]*Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, selectorFromFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}

	var result []*Reminder
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding reminder list: %w", err)
	}

	return result, nil
}

func (r *repository) Count(ctx context.Context, filter *Filter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, selectorFromFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("error counting reminders: %w", err)
	}
	return count, nil
}

// MarkMissed transitions every upcoming reminder whose due date has passed.
func (r *repository) MarkMissed(ctx context.Context, now time.Time) (int64, error) {
	selector := bson.M{
		"status":  StatusUpcoming,
		"dueDate": bson.M{"$lt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"status":      StatusMissed,
			"updatedTime": now,
		},
	}

	res, err := r.collection.UpdateMany(ctx, selector, update)
	if err != nil {
		return 0, fmt.Errorf("error marking missed reminders: %w", err)
	}

	return res.ModifiedCount, nil
}

func (r *repository) SetNotificationSent(ctx context.Context, reminderId string) error {
	id, err := primitive.ObjectIDFromHex(reminderId)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"notificationSent": true},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func selectorFromFilter(filter *Filter) bson.M {
	selector := bson.M{}
	if filter == nil {
		return selector
	}
	if filter.PatientId != nil {
		if id, err := primitive.ObjectIDFromHex(*filter.PatientId); err == nil {
			selector["patientId"] = id
		}
	}
	if len(filter.PatientIds) > 0 {
		selector["patientId"] = bson.M{"$in": filter.PatientIds}
	}
	if filter.ProviderId != nil {
		if id, err := primitive.ObjectIDFromHex(*filter.ProviderId); err == nil {
			selector["providerId"] = id
		}
	}
	if filter.Status != nil {
		selector["status"] = *filter.Status
	}
	if filter.Priority != nil {
		selector["priority"] = *filter.Priority
	}
	dueDate := bson.M{}
	if filter.DueAfter != nil {
		dueDate["$gte"] = *filter.DueAfter
	}
	if filter.DueBefore != nil {
		dueDate["$lt"] = *filter.DueBefore
	}
	if len(dueDate) > 0 {
		selector["dueDate"] = dueDate
	}

	return selector
}
