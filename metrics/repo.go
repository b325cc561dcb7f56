package metrics

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/carewell/portal/store"
)

const (
	metricsCollectionName = "wellnessMetrics"
)

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Service, error) {
	repo := &repository{
		collection: db.Collection(metricsCollectionName),
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
			// At most one record per patient per calendar day
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "day", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueMetricPerDay"),
		},
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().
				SetName("MetricHistory"),
		},
	})
	return err
}

// UpsertToday is a single atomic find-and-modify keyed by (patientId, day),
// so two concurrent writes for the same day cannot create two records.
func (r *repository) UpsertToday(ctx context.Context, patientId string, update Update) (*WellnessMetric, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	day := store.StartOfDay(now)

	set := bson.M{
		"updatedTime": now,
	}
	// Zero values are treated the same as absent fields and never overwrite
	// a previously logged value.
	if update.Steps != nil && *update.Steps != 0 {
		set["steps"] = *update.Steps
	}
	if update.SleepHours != nil && *update.SleepHours != 0 {
		set["sleepHours"] = *update.SleepHours
	}
	if update.WaterIntake != nil && *update.WaterIntake != 0 {
		set["waterIntake"] = *update.WaterIntake
	}
	if update.ActiveTime != nil && *update.ActiveTime != 0 {
		set["activeTime"] = *update.ActiveTime
	}
	if update.CaloriesBurned != nil && *update.CaloriesBurned != 0 {
		set["caloriesBurned"] = *update.CaloriesBurned
	}
	if update.HeartRate != nil && *update.HeartRate != 0 {
		set["heartRate"] = *update.HeartRate
	}
	if update.BloodPressure != nil {
		set["bloodPressure"] = *update.BloodPressure
	}
	if update.Notes != nil && *update.Notes != "" {
		set["notes"] = *update.Notes
	}

	setOnInsert := bson.M{
		"patientId":      patientObjId,
		"date":           now,
		"day":            day,
		"stepGoal":       DefaultStepGoal,
		"sleepGoal":      DefaultSleepGoal,
		"waterGoal":      DefaultWaterGoal,
		"activeTimeGoal": DefaultActiveTimeGoal,
		"createdTime":    now,
	}
	// Unsupplied measurements default to zero on first insert
	for _, field := range []string{"steps", "sleepHours", "waterIntake", "activeTime", "caloriesBurned"} {
		if _, ok := set[field]; !ok {
			setOnInsert[field] = 0
		}
	}

	selector := bson.M{
		"patientId": patientObjId,
		"day":       day,
	}
	mutation := bson.M{
		"$set":         set,
		"$setOnInsert": setOnInsert,
	}

	metric := &WellnessMetric{}
	err = r.collection.FindOneAndUpdate(ctx, selector, mutation,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(metric)
	if err != nil {
		return nil, fmt.Errorf("error upserting wellness metric: %w", err)
	}

	return metric, nil
}

func (r *repository) Today(ctx context.Context, patientId string) (*WellnessMetric, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, ErrNotFound
	}

	selector := bson.M{
		"patientId": patientObjId,
		"day":       store.StartOfDay(time.Now()),
	}

	metric := &WellnessMetric{}
	err = r.collection.FindOne(ctx, selector).Decode(metric)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return metric, nil
}

func (r *repository) History(ctx context.Context, patientId string, windowDays int) ([]*WellnessMetric, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, ErrNotFound
	}

	start := time.Now().AddDate(0, 0, -windowDays)
	selector := bson.M{
		"patientId": patientObjId,
		"date":      bson.M{"$gte": start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing wellness metrics: %w", err)
	}

	var result []*WellnessMetric
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding wellness metric list: %w", err)
	}

	return result, nil
}
