package metrics

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/errors"
)

var ErrNotFound = fmt.Errorf("wellness metric %w", errors.NotFound)

// Default goals seeded on the first record of a day.
const (
	DefaultStepGoal       = 8000
	DefaultSleepGoal      = 8.0
	DefaultWaterGoal      = 2.0
	DefaultActiveTimeGoal = 30
)

//go:generate mockgen --build_flags=--mod=mod -source=./metrics.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	// UpsertToday merges the supplied fields into today's record for the
	// patient, creating it if it does not exist yet.
	UpsertToday(ctx context.Context, patientId string, update Update) (*WellnessMetric, error)
	Today(ctx context.Context, patientId string) (*WellnessMetric, error)
	History(ctx context.Context, patientId string, windowDays int) ([]*WellnessMetric, error)
}

// WellnessMetric is a single day of self reported measurements. Day is the
// canonical UTC start of day; together with PatientId it uniquely identifies
// the record.
type WellnessMetric struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientId      *primitive.ObjectID `bson:"patientId,omitempty" json:"patientId,omitempty"`
	Date           time.Time           `bson:"date,omitempty" json:"date,omitempty"`
	Day            time.Time           `bson:"day,omitempty" json:"-"`
	Steps          int64               `bson:"steps" json:"steps"`
	StepGoal       int64               `bson:"stepGoal" json:"stepGoal"`
	SleepHours     float64             `bson:"sleepHours" json:"sleepHours"`
	SleepGoal      float64             `bson:"sleepGoal" json:"sleepGoal"`
	WaterIntake    float64             `bson:"waterIntake" json:"waterIntake"`
	WaterGoal      float64             `bson:"waterGoal" json:"waterGoal"`
	ActiveTime     int                 `bson:"activeTime" json:"activeTime"`
	ActiveTimeGoal int                 `bson:"activeTimeGoal" json:"activeTimeGoal"`
	CaloriesBurned int                 `bson:"caloriesBurned" json:"caloriesBurned"`
	HeartRate      *int                `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	BloodPressure  *BloodPressure      `bson:"bloodPressure,omitempty" json:"bloodPressure,omitempty"`
	Notes          string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedTime    time.Time           `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
	UpdatedTime    time.Time           `bson:"updatedTime,omitempty" json:"updatedTime,omitempty"`
}

type BloodPressure struct {
	Systolic  int `bson:"systolic" json:"systolic"`
	Diastolic int `bson:"diastolic" json:"diastolic"`
}

// Update carries the fields supplied by the patient. Nil and zero values are
// both treated as absent and leave the stored values untouched.
type Update struct {
	Steps          *int64
	SleepHours     *float64
	WaterIntake    *float64
	ActiveTime     *int
	CaloriesBurned *int
	HeartRate      *int
	BloodPressure  *BloodPressure
	Notes          *string
}

// DefaultMetric is the zero-valued record returned when a patient has not
// logged anything today.
func DefaultMetric() *WellnessMetric {
	return &WellnessMetric{
		StepGoal:       DefaultStepGoal,
		SleepGoal:      DefaultSleepGoal,
		WaterGoal:      DefaultWaterGoal,
		ActiveTimeGoal: DefaultActiveTimeGoal,
	}
}
