package tips

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/errors"
)

var ErrNotFound = fmt.Errorf("health tip %w", errors.NotFound)

const (
	CategoryNutrition        = "nutrition"
	CategoryExercise         = "exercise"
	CategoryMentalHealth     = "mental-health"
	CategorySleep            = "sleep"
	CategoryStressManagement = "stress-management"
	CategoryPreventiveCare   = "preventive-care"
	CategoryGeneral          = "general"
)

var Categories = []string{
	CategoryNutrition,
	CategoryExercise,
	CategoryMentalHealth,
	CategorySleep,
	CategoryStressManagement,
	CategoryPreventiveCare,
	CategoryGeneral,
}

//go:generate mockgen --build_flags=--mod=mod -source=./tips.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Create(ctx context.Context, tip HealthTip) (*HealthTip, error)
	// Random returns a uniformly random active tip, or ErrNotFound when no
	// active tips exist.
	Random(ctx context.Context) (*HealthTip, error)
}

// HealthTip is read-only editorial content; the portal only ever creates
// tips through seeding.
type HealthTip struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       *string             `bson:"title,omitempty" json:"title,omitempty"`
	Content     *string             `bson:"content,omitempty" json:"content,omitempty"`
	Category    *string             `bson:"category,omitempty" json:"category,omitempty"`
	Author      *string             `bson:"author,omitempty" json:"author,omitempty"`
	Source      *string             `bson:"source,omitempty" json:"source,omitempty"`
	IsActive    *bool               `bson:"isActive,omitempty" json:"isActive,omitempty"`
	CreatedTime time.Time           `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
}
