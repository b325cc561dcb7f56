package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/test"
	"github.com/carewell/portal/tips"
)

func RandomTip() tips.HealthTip {
	id := primitive.NewObjectID()
	return tips.HealthTip{
		Id:       &id,
		Title:    pointer.FromAny(test.Faker.Lorem().Sentence(3)),
		Content:  pointer.FromAny(test.Faker.Lorem().Sentence(15)),
		Category: pointer.FromAny(tips.Categories[test.Faker.IntBetween(0, len(tips.Categories)-1)]),
		IsActive: pointer.FromAny(true),
	}
}
