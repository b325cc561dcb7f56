package test

import (
	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/test"
)

func RandomUpdate() metrics.Update {
	return metrics.Update{
		Steps:          pointer.FromAny(int64(test.Faker.IntBetween(100, 20000))),
		SleepHours:     pointer.FromAny(test.Faker.Float64(1, 1, 12)),
		WaterIntake:    pointer.FromAny(test.Faker.Float64(1, 1, 5)),
		ActiveTime:     pointer.FromAny(test.Faker.IntBetween(5, 180)),
		CaloriesBurned: pointer.FromAny(test.Faker.IntBetween(100, 3000)),
		HeartRate:      pointer.FromAny(test.Faker.IntBetween(50, 110)),
		BloodPressure: &metrics.BloodPressure{
			Systolic:  test.Faker.IntBetween(100, 150),
			Diastolic: test.Faker.IntBetween(60, 95),
		},
		Notes: pointer.FromAny(test.Faker.Lorem().Sentence(5)),
	}
}
