package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/test"
)

func RandomReminder(patientId, providerId primitive.ObjectID) reminders.Reminder {
	return reminders.Reminder{
		PatientId:        &patientId,
		ProviderId:       &providerId,
		Title:            pointer.FromAny(test.Faker.Lorem().Sentence(3)),
		Description:      pointer.FromAny(test.Faker.Lorem().Sentence(8)),
		ReminderType:     pointer.FromAny(reminders.ReminderTypes[test.Faker.IntBetween(0, len(reminders.ReminderTypes)-1)]),
		DueDate:          time.Now().AddDate(0, 0, test.Faker.IntBetween(1, 60)).UTC().Truncate(time.Millisecond),
		Status:           pointer.FromAny(reminders.StatusUpcoming),
		Priority:         pointer.FromAny(reminders.Priorities[test.Faker.IntBetween(0, len(reminders.Priorities)-1)]),
		NotificationSent: pointer.FromAny(false),
	}
}

func RandomCreateReminder(patientId, providerId primitive.ObjectID) reminders.CreateReminder {
	return reminders.CreateReminder{
		PatientId:    patientId.Hex(),
		ProviderId:   providerId.Hex(),
		Title:        test.Faker.Lorem().Sentence(3),
		Description:  test.Faker.Lorem().Sentence(8),
		ReminderType: reminders.ReminderTypes[test.Faker.IntBetween(0, len(reminders.ReminderTypes)-1)],
		DueDate:      time.Now().AddDate(0, 0, test.Faker.IntBetween(1, 60)),
		Priority:     reminders.Priorities[test.Faker.IntBetween(0, len(reminders.Priorities)-1)],
	}
}
