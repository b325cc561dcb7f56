package reminders_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"

	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/reminders"
	remindersTest "github.com/carewell/portal/reminders/test"
	dbTest "github.com/carewell/portal/store/test"
)

var _ = Describe("Reminders Repository", func() {
	var repo reminders.Repository

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = reminders.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())
		lifecycle.RequireStart()
	})

	Describe("Create", func() {
		It("returns the created reminder with an id and timestamps", func() {
			reminder := remindersTest.RandomReminder(primitive.NewObjectID(), primitive.NewObjectID())
			result, err := repo.Create(context.Background(), reminder)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
			Expect(result.Id).ToNot(BeNil())
			Expect(result.CreatedTime).ToNot(BeZero())
			Expect(result.UpdatedTime).ToNot(BeZero())
			Expect(*result.Title).To(Equal(*reminder.Title))
			Expect(*result.Status).To(Equal(reminders.StatusUpcoming))
		})
	})

	Describe("Get", func() {
		It("returns not found for an unknown id", func() {
			_, err := repo.Get(context.Background(), primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(reminders.ErrNotFound))
		})

		It("returns not found for a malformed id", func() {
			_, err := repo.Get(context.Background(), "not-an-object-id")
			Expect(err).To(MatchError(reminders.ErrNotFound))
		})
	})

	Describe("Update", func() {
		It("sets the status and completion date", func() {
			created, err := repo.Create(context.Background(), remindersTest.RandomReminder(primitive.NewObjectID(), primitive.NewObjectID()))
			Expect(err).ToNot(HaveOccurred())

			completionDate := time.Now().UTC().Truncate(time.Millisecond)
			updated, err := repo.Update(context.Background(), created.Id.Hex(), reminders.StatusUpdate{
				Status:         reminders.StatusCompleted,
				Notes:          pointer.FromAny("done at the clinic"),
				CompletionDate: &completionDate,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(*updated.Status).To(Equal(reminders.StatusCompleted))
			Expect(*updated.Notes).To(Equal("done at the clinic"))
			Expect(updated.CompletionDate).ToNot(BeNil())
		})
	})

	Context("with reminders for multiple patients", func() {
		var patientId, otherPatientId, providerId primitive.ObjectID

		BeforeEach(func() {
			patientId = primitive.NewObjectID()
			otherPatientId = primitive.NewObjectID()
			providerId = primitive.NewObjectID()

			for i := 0; i < 3; i++ {
				_, err := repo.Create(context.Background(), remindersTest.RandomReminder(patientId, providerId))
				Expect(err).ToNot(HaveOccurred())
			}
			_, err := repo.Create(context.Background(), remindersTest.RandomReminder(otherPatientId, providerId))
			Expect(err).ToNot(HaveOccurred())
		})

		Describe("List", func() {
			It("filters by patient", func() {
				result, err := repo.List(context.Background(), &reminders.Filter{
					PatientId: pointer.FromAny(patientId.Hex()),
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(result).To(HaveLen(3))
				for _, reminder := range result {
					Expect(*reminder.PatientId).To(Equal(patientId))
				}
			})

			It("returns reminders sorted by due date", func() {
				result, err := repo.List(context.Background(), &reminders.Filter{
					PatientId: pointer.FromAny(patientId.Hex()),
				})
				Expect(err).ToNot(HaveOccurred())
				for i := 1; i < len(result); i++ {
					Expect(result[i].DueDate.Before(result[i-1].DueDate)).To(BeFalse())
				}
			})

			It("filters by multiple patient ids", func() {
				result, err := repo.List(context.Background(), &reminders.Filter{
					PatientIds: []primitive.ObjectID{patientId, otherPatientId},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(result).To(HaveLen(4))
			})
		})

		Describe("Count", func() {
			It("counts reminders matching the filter", func() {
				count, err := repo.Count(context.Background(), &reminders.Filter{
					PatientId: pointer.FromAny(patientId.Hex()),
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(count).To(Equal(int64(3)))
			})
		})
	})

	Describe("MarkMissed", func() {
		It("transitions overdue upcoming reminders and leaves the rest untouched", func() {
			patientId := primitive.NewObjectID()
			providerId := primitive.NewObjectID()

			overdue := remindersTest.RandomReminder(patientId, providerId)
			overdue.DueDate = time.Now().AddDate(0, 0, -2)
			createdOverdue, err := repo.Create(context.Background(), overdue)
			Expect(err).ToNot(HaveOccurred())

			future := remindersTest.RandomReminder(patientId, providerId)
			future.DueDate = time.Now().AddDate(0, 0, 2)
			createdFuture, err := repo.Create(context.Background(), future)
			Expect(err).ToNot(HaveOccurred())

			count, err := repo.MarkMissed(context.Background(), time.Now())
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeNumerically(">=", 1))

			result, err := repo.Get(context.Background(), createdOverdue.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(*result.Status).To(Equal(reminders.StatusMissed))

			result, err = repo.Get(context.Background(), createdFuture.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(*result.Status).To(Equal(reminders.StatusUpcoming))
		})
	})

	Describe("SetNotificationSent", func() {
		It("flags the reminder as notified", func() {
			created, err := repo.Create(context.Background(), remindersTest.RandomReminder(primitive.NewObjectID(), primitive.NewObjectID()))
			Expect(err).ToNot(HaveOccurred())
			Expect(*created.NotificationSent).To(BeFalse())

			err = repo.SetNotificationSent(context.Background(), created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())

			result, err := repo.Get(context.Background(), created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(*result.NotificationSent).To(BeTrue())
		})

		It("returns not found for an unknown id", func() {
			err := repo.SetNotificationSent(context.Background(), primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(reminders.ErrNotFound))
		})
	})
})
