package outbox_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/carewell/portal/outbox"
	dbTest "github.com/carewell/portal/store/test"
)

var _ = Describe("Outbox Repository", func() {
	var repo outbox.Repository

	BeforeEach(func() {
		var err error
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = outbox.NewRepository(dbTest.GetTestDatabase(), zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()
	})

	It("round trips the event payload", func() {
		payload := outbox.ReminderCreatedPayload{
			ReminderId: "reminder-1",
			PatientId:  "patient-1",
			ProviderId: "provider-1",
			Title:      "Flu shot",
			DueDate:    time.Now().UTC().Truncate(time.Millisecond),
		}
		event, err := outbox.NewEvent(outbox.EventTypeReminderCreated, payload)
		Expect(err).ToNot(HaveOccurred())

		created, err := repo.Create(context.Background(), event)
		Expect(err).ToNot(HaveOccurred())
		Expect(created.Id).ToNot(BeNil())
		Expect(created.ProcessedTime).To(BeNil())

		decoded := outbox.ReminderCreatedPayload{}
		Expect(bson.Unmarshal(created.Payload, &decoded)).To(Succeed())
		Expect(decoded).To(Equal(payload))
	})

	It("marks events as processed", func() {
		event, err := outbox.NewEvent(outbox.EventTypeReminderCreated, outbox.ReminderCreatedPayload{})
		Expect(err).ToNot(HaveOccurred())

		created, err := repo.Create(context.Background(), event)
		Expect(err).ToNot(HaveOccurred())

		Expect(repo.MarkProcessed(context.Background(), *created.Id)).To(Succeed())

		stored := outbox.Event{}
		err = dbTest.GetTestDatabase().Collection(outbox.CollectionName).
			FindOne(context.Background(), bson.M{"_id": created.Id}).Decode(&stored)
		Expect(err).ToNot(HaveOccurred())
		Expect(stored.ProcessedTime).ToNot(BeNil())
	})
})
