package store_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/store"
)

var _ = Describe("StartOfDay", func() {
	It("truncates to midnight UTC", func() {
		t := time.Date(2024, time.March, 15, 18, 42, 13, 999, time.UTC)
		Expect(store.StartOfDay(t)).To(Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))
	})

	It("uses the UTC calendar day for zoned times", func() {
		zone := time.FixedZone("UTC-5", -5*60*60)
		t := time.Date(2024, time.March, 15, 22, 0, 0, 0, zone)
		Expect(store.StartOfDay(t)).To(Equal(time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)))
	})

	It("is idempotent", func() {
		t := store.StartOfDay(time.Now())
		Expect(store.StartOfDay(t)).To(Equal(t))
	})
})

var _ = Describe("ObjectIDSFromStringArray", func() {
	It("converts valid hex ids", func() {
		id := primitive.NewObjectID()
		result := store.ObjectIDSFromStringArray([]string{id.Hex()})
		Expect(result).To(ConsistOf([]primitive.ObjectID{id}))
	})

	It("drops malformed ids", func() {
		id := primitive.NewObjectID()
		result := store.ObjectIDSFromStringArray([]string{"garbage", id.Hex()})
		Expect(result).To(ConsistOf([]primitive.ObjectID{id}))
	})
})
