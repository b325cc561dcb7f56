package reminders_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/carewell/portal/reminders"
)

var _ = Describe("Compliance", func() {
	Describe("NewComplianceSummary", func() {
		It("reports zero percent with high adherence for patients without reminders", func() {
			summary := reminders.NewComplianceSummary(0, 0, 0)
			Expect(summary.CompliancePercentage).To(Equal(0))
			Expect(summary.AdherenceStatus).To(Equal(reminders.AdherenceHigh))
		})

		It("rounds the completion percentage to the nearest integer", func() {
			summary := reminders.NewComplianceSummary(3, 2, 0)
			Expect(summary.CompliancePercentage).To(Equal(67))

			summary = reminders.NewComplianceSummary(3, 1, 0)
			Expect(summary.CompliancePercentage).To(Equal(33))
		})

		It("reports full compliance as one hundred percent", func() {
			summary := reminders.NewComplianceSummary(5, 5, 0)
			Expect(summary.CompliancePercentage).To(Equal(100))
			Expect(summary.AdherenceStatus).To(Equal(reminders.AdherenceHigh))
		})

		It("marks patients with any missed reminder as low adherence", func() {
			summary := reminders.NewComplianceSummary(10, 9, 1)
			Expect(summary.CompliancePercentage).To(Equal(90))
			Expect(summary.AdherenceStatus).To(Equal(reminders.AdherenceLow))
		})

		It("keeps high adherence when reminders are pending but none are missed", func() {
			summary := reminders.NewComplianceSummary(4, 1, 0)
			Expect(summary.CompliancePercentage).To(Equal(25))
			Expect(summary.AdherenceStatus).To(Equal(reminders.AdherenceHigh))
		})

		It("carries the raw counts", func() {
			summary := reminders.NewComplianceSummary(7, 4, 2)
			Expect(summary.TotalReminders).To(Equal(int64(7)))
			Expect(summary.CompletedReminders).To(Equal(int64(4)))
			Expect(summary.MissedReminders).To(Equal(int64(2)))
		})
	})
})
