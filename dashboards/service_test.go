package dashboards_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/carewell/portal/dashboards"
	"github.com/carewell/portal/metrics"
	metricsTest "github.com/carewell/portal/metrics/test"
	"github.com/carewell/portal/reminders"
	remindersTest "github.com/carewell/portal/reminders/test"
	"github.com/carewell/portal/tips"
	tipsTest "github.com/carewell/portal/tips/test"
	"github.com/carewell/portal/users"
	usersTest "github.com/carewell/portal/users/test"
)

var _ = Describe("Dashboards Service", func() {
	var service dashboards.Service
	var metricsService *metricsTest.MockService
	var remindersService *remindersTest.MockService
	var tipsService *tipsTest.MockService
	var usersService *usersTest.MockService
	var ctrl *gomock.Controller

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		metricsService = metricsTest.NewMockService(ctrl)
		remindersService = remindersTest.NewMockService(ctrl)
		tipsService = tipsTest.NewMockService(ctrl)
		usersService = usersTest.NewMockService(ctrl)

		var err error
		service, err = dashboards.NewService(dashboards.Params{
			Logger:    zap.NewNop().Sugar(),
			Metrics:   metricsService,
			Reminders: remindersService,
			Tips:      tipsService,
			Users:     usersService,
		})
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("PatientDashboard", func() {
		var patient users.User
		var patientId string

		BeforeEach(func() {
			patient = usersTest.RandomPatientUser()
			patientId = patient.Id.Hex()
		})

		It("falls back to a zero valued record when nothing was logged today", func() {
			usersService.EXPECT().Get(gomock.Any(), patientId).Return(&patient, nil)
			metricsService.EXPECT().Today(gomock.Any(), patientId).Return(nil, metrics.ErrNotFound)
			metricsService.EXPECT().History(gomock.Any(), patientId, 7).Return(nil, nil)
			remindersService.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
			remindersService.EXPECT().ListByPatient(gomock.Any(), patientId, gomock.Any()).Return(nil, nil)
			tipsService.EXPECT().Random(gomock.Any()).Return(nil, tips.ErrNotFound)

			result, err := service.PatientDashboard(context.Background(), patientId)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TodayMetric).ToNot(BeNil())
			Expect(result.TodayMetric.StepGoal).To(Equal(int64(metrics.DefaultStepGoal)))
			Expect(result.HealthTip).To(BeNil())
			Expect(result.Patient.Id).To(Equal(patientId))
		})

		It("limits the reminder lists to five entries", func() {
			manyReminders := make([]*reminders.Reminder, 8)
			for i := range manyReminders {
				reminder := remindersTest.RandomReminder(*patient.Id, primitive.NewObjectID())
				manyReminders[i] = &reminder
			}
			tip := tipsTest.RandomTip()

			usersService.EXPECT().Get(gomock.Any(), patientId).Return(&patient, nil)
			metricsService.EXPECT().Today(gomock.Any(), patientId).Return(metrics.DefaultMetric(), nil)
			metricsService.EXPECT().History(gomock.Any(), patientId, 7).Return(nil, nil)
			remindersService.EXPECT().List(gomock.Any(), gomock.Any()).Return(manyReminders, nil)
			remindersService.EXPECT().ListByPatient(gomock.Any(), patientId, gomock.Any()).Return(manyReminders, nil)
			tipsService.EXPECT().Random(gomock.Any()).Return(&tip, nil)

			result, err := service.PatientDashboard(context.Background(), patientId)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.UpcomingReminders).To(HaveLen(dashboards.ReminderListLimit))
			Expect(result.MissedReminders).To(HaveLen(dashboards.ReminderListLimit))
			Expect(result.HealthTip).To(Equal(&tip))
		})
	})

	Describe("ProviderDashboard", func() {
		var provider users.User
		var providerId string

		BeforeEach(func() {
			provider = usersTest.RandomProviderUser()
			providerId = provider.Id.Hex()
		})

		It("builds per patient compliance rows and adherence buckets", func() {
			compliant := usersTest.RandomPatientUser()
			missing := usersTest.RandomPatientUser()
			assigned := []*users.User{&compliant, &missing}

			compliantSummary := reminders.NewComplianceSummary(4, 4, 0)
			missingSummary := reminders.NewComplianceSummary(4, 1, 2)

			usersService.EXPECT().Get(gomock.Any(), providerId).Return(&provider, nil)
			usersService.EXPECT().ListAssignedPatients(gomock.Any(), providerId).Return(assigned, nil)
			remindersService.EXPECT().Compliance(gomock.Any(), compliant.Id.Hex()).Return(&compliantSummary, nil)
			remindersService.EXPECT().Compliance(gomock.Any(), missing.Id.Hex()).Return(&missingSummary, nil)
			remindersService.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

			result, err := service.ProviderDashboard(context.Background(), providerId)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalPatients).To(Equal(2))
			Expect(result.ComplianceData).To(HaveLen(2))
			Expect(result.HighAdherenceCount).To(Equal(1))
			Expect(result.LowAdherenceCount).To(Equal(1))
			Expect(result.ComplianceData[0].PatientName).To(Equal(compliant.FullName()))
			Expect(result.Provider.Specialization).To(Equal(*provider.Provider.Specialization))
		})

		It("skips the reminder queries when no patients are assigned", func() {
			usersService.EXPECT().Get(gomock.Any(), providerId).Return(&provider, nil)
			usersService.EXPECT().ListAssignedPatients(gomock.Any(), providerId).Return(nil, nil)

			result, err := service.ProviderDashboard(context.Background(), providerId)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalPatients).To(Equal(0))
			Expect(result.ComplianceData).To(BeEmpty())
			Expect(result.UpcomingHighPriorityReminders).To(BeEmpty())
			Expect(result.MissedReminders).To(BeEmpty())
		})
	})

	Describe("PatientDetail", func() {
		var provider, patient users.User

		BeforeEach(func() {
			provider = usersTest.RandomProviderUser()
			patient = usersTest.RandomPatientUser()
		})

		It("requires an assignment relation", func() {
			usersService.EXPECT().
				HasAssignment(gomock.Any(), provider.Id.Hex(), patient.Id.Hex()).
				Return(false, nil)

			_, err := service.PatientDetail(context.Background(), provider.Id.Hex(), patient.Id.Hex())
			Expect(err).To(MatchError(users.ErrNotAssigned))
		})

		It("returns the patient with recent metrics and reminders", func() {
			reminder := remindersTest.RandomReminder(*patient.Id, *provider.Id)

			usersService.EXPECT().
				HasAssignment(gomock.Any(), provider.Id.Hex(), patient.Id.Hex()).
				Return(true, nil)
			usersService.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(&patient, nil)
			metricsService.EXPECT().
				History(gomock.Any(), patient.Id.Hex(), dashboards.DetailHistoryDays).
				Return([]*metrics.WellnessMetric{{}}, nil)
			remindersService.EXPECT().
				ListByPatient(gomock.Any(), patient.Id.Hex(), gomock.Nil()).
				Return([]*reminders.Reminder{&reminder}, nil)

			result, err := service.PatientDetail(context.Background(), provider.Id.Hex(), patient.Id.Hex())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Patient).To(Equal(&patient))
			Expect(result.RecentMetrics).To(HaveLen(1))
			Expect(result.Reminders).To(HaveLen(1))
		})
	})

	Describe("ComplianceReport", func() {
		It("renders the summary and compliance sheets", func() {
			provider := usersTest.RandomProviderUser()
			patient := usersTest.RandomPatientUser()
			summary := reminders.NewComplianceSummary(2, 1, 1)

			usersService.EXPECT().Get(gomock.Any(), provider.Id.Hex()).Return(&provider, nil)
			usersService.EXPECT().ListAssignedPatients(gomock.Any(), provider.Id.Hex()).Return([]*users.User{&patient}, nil)
			remindersService.EXPECT().Compliance(gomock.Any(), patient.Id.Hex()).Return(&summary, nil)
			remindersService.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

			report, err := service.ComplianceReport(context.Background(), provider.Id.Hex())

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Sheets).To(HaveLen(2))
			Expect(report.Sheets[0].Name).To(Equal("Summary"))
			Expect(report.Sheets[1].Name).To(Equal("Compliance"))

			// Header plus one patient row
			Expect(report.Sheets[1].MaxRow).To(Equal(2))
		})
	})
})
