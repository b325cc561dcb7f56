package dashboards

import (
	"context"

	"github.com/tealeg/xlsx/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/tips"
	"github.com/carewell/portal/users"
)

const (
	// Dashboards show at most this many reminders per list
	ReminderListLimit = 5

	// Patient detail views cover the most recent 30 days of metrics
	DetailHistoryDays = 30
)

type Service interface {
	PatientDashboard(ctx context.Context, patientId string) (*PatientDashboard, error)
	ProviderDashboard(ctx context.Context, providerId string) (*ProviderDashboard, error)
	// PatientDetail requires an assignment relation between the provider and
	// the patient.
	PatientDetail(ctx context.Context, providerId string, patientId string) (*PatientDetail, error)
	ComplianceReport(ctx context.Context, providerId string) (*xlsx.File, error)
}

type PatientDashboard struct {
	TodayMetric       *metrics.WellnessMetric   `json:"todayMetric"`
	WeekMetrics       []*metrics.WellnessMetric `json:"weekMetrics"`
	UpcomingReminders []*reminders.Reminder     `json:"upcomingReminders"`
	MissedReminders   []*reminders.Reminder     `json:"missedReminders"`
	HealthTip         *tips.HealthTip           `json:"healthTip,omitempty"`
	Patient           PersonInfo                `json:"patient"`
}

type ProviderDashboard struct {
	TotalPatients                 int                           `json:"totalPatients"`
	ComplianceData                []reminders.ComplianceSummary `json:"complianceData"`
	UpcomingHighPriorityReminders []*reminders.Reminder         `json:"upcomingHighPriorityReminders"`
	MissedReminders               []*reminders.Reminder         `json:"missedReminders"`
	HighAdherenceCount            int                           `json:"highAdherenceCount"`
	LowAdherenceCount             int                           `json:"lowAdherenceCount"`
	Provider                      PersonInfo                    `json:"provider"`
}

type PatientDetail struct {
	Patient       *users.User               `json:"patient"`
	RecentMetrics []*metrics.WellnessMetric `json:"recentMetrics"`
	Reminders     []*reminders.Reminder     `json:"reminders"`
}

type PersonInfo struct {
	Id             string `json:"id"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

type service struct {
	logger    *zap.SugaredLogger
	metrics   metrics.Service
	reminders reminders.Service
	tips      tips.Service
	users     users.Service
}

var _ Service = &service{}

type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	Metrics   metrics.Service
	Reminders reminders.Service
	Tips      tips.Service
	Users     users.Service
}

func NewService(p Params) (Service, error) {
	return &service{
		logger:    p.Logger,
		metrics:   p.Metrics,
		reminders: p.Reminders,
		tips:      p.Tips,
		users:     p.Users,
	}, nil
}
