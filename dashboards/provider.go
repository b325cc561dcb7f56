package dashboards

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/users"
)

func (s *service) ProviderDashboard(ctx context.Context, providerId string) (*ProviderDashboard, error) {
	provider, err := s.users.Get(ctx, providerId)
	if err != nil {
		return nil, err
	}

	assigned, err := s.users.ListAssignedPatients(ctx, providerId)
	if err != nil {
		return nil, err
	}

	complianceData := make([]reminders.ComplianceSummary, 0, len(assigned))
	patientIds := make([]primitive.ObjectID, 0, len(assigned))
	for _, patient := range assigned {
		if patient.Id == nil {
			continue
		}
		patientIds = append(patientIds, *patient.Id)

		summary, err := s.reminders.Compliance(ctx, patient.Id.Hex())
		if err != nil {
			return nil, err
		}
		summary.PatientName = patient.FullName()
		complianceData = append(complianceData, *summary)
	}

	// The adherence buckets are derived from the per patient rows rather
	// than counted separately
	high, low := 0, 0
	for _, row := range complianceData {
		if row.AdherenceStatus == reminders.AdherenceLow {
			low++
		} else {
			high++
		}
	}

	var upcomingHighPriority, missed []*reminders.Reminder
	if len(patientIds) > 0 {
		upcomingHighPriority, err = s.reminders.List(ctx, &reminders.Filter{
			PatientIds: patientIds,
			Status:     pointer.FromAny(reminders.StatusUpcoming),
			Priority:   pointer.FromAny(reminders.PriorityHigh),
		})
		if err != nil {
			return nil, err
		}

		missed, err = s.reminders.List(ctx, &reminders.Filter{
			PatientIds: patientIds,
			Status:     pointer.FromAny(reminders.StatusMissed),
		})
		if err != nil {
			return nil, err
		}
	}

	return &ProviderDashboard{
		TotalPatients:                 len(assigned),
		ComplianceData:                complianceData,
		UpcomingHighPriorityReminders: upcomingHighPriority,
		MissedReminders:               missed,
		HighAdherenceCount:            high,
		LowAdherenceCount:             low,
		Provider:                      personInfo(provider),
	}, nil
}

func (s *service) PatientDetail(ctx context.Context, providerId string, patientId string) (*PatientDetail, error) {
	assigned, err := s.users.HasAssignment(ctx, providerId, patientId)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, users.ErrNotAssigned
	}

	patient, err := s.users.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	recentMetrics, err := s.metrics.History(ctx, patientId, DetailHistoryDays)
	if err != nil {
		return nil, err
	}

	patientReminders, err := s.reminders.ListByPatient(ctx, patientId, nil)
	if err != nil {
		return nil, err
	}

	return &PatientDetail{
		Patient:       patient,
		RecentMetrics: recentMetrics,
		Reminders:     patientReminders,
	}, nil
}
