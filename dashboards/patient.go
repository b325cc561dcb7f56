package dashboards

import (
	"context"
	"errors"
	"time"

	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/tips"
	"github.com/carewell/portal/users"
)

func (s *service) PatientDashboard(ctx context.Context, patientId string) (*PatientDashboard, error) {
	patient, err := s.users.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	today, err := s.metrics.Today(ctx, patientId)
	if errors.Is(err, metrics.ErrNotFound) {
		today = metrics.DefaultMetric()
	} else if err != nil {
		return nil, err
	}

	week, err := s.metrics.History(ctx, patientId, 7)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming, err := s.reminders.List(ctx, &reminders.Filter{
		PatientId: &patientId,
		Status:    pointer.FromAny(reminders.StatusUpcoming),
		DueAfter:  &now,
	})
	if err != nil {
		return nil, err
	}

	missed, err := s.reminders.ListByPatient(ctx, patientId, pointer.FromAny(reminders.StatusMissed))
	if err != nil {
		return nil, err
	}

	tip, err := s.tips.Random(ctx)
	if errors.Is(err, tips.ErrNotFound) {
		tip = nil
	} else if err != nil {
		return nil, err
	}

	return &PatientDashboard{
		TodayMetric:       today,
		WeekMetrics:       week,
		UpcomingReminders: limitReminders(upcoming, ReminderListLimit),
		MissedReminders:   limitReminders(missed, ReminderListLimit),
		HealthTip:         tip,
		Patient:           personInfo(patient),
	}, nil
}

func limitReminders(list []*reminders.Reminder, limit int) []*reminders.Reminder {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}

func personInfo(user *users.User) PersonInfo {
	info := PersonInfo{
		FirstName: pointer.ToString(user.FirstName),
		LastName:  pointer.ToString(user.LastName),
	}
	if user.Id != nil {
		info.Id = user.Id.Hex()
	}
	if user.Provider != nil {
		info.Specialization = pointer.ToString(user.Provider.Specialization)
	}
	return info
}
