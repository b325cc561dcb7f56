package reminders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/outbox"
	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/users"
)

type service struct {
	logger   *zap.SugaredLogger
	notifier *outbox.Notifier
	repo     Repository
	users    users.Service
}

var _ Service = &service{}

type Params struct {
	fx.In

	Logger   *zap.SugaredLogger
	Notifier *outbox.Notifier
	Repo     Repository
	Users    users.Service
}

func NewService(p Params) (Service, error) {
	return &service{
		logger:   p.Logger,
		notifier: p.Notifier,
		repo:     p.Repo,
		users:    p.Users,
	}, nil
}

func (s *service) Create(ctx context.Context, create CreateReminder) (*Reminder, error) {
	if create.Title == "" {
		return nil, fmt.Errorf("%w: title is required", errors.BadRequest)
	}
	if !IsValidType(create.ReminderType) {
		return nil, fmt.Errorf("%w: invalid reminder type %q", errors.BadRequest, create.ReminderType)
	}
	if create.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", errors.BadRequest)
	}
	priority := create.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", errors.BadRequest, priority)
	}

	// A reminder can only be created within an existing assignment relation
	assigned, err := s.users.HasAssignment(ctx, create.ProviderId, create.PatientId)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	patientId, err := primitive.ObjectIDFromHex(create.PatientId)
	if err != nil {
		return nil, users.ErrNotFound
	}
	providerId, err := primitive.ObjectIDFromHex(create.ProviderId)
	if err != nil {
		return nil, users.ErrNotFound
	}

	reminder := Reminder{
		PatientId:        &patientId,
		ProviderId:       &providerId,
		Title:            &create.Title,
		Description:      &create.Description,
		ReminderType:     &create.ReminderType,
		DueDate:          create.DueDate,
		Status:           pointer.FromAny(StatusUpcoming),
		Priority:         &priority,
		NotificationSent: pointer.FromAny(false),
	}

	created, err := s.repo.Create(ctx, reminder)
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, created)
	return created, nil
}

func (s *service) publishCreated(ctx context.Context, reminder *Reminder) {
	payload := outbox.ReminderCreatedPayload{
		ReminderId: reminder.Id.Hex(),
		PatientId:  reminder.PatientId.Hex(),
		ProviderId: reminder.ProviderId.Hex(),
		Title:      pointer.ToString(reminder.Title),
		DueDate:    reminder.DueDate,
	}

	event, err := outbox.NewEvent(outbox.EventTypeReminderCreated, payload)
	if err == nil {
		err = s.notifier.Publish(ctx, event)
	}
	if err != nil {
		// The reminder exists either way; the notification stays unsent
		s.logger.Errorw("error publishing reminder notification", "reminderId", reminder.Id.Hex(), zap.Error(err))
	}
}

func (s *service) Get(ctx context.Context, reminderId string) (*Reminder, error) {
	return s.repo.Get(ctx, reminderId)
}

func (s *service) UpdateStatus(ctx context.Context, reminderId string, actor Actor, status string, notes *string) (*Reminder, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", errors.BadRequest, status)
	}

	reminder, err := s.repo.Get(ctx, reminderId)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case users.RoleProvider:
		if reminder.ProviderId == nil || reminder.ProviderId.Hex() != actor.UserId {
			return nil, ErrNotOwner
		}
	case users.RolePatient:
		// Patients see only their own reminders, so a foreign reminder is
		// reported as missing rather than forbidden
		if reminder.PatientId == nil || reminder.PatientId.Hex() != actor.UserId {
			return nil, ErrNotFound
		}
		if status != StatusCompleted {
			return nil, fmt.Errorf("%w: patients may only complete reminders", errors.Forbidden)
		}
	default:
		return nil, errors.Forbidden
	}

	current := pointer.ToString(reminder.Status)
	if status != current && !CanTransition(current, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	update := StatusUpdate{
		Status: status,
		Notes:  notes,
	}
	if status == StatusCompleted && current != StatusCompleted {
		update.CompletionDate = pointer.FromAny(time.Now())
	}

	updated, err := s.repo.Update(ctx, reminderId, update)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("updated reminder status",
		"reminderId", reminderId, "from", current, "to", status, "actor", actor.UserId)
	return updated, nil
}

func (s *service) ListByPatient(ctx context.Context, patientId string, status *string) ([]*Reminder, error) {
	filter := &Filter{
		PatientId: &patientId,
		Status:    status,
	}
	return s.repo.List(ctx, filter)
}

func (s *service) List(ctx context.Context, filter *Filter) ([]*Reminder, error) {
	return s.repo.List(ctx, filter)
}

// Compliance recomputes the three counts on every call; there is no caching.
func (s *service) Compliance(ctx context.Context, patientId string) (*ComplianceSummary, error) {
	total, err := s.repo.Count(ctx, &Filter{PatientId: &patientId})
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.Count(ctx, &Filter{PatientId: &patientId, Status: pointer.FromAny(StatusCompleted)})
	if err != nil {
		return nil, err
	}
	missed, err := s.repo.Count(ctx, &Filter{PatientId: &patientId, Status: pointer.FromAny(StatusMissed)})
	if err != nil {
		return nil, err
	}

	summary := NewComplianceSummary(total, completed, missed)
	summary.PatientId = patientId
	return &summary, nil
}

func (s *service) MarkMissed(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.repo.MarkMissed(ctx, now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Infow("marked overdue reminders as missed", "count", count)
	}
	return count, nil
}
