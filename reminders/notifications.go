package reminders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/carewell/portal/outbox"
)

// NewNotificationHandler returns the dispatcher for reminder events. The
// portal has no delivery channel of its own, so dispatching a notification
// amounts to logging it and flagging the reminder as notified.
func NewNotificationHandler(repo Repository, logger *zap.SugaredLogger) outbox.Dispatcher {
	return &notificationHandler{
		logger: logger,
		repo:   repo,
	}
}

type notificationHandler struct {
	logger *zap.SugaredLogger
	repo   Repository
}

var _ outbox.Dispatcher = &notificationHandler{}

func (h *notificationHandler) Dispatch(ctx context.Context, event outbox.Event) error {
	switch event.EventType {
	case outbox.EventTypeReminderCreated:
		payload := outbox.ReminderCreatedPayload{}
		if err := bson.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("error decoding reminder notification payload: %w", err)
		}

		h.logger.Infow("dispatching reminder notification",
			"reminderId", payload.ReminderId,
			"patientId", payload.PatientId,
			"title", payload.Title,
			"dueDate", payload.DueDate)
		return h.repo.SetNotificationSent(ctx, payload.ReminderId)
	default:
		h.logger.Warnw("skipping outbox event with unknown type", "eventType", event.EventType)
		return nil
	}
}
