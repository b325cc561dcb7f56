package outbox

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CollectionName = "outbox"

// EventType identifies the kind of event
type EventType string

const (
	EventTypeReminderCreated EventType = "reminderCreated"
)

// Event is the common envelope for all outbox events
type Event struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty"`
	EventType     EventType           `bson:"eventType"`
	CreatedTime   time.Time           `bson:"createdTime"`
	ProcessedTime *time.Time          `bson:"processedTime,omitempty"`
	Payload       bson.Raw            `bson:"payload"`
}

// ReminderCreatedPayload is the payload for reminderCreated events
type ReminderCreatedPayload struct {
	ReminderId string    `bson:"reminderId"`
	PatientId  string    `bson:"patientId"`
	ProviderId string    `bson:"providerId"`
	Title      string    `bson:"title"`
	DueDate    time.Time `bson:"dueDate"`
}

type Repository interface {
	Create(ctx context.Context, event Event) (*Event, error)
	MarkProcessed(ctx context.Context, eventId primitive.ObjectID) error
	Initialize(ctx context.Context) error
}

// Dispatcher delivers a single event. Implementations are registered by the
// packages that produce the events.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// NewEvent creates an Event from a typed payload
func NewEvent(eventType EventType, payload interface{}) (Event, error) {
	raw, err := bson.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("error marshaling outbox event payload: %w", err)
	}

	return Event{
		EventType:   eventType,
		CreatedTime: time.Now(),
		Payload:     bson.Raw(raw),
	}, nil
}
