package reminders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/errors"
)

var (
	ErrNotFound          = fmt.Errorf("reminder %w", errors.NotFound)
	ErrNotAssigned       = fmt.Errorf("%w: patient is not assigned to the provider", errors.Forbidden)
	ErrNotOwner          = fmt.Errorf("%w: the reminder belongs to a different provider", errors.Forbidden)
	ErrInvalidTransition = fmt.Errorf("%w: status transition is not allowed", errors.Conflict)
)

const (
	StatusUpcoming  = "upcoming"
	StatusMissed    = "missed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	TypeVaccination = "vaccination"
	TypeScreening   = "screening"
	TypeCheckup     = "checkup"
	TypeLabTest     = "lab-test"
	TypeDental      = "dental"
	TypeEyeExam     = "eye-exam"
	TypeOther       = "other"
)

var (
	Statuses      = []string{StatusUpcoming, StatusMissed, StatusCompleted, StatusCancelled}
	Priorities    = []string{PriorityLow, PriorityMedium, PriorityHigh}
	ReminderTypes = []string{TypeVaccination, TypeScreening, TypeCheckup, TypeLabTest, TypeDental, TypeEyeExam, TypeOther}
)

//go:generate mockgen --build_flags=--mod=mod -source=./reminders.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Create(ctx context.Context, create CreateReminder) (*Reminder, error)
	Get(ctx context.Context, reminderId string) (*Reminder, error)
	// UpdateStatus applies a status transition on behalf of the acting user.
	// Providers may drive any transition the table allows on reminders they
	// own; patients may only complete their own upcoming or missed reminders.
	UpdateStatus(ctx context.Context, reminderId string, actor Actor, status string, notes *string) (*Reminder, error)
	ListByPatient(ctx context.Context, patientId string, status *string) ([]*Reminder, error)
	List(ctx context.Context, filter *Filter) ([]*Reminder, error)
	Compliance(ctx context.Context, patientId string) (*ComplianceSummary, error)
	MarkMissed(ctx context.Context, now time.Time) (int64, error)
}

type Reminder struct {
	Id               *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientId        *primitive.ObjectID `bson:"patientId,omitempty" json:"patientId,omitempty"`
	ProviderId       *primitive.ObjectID `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Title            *string             `bson:"title,omitempty" json:"title,omitempty"`
	Description      *string             `bson:"description,omitempty" json:"description,omitempty"`
	ReminderType     *string             `bson:"reminderType,omitempty" json:"reminderType,omitempty"`
	DueDate          time.Time           `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CompletionDate   *time.Time          `bson:"completionDate,omitempty" json:"completionDate,omitempty"`
	Status           *string             `bson:"status,omitempty" json:"status,omitempty"`
	Priority         *string             `bson:"priority,omitempty" json:"priority,omitempty"`
	NotificationSent *bool               `bson:"notificationSent,omitempty" json:"notificationSent,omitempty"`
	Notes            *string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedTime      time.Time           `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
	UpdatedTime      time.Time           `bson:"updatedTime,omitempty" json:"updatedTime,omitempty"`
}

type CreateReminder struct {
	PatientId    string
	ProviderId   string
	Title        string
	Description  string
	ReminderType string
	DueDate      time.Time
	Priority     string
}

// Actor identifies the user driving a status update.
type Actor struct {
	UserId string
	Role   string
}

type Filter struct {
	PatientId  *string
	PatientIds []primitive.ObjectID
	ProviderId *string
	Status     *string
	Priority   *string
	DueAfter   *time.Time
	DueBefore  *time.Time
}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range Priorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidType(reminderType string) bool {
	for _, t := range ReminderTypes {
		if t == reminderType {
			return true
		}
	}
	return false
}
