package users

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/errors"
)

var (
	ErrNotFound           = fmt.Errorf("user %w", errors.NotFound)
	ErrEmailTaken         = fmt.Errorf("%w: email is already in use", errors.Duplicate)
	ErrLicenseTaken       = fmt.Errorf("%w: license number is already in use", errors.Duplicate)
	ErrInvalidCredentials = fmt.Errorf("%w: email or password is incorrect", errors.Unauthorized)
	ErrNotAssigned        = fmt.Errorf("%w: patient is not assigned to the provider", errors.Forbidden)
)

const (
	RolePatient  = "patient"
	RoleProvider = "provider"
	RoleAdmin    = "admin"

	BloodTypeUnknown = "Unknown"

	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

var BloodTypes = []string{"O+", "O-", "A+", "A-", "B+", "B-", "AB+", "AB-", BloodTypeUnknown}

//go:generate mockgen --build_flags=--mod=mod -source=./users.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Register(ctx context.Context, registration Registration) (*User, error)
	Authenticate(ctx context.Context, email string, password string) (*User, error)
	Get(ctx context.Context, userId string) (*User, error)
	UpdatePatientProfile(ctx context.Context, userId string, update PatientProfileUpdate) (*User, error)
	AssignPatient(ctx context.Context, providerId string, patientId string) (*User, error)
	HasAssignment(ctx context.Context, providerId string, patientId string) (bool, error)
	ListAssignedPatients(ctx context.Context, providerId string) ([]*User, error)
}

// User is the single persisted record for all roles. The patient and
// provider subdocuments are populated according to the role discriminator.
type User struct {
	Id           *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName    *string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     *string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email        *string             `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash *string             `bson:"passwordHash,omitempty" json:"-"`
	Role         *string             `bson:"role,omitempty" json:"role,omitempty"`
	ConsentGiven *bool               `bson:"consentGiven,omitempty" json:"consentGiven,omitempty"`
	Patient      *PatientProfile     `bson:"patient,omitempty" json:"patient,omitempty"`
	Provider     *ProviderProfile    `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedTime  time.Time           `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
	UpdatedTime  time.Time           `bson:"updatedTime,omitempty" json:"updatedTime,omitempty"`
}

func (u *User) IsPatient() bool {
	return u.Role != nil && *u.Role == RolePatient
}

func (u *User) IsProvider() bool {
	return u.Role != nil && *u.Role == RoleProvider
}

func (u *User) FullName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	return name
}

type PatientProfile struct {
	Allergies         []string             `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Medications       []Medication         `bson:"medications,omitempty" json:"medications,omitempty"`
	ChronicConditions []string             `bson:"chronicConditions,omitempty" json:"chronicConditions,omitempty"`
	EmergencyContact  *EmergencyContact    `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	BloodType         *string              `bson:"bloodType,omitempty" json:"bloodType,omitempty"`
	Height            *float64             `bson:"height,omitempty" json:"height,omitempty"`
	Weight            *float64             `bson:"weight,omitempty" json:"weight,omitempty"`
	AssignedProviders []primitive.ObjectID `bson:"assignedProviders,omitempty" json:"assignedProviders,omitempty"`
}

type Medication struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Frequency string `bson:"frequency,omitempty" json:"frequency,omitempty"`
}

type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type ProviderProfile struct {
	LicenseNumber      *string              `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	Specialization     *string              `bson:"specialization,omitempty" json:"specialization,omitempty"`
	HospitalName       *string              `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	ClinicAddress      *string              `bson:"clinicAddress,omitempty" json:"clinicAddress,omitempty"`
	YearsOfExperience  *int                 `bson:"yearsOfExperience,omitempty" json:"yearsOfExperience,omitempty"`
	AssignedPatients   []primitive.ObjectID `bson:"assignedPatients,omitempty" json:"assignedPatients,omitempty"`
	VerificationStatus *string              `bson:"verificationStatus,omitempty" json:"verificationStatus,omitempty"`
}

// Registration is the input to Service.Register. Password is the plain text
// credential and is hashed before the user is persisted.
type Registration struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Role         string
	ConsentGiven bool
	Provider     *ProviderRegistration
}

type ProviderRegistration struct {
	LicenseNumber     string
	Specialization    string
	HospitalName      string
	ClinicAddress     string
	YearsOfExperience int
}

// PatientProfileUpdate carries a partial update of the patient's medical
// fields. Nil fields leave the stored values untouched.
type PatientProfileUpdate struct {
	Allergies         []string
	Medications       []Medication
	ChronicConditions []string
	EmergencyContact  *EmergencyContact
	BloodType         *string
	Height            *float64
	Weight            *float64
}

func IsValidBloodType(bloodType string) bool {
	for _, t := range BloodTypes {
		if t == bloodType {
			return true
		}
	}
	return false
}
