package users

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mohae/deepcopy"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/store"
)

type service struct {
	dbClient *mongo.Client
	logger   *zap.SugaredLogger
	repo     Repository
}

var _ Service = &service{}

type Params struct {
	fx.In

	DbClient *mongo.Client
	Logger   *zap.SugaredLogger
	Repo     Repository
}

func NewService(p Params) (Service, error) {
	return &service{
		dbClient: p.DbClient,
		logger:   p.Logger,
		repo:     p.Repo,
	}, nil
}

func (s *service) Register(ctx context.Context, registration Registration) (*User, error) {
	if err := validateRegistration(&registration); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("unable to hash password: %w", err)
	}

	user := User{
		FirstName:    &registration.FirstName,
		LastName:     &registration.LastName,
		Email:        &registration.Email,
		PasswordHash: pointer.FromAny(string(hash)),
		Role:         &registration.Role,
		ConsentGiven: &registration.ConsentGiven,
	}

	switch registration.Role {
	case RolePatient:
		user.Patient = &PatientProfile{
			BloodType: pointer.FromAny(BloodTypeUnknown),
		}
	case RoleProvider:
		user.Provider = &ProviderProfile{
			LicenseNumber:      &registration.Provider.LicenseNumber,
			Specialization:     &registration.Provider.Specialization,
			HospitalName:       &registration.Provider.HospitalName,
			ClinicAddress:      &registration.Provider.ClinicAddress,
			YearsOfExperience:  &registration.Provider.YearsOfExperience,
			VerificationStatus: pointer.FromAny(VerificationPending),
		}
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("registered new user", "userId", created.Id.Hex(), "role", registration.Role)
	return created, nil
}

func (s *service) Authenticate(ctx context.Context, email string, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the email exists
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *service) Get(ctx context.Context, userId string) (*User, error) {
	return s.repo.Get(ctx, userId)
}

func (s *service) UpdatePatientProfile(ctx context.Context, userId string, update PatientProfileUpdate) (*User, error) {
	existing, err := s.repo.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !existing.IsPatient() || existing.Patient == nil {
		return nil, ErrNotFound
	}

	// Merge the partial update over a copy so a failed write never leaves
	// the loaded record half mutated.
	profile := deepcopy.Copy(*existing.Patient).(PatientProfile)
	if update.Allergies != nil {
		profile.Allergies = update.Allergies
	}
	if update.Medications != nil {
		profile.Medications = update.Medications
	}
	if update.ChronicConditions != nil {
		profile.ChronicConditions = update.ChronicConditions
	}
	if update.EmergencyContact != nil {
		profile.EmergencyContact = update.EmergencyContact
	}
	if update.BloodType != nil {
		if !IsValidBloodType(*update.BloodType) {
			return nil, fmt.Errorf("%w: invalid blood type %q", errors.BadRequest, *update.BloodType)
		}
		profile.BloodType = update.BloodType
	}
	if update.Height != nil {
		profile.Height = update.Height
	}
	if update.Weight != nil {
		profile.Weight = update.Weight
	}

	return s.repo.UpdatePatientProfile(ctx, userId, profile)
}

// AssignPatient establishes the bidirectional assignment relation in a single
// transaction so the two back-reference lists can never diverge.
func (s *service) AssignPatient(ctx context.Context, providerId string, patientId string) (*User, error) {
	providerObjId, err := primitive.ObjectIDFromHex(providerId)
	if err != nil {
		return nil, ErrNotFound
	}
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, ErrNotFound
	}

	_, err = store.WithTransaction(ctx, s.dbClient, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		if err := s.repo.AddAssignedPatient(sessionCtx, providerObjId, patientObjId); err != nil {
			return nil, err
		}
		if err := s.repo.AddAssignedProvider(sessionCtx, patientObjId, providerObjId); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("assigned patient to provider", "providerId", providerId, "patientId", patientId)
	return s.repo.Get(ctx, providerId)
}

func (s *service) HasAssignment(ctx context.Context, providerId string, patientId string) (bool, error) {
	provider, err := s.repo.Get(ctx, providerId)
	if err != nil {
		return false, err
	}
	if !provider.IsProvider() || provider.Provider == nil {
		return false, nil
	}

	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return false, nil
	}

	assigned := mapset.NewSet[primitive.ObjectID](provider.Provider.AssignedPatients...)
	return assigned.Contains(patientObjId), nil
}

func (s *service) ListAssignedPatients(ctx context.Context, providerId string) ([]*User, error) {
	provider, err := s.repo.Get(ctx, providerId)
	if err != nil {
		return nil, err
	}
	if !provider.IsProvider() || provider.Provider == nil {
		return nil, ErrNotFound
	}
	if len(provider.Provider.AssignedPatients) == 0 {
		return []*User{}, nil
	}

	return s.repo.List(ctx, provider.Provider.AssignedPatients)
}

func validateRegistration(registration *Registration) error {
	switch registration.Role {
	case RolePatient:
	case RoleProvider:
		if registration.Provider == nil || registration.Provider.LicenseNumber == "" {
			return fmt.Errorf("%w: license number is required for providers", errors.BadRequest)
		}
	default:
		return fmt.Errorf("%w: invalid role %q", errors.BadRequest, registration.Role)
	}

	if !registration.ConsentGiven {
		return fmt.Errorf("%w: data usage consent is required", errors.BadRequest)
	}
	if len(registration.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", errors.BadRequest)
	}

	return nil
}
