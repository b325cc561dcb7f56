package users_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/pointer"
	dbTest "github.com/carewell/portal/store/test"
	"github.com/carewell/portal/users"
	usersTest "github.com/carewell/portal/users/test"
)

var _ = Describe("Users Service", func() {
	var service users.Service
	var repo users.Repository

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		lifecycle := fxtest.NewLifecycle(GinkgoT())

		repo, err = users.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())

		service, err = users.NewService(users.Params{
			DbClient: database.Client(),
			Logger:   zap.NewNop().Sugar(),
			Repo:     repo,
		})
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()
	})

	Describe("Register", func() {
		It("hashes the password", func() {
			registration := usersTest.RandomPatientRegistration()
			created, err := service.Register(context.Background(), registration)
			Expect(err).ToNot(HaveOccurred())

			stored, err := repo.Get(context.Background(), created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.PasswordHash).ToNot(BeNil())
			Expect(*stored.PasswordHash).ToNot(Equal(registration.Password))
			Expect(bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte(registration.Password))).To(Succeed())
		})

		It("defaults the patient blood type to unknown", func() {
			created, err := service.Register(context.Background(), usersTest.RandomPatientRegistration())
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Patient).ToNot(BeNil())
			Expect(*created.Patient.BloodType).To(Equal(users.BloodTypeUnknown))
		})

		It("marks new providers as pending verification", func() {
			created, err := service.Register(context.Background(), usersTest.RandomProviderRegistration())
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Provider).ToNot(BeNil())
			Expect(*created.Provider.VerificationStatus).To(Equal(users.VerificationPending))
		})

		It("requires consent", func() {
			registration := usersTest.RandomPatientRegistration()
			registration.ConsentGiven = false
			_, err := service.Register(context.Background(), registration)
			Expect(err).To(MatchError(errors.BadRequest))
		})

		It("requires a license number for providers", func() {
			registration := usersTest.RandomProviderRegistration()
			registration.Provider.LicenseNumber = ""
			_, err := service.Register(context.Background(), registration)
			Expect(err).To(MatchError(errors.BadRequest))
		})

		It("rejects short passwords", func() {
			registration := usersTest.RandomPatientRegistration()
			registration.Password = "12345"
			_, err := service.Register(context.Background(), registration)
			Expect(err).To(MatchError(errors.BadRequest))
		})

		It("rejects unknown roles", func() {
			registration := usersTest.RandomPatientRegistration()
			registration.Role = "pharmacist"
			_, err := service.Register(context.Background(), registration)
			Expect(err).To(MatchError(errors.BadRequest))
		})
	})

	Describe("Authenticate", func() {
		var registration users.Registration

		BeforeEach(func() {
			registration = usersTest.RandomPatientRegistration()
			_, err := service.Register(context.Background(), registration)
			Expect(err).ToNot(HaveOccurred())
		})

		It("returns the user for valid credentials", func() {
			user, err := service.Authenticate(context.Background(), registration.Email, registration.Password)
			Expect(err).ToNot(HaveOccurred())
			Expect(*user.Email).To(Equal(registration.Email))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(context.Background(), registration.Email, "wrong-password")
			Expect(err).To(MatchError(users.ErrInvalidCredentials))
		})

		It("does not reveal whether the email exists", func() {
			_, err := service.Authenticate(context.Background(), "unknown@example.com", registration.Password)
			Expect(err).To(MatchError(users.ErrInvalidCredentials))
		})
	})

	Describe("UpdatePatientProfile", func() {
		var patient *users.User

		BeforeEach(func() {
			var err error
			patient, err = service.Register(context.Background(), usersTest.RandomPatientRegistration())
			Expect(err).ToNot(HaveOccurred())
		})

		It("merges only the supplied fields", func() {
			_, err := service.UpdatePatientProfile(context.Background(), patient.Id.Hex(), users.PatientProfileUpdate{
				Height: pointer.FromAny(182.0),
			})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.UpdatePatientProfile(context.Background(), patient.Id.Hex(), users.PatientProfileUpdate{
				Allergies: []string{"latex"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Patient.Allergies).To(Equal([]string{"latex"}))
			Expect(updated.Patient.Height).ToNot(BeNil())
			Expect(*updated.Patient.Height).To(Equal(182.0))
		})

		It("replaces list fields instead of appending to them", func() {
			_, err := service.UpdatePatientProfile(context.Background(), patient.Id.Hex(), users.PatientProfileUpdate{
				Medications: []users.Medication{{Name: "Aspirin", Dosage: "100mg"}},
			})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.UpdatePatientProfile(context.Background(), patient.Id.Hex(), users.PatientProfileUpdate{
				Medications: []users.Medication{{Name: "Ibuprofen", Dosage: "200mg"}},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Patient.Medications).To(HaveLen(1))
			Expect(updated.Patient.Medications[0].Name).To(Equal("Ibuprofen"))
		})

		It("validates the blood type", func() {
			_, err := service.UpdatePatientProfile(context.Background(), patient.Id.Hex(), users.PatientProfileUpdate{
				BloodType: pointer.FromAny("C+"),
			})
			Expect(err).To(MatchError(errors.BadRequest))
		})
	})

	Describe("HasAssignment", func() {
		var provider, patient *users.User

		BeforeEach(func() {
			var err error
			provider, err = service.Register(context.Background(), usersTest.RandomProviderRegistration())
			Expect(err).ToNot(HaveOccurred())
			patient, err = service.Register(context.Background(), usersTest.RandomPatientRegistration())
			Expect(err).ToNot(HaveOccurred())
		})

		It("is false before an assignment exists", func() {
			assigned, err := service.HasAssignment(context.Background(), provider.Id.Hex(), patient.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(assigned).To(BeFalse())
		})

		It("is true once the patient is assigned", func() {
			Expect(repo.AddAssignedPatient(context.Background(), *provider.Id, *patient.Id)).To(Succeed())

			assigned, err := service.HasAssignment(context.Background(), provider.Id.Hex(), patient.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(assigned).To(BeTrue())
		})
	})

	Describe("ListAssignedPatients", func() {
		It("returns the assigned patients", func() {
			provider, err := service.Register(context.Background(), usersTest.RandomProviderRegistration())
			Expect(err).ToNot(HaveOccurred())

			patientIds := make([]string, 0, 2)
			for i := 0; i < 2; i++ {
				patient, err := service.Register(context.Background(), usersTest.RandomPatientRegistration())
				Expect(err).ToNot(HaveOccurred())
				Expect(repo.AddAssignedPatient(context.Background(), *provider.Id, *patient.Id)).To(Succeed())
				patientIds = append(patientIds, patient.Id.Hex())
			}

			result, err := service.ListAssignedPatients(context.Background(), provider.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(2))
			resultIds := []string{result[0].Id.Hex(), result[1].Id.Hex()}
			Expect(resultIds).To(ConsistOf(patientIds))
		})
	})
})
