package users_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"

	dbTest "github.com/carewell/portal/store/test"
	"github.com/carewell/portal/users"
	usersTest "github.com/carewell/portal/users/test"
)

var _ = Describe("Users Repository", func() {
	var repo users.Repository

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = users.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())
		lifecycle.RequireStart()
	})

	Describe("Create", func() {
		It("returns the created user with timestamps", func() {
			user := usersTest.RandomPatientUser()
			user.Id = nil

			result, err := repo.Create(context.Background(), user)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Id).ToNot(BeNil())
			Expect(result.CreatedTime).ToNot(BeZero())
			Expect(*result.Email).To(Equal(*user.Email))
		})

		It("rejects duplicate emails", func() {
			user := usersTest.RandomPatientUser()
			user.Id = nil
			_, err := repo.Create(context.Background(), user)
			Expect(err).ToNot(HaveOccurred())

			duplicate := usersTest.RandomPatientUser()
			duplicate.Id = nil
			duplicate.Email = user.Email
			_, err = repo.Create(context.Background(), duplicate)
			Expect(err).To(MatchError(users.ErrEmailTaken))
		})

		It("rejects duplicate provider license numbers", func() {
			provider := usersTest.RandomProviderUser()
			provider.Id = nil
			_, err := repo.Create(context.Background(), provider)
			Expect(err).ToNot(HaveOccurred())

			duplicate := usersTest.RandomProviderUser()
			duplicate.Id = nil
			duplicate.Provider.LicenseNumber = provider.Provider.LicenseNumber
			_, err = repo.Create(context.Background(), duplicate)
			Expect(err).To(MatchError(users.ErrLicenseTaken))
		})

		It("allows multiple patients without a license number", func() {
			first := usersTest.RandomPatientUser()
			first.Id = nil
			_, err := repo.Create(context.Background(), first)
			Expect(err).ToNot(HaveOccurred())

			second := usersTest.RandomPatientUser()
			second.Id = nil
			_, err = repo.Create(context.Background(), second)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("GetByEmail", func() {
		It("returns the matching user", func() {
			user := usersTest.RandomPatientUser()
			user.Id = nil
			created, err := repo.Create(context.Background(), user)
			Expect(err).ToNot(HaveOccurred())

			result, err := repo.GetByEmail(context.Background(), *user.Email)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Id).To(Equal(created.Id))
		})

		It("returns not found for an unknown email", func() {
			_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
			Expect(err).To(MatchError(users.ErrNotFound))
		})
	})

	Describe("UpdatePatientProfile", func() {
		It("replaces the patient subdocument", func() {
			user := usersTest.RandomPatientUser()
			user.Id = nil
			created, err := repo.Create(context.Background(), user)
			Expect(err).ToNot(HaveOccurred())

			profile := *created.Patient
			profile.Allergies = []string{"penicillin"}

			result, err := repo.UpdatePatientProfile(context.Background(), created.Id.Hex(), profile)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Patient.Allergies).To(Equal([]string{"penicillin"}))
		})

		It("does not match providers", func() {
			provider := usersTest.RandomProviderUser()
			provider.Id = nil
			created, err := repo.Create(context.Background(), provider)
			Expect(err).ToNot(HaveOccurred())

			_, err = repo.UpdatePatientProfile(context.Background(), created.Id.Hex(), users.PatientProfile{})
			Expect(err).To(MatchError(users.ErrNotFound))
		})
	})

	Describe("Assignments", func() {
		var provider, patient *users.User

		BeforeEach(func() {
			var err error
			providerUser := usersTest.RandomProviderUser()
			providerUser.Id = nil
			provider, err = repo.Create(context.Background(), providerUser)
			Expect(err).ToNot(HaveOccurred())

			patientUser := usersTest.RandomPatientUser()
			patientUser.Id = nil
			patient, err = repo.Create(context.Background(), patientUser)
			Expect(err).ToNot(HaveOccurred())
		})

		It("adds the patient to the provider's list exactly once", func() {
			Expect(repo.AddAssignedPatient(context.Background(), *provider.Id, *patient.Id)).To(Succeed())
			Expect(repo.AddAssignedPatient(context.Background(), *provider.Id, *patient.Id)).To(Succeed())

			result, err := repo.Get(context.Background(), provider.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Provider.AssignedPatients).To(HaveLen(1))
			Expect(result.Provider.AssignedPatients[0]).To(Equal(*patient.Id))
		})

		It("adds the provider to the patient's list", func() {
			Expect(repo.AddAssignedProvider(context.Background(), *patient.Id, *provider.Id)).To(Succeed())

			result, err := repo.Get(context.Background(), patient.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Patient.AssignedProviders).To(ConsistOf(*provider.Id))
		})

		It("returns not found when the provider does not exist", func() {
			err := repo.AddAssignedPatient(context.Background(), primitive.NewObjectID(), *patient.Id)
			Expect(err).To(MatchError(users.ErrNotFound))
		})

		It("refuses to assign a patient role as provider", func() {
			err := repo.AddAssignedPatient(context.Background(), *patient.Id, *provider.Id)
			Expect(err).To(MatchError(users.ErrNotFound))
		})
	})
})
