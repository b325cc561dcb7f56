package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/test"
	"github.com/carewell/portal/users"
)

func RandomPatientUser() users.User {
	id := primitive.NewObjectID()
	return users.User{
		Id:           &id,
		FirstName:    pointer.FromAny(test.Faker.Person().FirstName()),
		LastName:     pointer.FromAny(test.Faker.Person().LastName()),
		Email:        pointer.FromAny(test.Faker.Internet().Email()),
		PasswordHash: pointer.FromAny(test.Faker.RandomStringWithLength(60)),
		Role:         pointer.FromAny(users.RolePatient),
		ConsentGiven: pointer.FromAny(true),
		Patient: &users.PatientProfile{
			BloodType: pointer.FromAny(users.BloodTypes[test.Faker.IntBetween(0, len(users.BloodTypes)-1)]),
			Height:    pointer.FromAny(test.Faker.Float64(1, 150, 200)),
			Weight:    pointer.FromAny(test.Faker.Float64(1, 50, 120)),
			Allergies: []string{test.Faker.Lorem().Word()},
		},
	}
}

func RandomProviderUser() users.User {
	id := primitive.NewObjectID()
	return users.User{
		Id:           &id,
		FirstName:    pointer.FromAny(test.Faker.Person().FirstName()),
		LastName:     pointer.FromAny(test.Faker.Person().LastName()),
		Email:        pointer.FromAny(test.Faker.Internet().Email()),
		PasswordHash: pointer.FromAny(test.Faker.RandomStringWithLength(60)),
		Role:         pointer.FromAny(users.RoleProvider),
		ConsentGiven: pointer.FromAny(true),
		Provider: &users.ProviderProfile{
			LicenseNumber:      pointer.FromAny(test.Faker.RandomStringWithLength(10)),
			Specialization:     pointer.FromAny("Cardiology"),
			HospitalName:       pointer.FromAny(test.Faker.Company().Name()),
			YearsOfExperience:  pointer.FromAny(test.Faker.IntBetween(1, 40)),
			VerificationStatus: pointer.FromAny(users.VerificationPending),
		},
	}
}

func RandomPatientRegistration() users.Registration {
	return users.Registration{
		FirstName:    test.Faker.Person().FirstName(),
		LastName:     test.Faker.Person().LastName(),
		Email:        test.Faker.Internet().Email(),
		Password:     test.Faker.RandomStringWithLength(12),
		Role:         users.RolePatient,
		ConsentGiven: true,
	}
}

func RandomProviderRegistration() users.Registration {
	registration := RandomPatientRegistration()
	registration.Role = users.RoleProvider
	registration.Provider = &users.ProviderRegistration{
		LicenseNumber:     test.Faker.RandomStringWithLength(10),
		Specialization:    "General Practice",
		HospitalName:      test.Faker.Company().Name(),
		ClinicAddress:     test.Faker.Address().Address(),
		YearsOfExperience: test.Faker.IntBetween(1, 40),
	}
	return registration
}
