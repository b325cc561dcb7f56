package command

import (
	"context"
	"fmt"
	"time"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"

	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/users"
)

var (
	patientCount  int
	demoPassword  string
	reminderTypes = []string{
		reminders.TypeVaccination,
		reminders.TypeScreening,
		reminders.TypeCheckup,
		reminders.TypeLabTest,
		reminders.TypeDental,
	}
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Seed a demo provider with assigned patients, metrics and reminders",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(seedDemo) },
}

func seedDemo(usersService users.Service, metricsService metrics.Service, remindersService reminders.Service) error {
	ctx := context.TODO()
	f := faker.New()

	provider, err := usersService.Register(ctx, users.Registration{
		FirstName:    f.Person().FirstName(),
		LastName:     f.Person().LastName(),
		Email:        fmt.Sprintf("provider+%s@example.com", f.RandomStringWithLength(8)),
		Password:     demoPassword,
		Role:         users.RoleProvider,
		ConsentGiven: true,
		Provider: &users.ProviderRegistration{
			LicenseNumber:     f.RandomStringWithLength(10),
			Specialization:    "General Practice",
			HospitalName:      f.Company().Name(),
			ClinicAddress:     f.Address().Address(),
			YearsOfExperience: f.IntBetween(1, 30),
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("created provider %s (%s)\n", provider.FullName(), *provider.Email)

	for i := 0; i < patientCount; i++ {
		patient, err := usersService.Register(ctx, users.Registration{
			FirstName:    f.Person().FirstName(),
			LastName:     f.Person().LastName(),
			Email:        fmt.Sprintf("patient+%s@example.com", f.RandomStringWithLength(8)),
			Password:     demoPassword,
			Role:         users.RolePatient,
			ConsentGiven: true,
		})
		if err != nil {
			return err
		}

		if _, err := usersService.AssignPatient(ctx, provider.Id.Hex(), patient.Id.Hex()); err != nil {
			return err
		}

		if _, err := metricsService.UpsertToday(ctx, patient.Id.Hex(), metrics.Update{
			Steps:       pointer.FromAny(int64(f.IntBetween(1000, 15000))),
			SleepHours:  pointer.FromAny(f.Float64(1, 4, 10)),
			WaterIntake: pointer.FromAny(f.Float64(1, 0, 4)),
			ActiveTime:  pointer.FromAny(f.IntBetween(0, 120)),
		}); err != nil {
			return err
		}

		for j := 0; j < 3; j++ {
			reminderType := reminderTypes[f.IntBetween(0, len(reminderTypes)-1)]
			if _, err := remindersService.Create(ctx, reminders.CreateReminder{
				PatientId:    patient.Id.Hex(),
				ProviderId:   provider.Id.Hex(),
				Title:        fmt.Sprintf("Annual %s", reminderType),
				ReminderType: reminderType,
				DueDate:      time.Now().AddDate(0, 0, f.IntBetween(1, 90)),
				Priority:     reminders.Priorities[f.IntBetween(0, len(reminders.Priorities)-1)],
			}); err != nil {
				return err
			}
		}

		fmt.Printf("created patient %s (%s)\n", patient.FullName(), *patient.Email)
	}

	fmt.Printf("Seeded %v patients for provider %s\n", patientCount, provider.Id.Hex())
	return nil
}

func init() {
	demoCmd.Flags().IntVar(&patientCount, "patients", 5, "Number of patients to create")
	demoCmd.Flags().StringVar(&demoPassword, "password", "wellness", "Password for all seeded accounts")
	rootCmd.AddCommand(demoCmd)
}
