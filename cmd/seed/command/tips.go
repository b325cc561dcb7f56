package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/tips"
)

var defaultTips = []tips.HealthTip{
	{
		Title:    pointer.FromAny("Stay Hydrated"),
		Content:  pointer.FromAny("Drink at least 2 liters of water a day. Keep a bottle at your desk so you never forget."),
		Category: pointer.FromAny(tips.CategoryNutrition),
	},
	{
		Title:    pointer.FromAny("Take the Stairs"),
		Content:  pointer.FromAny("Short bouts of movement add up. Taking the stairs a few times a day is an easy way to hit your active minutes."),
		Category: pointer.FromAny(tips.CategoryExercise),
	},
	{
		Title:    pointer.FromAny("Wind Down Before Bed"),
		Content:  pointer.FromAny("Put screens away an hour before sleep. A consistent bedtime routine improves sleep quality more than extra hours."),
		Category: pointer.FromAny(tips.CategorySleep),
	},
	{
		Title:    pointer.FromAny("Breathe Through Stress"),
		Content:  pointer.FromAny("When stress spikes, try four counts in, four counts out, for two minutes. It resets your nervous system."),
		Category: pointer.FromAny(tips.CategoryStressManagement),
	},
	{
		Title:    pointer.FromAny("Don't Skip Checkups"),
		Content:  pointer.FromAny("Preventive screenings catch problems early, when they are easiest to treat. Keep your reminders up to date."),
		Category: pointer.FromAny(tips.CategoryPreventiveCare),
	},
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Seed the health tips collection",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(seedTips) },
}

func seedTips(service tips.Service) error {
	for _, tip := range defaultTips {
		tip.IsActive = pointer.FromAny(true)
		created, err := service.Create(context.TODO(), tip)
		if err != nil {
			return err
		}
		fmt.Printf("created tip %s %s\n", created.Id.Hex(), *created.Title)
	}

	fmt.Printf("Seeded %v tips\n", len(defaultTips))
	return nil
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}
