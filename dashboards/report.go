package dashboards

import (
	"context"
	"fmt"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/carewell/portal/reminders"
)

const (
	reportSheetNameSummary    = "Summary"
	reportSheetNameCompliance = "Compliance"
)

func (s *service) ComplianceReport(ctx context.Context, providerId string) (*xlsx.File, error) {
	dashboard, err := s.ProviderDashboard(ctx, providerId)
	if err != nil {
		return nil, err
	}

	report := complianceReport{
		dashboard:     dashboard,
		generatedTime: time.Now(),
	}
	return report.Generate()
}

type complianceReport struct {
	dashboard     *ProviderDashboard
	generatedTime time.Time
}

func (r complianceReport) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []func(report *xlsx.File) error{
		r.addSummarySheet,
		r.addComplianceSheet,
	}
	for _, fn := range components {
		if err := fn(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (r complianceReport) addSummarySheet(report *xlsx.File) error {
	sh, err := report.AddSheet(reportSheetNameSummary)
	if err != nil {
		return err
	}

	provider := r.dashboard.Provider
	sh.AddRow().AddCell().SetValue("PATIENT COMPLIANCE REPORT")
	sh.AddRow().AddCell().SetValue(fmt.Sprintf("Provider: %s %s", provider.FirstName, provider.LastName))
	sh.AddRow().AddCell().SetValue(fmt.Sprintf("Generated: %s", r.generatedTime.Format(time.RFC1123)))
	sh.AddRow()

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Assigned Patients")
	currentRow.AddCell().SetValue(r.dashboard.TotalPatients)

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("High Adherence")
	currentRow.AddCell().SetValue(r.dashboard.HighAdherenceCount)

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Low Adherence")
	currentRow.AddCell().SetValue(r.dashboard.LowAdherenceCount)

	return nil
}

func (r complianceReport) addComplianceSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(reportSheetNameCompliance)
	if err != nil {
		return err
	}

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Patient")
	currentRow.AddCell().SetValue("Total Reminders")
	currentRow.AddCell().SetValue("Completed")
	currentRow.AddCell().SetValue("Missed")
	currentRow.AddCell().SetValue("Compliance %")
	currentRow.AddCell().SetValue("Adherence")

	for _, row := range r.dashboard.ComplianceData {
		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(row.PatientName)
		currentRow.AddCell().SetValue(row.TotalReminders)
		currentRow.AddCell().SetValue(row.CompletedReminders)
		currentRow.AddCell().SetValue(row.MissedReminders)
		currentRow.AddCell().SetValue(row.CompliancePercentage)

		adherenceCell := currentRow.AddCell()
		adherenceCell.SetValue(row.AdherenceStatus)
		if row.AdherenceStatus == reminders.AdherenceLow {
			style := xlsx.NewStyle()
			style.Font.Bold = true
			adherenceCell.SetStyle(style)
		}
	}

	return nil
}
