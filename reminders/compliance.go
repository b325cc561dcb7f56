package reminders

import (
	"math"
)

const (
	AdherenceHigh = "high"
	AdherenceLow  = "low"
)

// ComplianceSummary is the provider facing view of a single patient's
// reminder completion behavior. It is a pure function of the three counts
// and is recomputed on every dashboard fetch.
type ComplianceSummary struct {
	PatientId            string `json:"patientId"`
	PatientName          string `json:"patientName,omitempty"`
	TotalReminders       int64  `json:"totalReminders"`
	CompletedReminders   int64  `json:"completedReminders"`
	MissedReminders      int64  `json:"missedReminders"`
	CompliancePercentage int    `json:"compliancePercentage"`
	AdherenceStatus      string `json:"adherenceStatus"`
}

func NewComplianceSummary(total, completed, missed int64) ComplianceSummary {
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	// Any missed reminder marks the patient as low adherence, regardless of
	// the completion percentage.
	adherence := AdherenceHigh
	if missed > 0 {
		adherence = AdherenceLow
	}

	return ComplianceSummary{
		TotalReminders:       total,
		CompletedReminders:   completed,
		MissedReminders:      missed,
		CompliancePercentage: percentage,
		AdherenceStatus:      adherence,
	}
}
