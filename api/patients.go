package api

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carewell/portal/auth"
	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/pointer"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/users"
)

const defaultHistoryDays = 7

type LogMetricsRequest struct {
	Steps          *int64            `json:"steps,omitempty" validate:"omitempty,gte=0"`
	SleepHours     *float64          `json:"sleepHours,omitempty" validate:"omitempty,gte=0,lte=24"`
	WaterIntake    *float64          `json:"waterIntake,omitempty" validate:"omitempty,gte=0"`
	ActiveTime     *int              `json:"activeTime,omitempty" validate:"omitempty,gte=0"`
	CaloriesBurned *int              `json:"caloriesBurned,omitempty" validate:"omitempty,gte=0"`
	HeartRate      *int              `json:"heartRate,omitempty" validate:"omitempty,gt=0"`
	BloodPressure  *BloodPressureDto `json:"bloodPressure,omitempty"`
	Notes          *string           `json:"notes,omitempty"`
}

type BloodPressureDto struct {
	Systolic  int `json:"systolic" validate:"gt=0"`
	Diastolic int `json:"diastolic" validate:"gt=0"`
}

type UpdateProfileRequest struct {
	Allergies         []string             `json:"allergies,omitempty"`
	Medications       []MedicationDto      `json:"medications,omitempty" validate:"omitempty,dive"`
	ChronicConditions []string             `json:"chronicConditions,omitempty"`
	EmergencyContact  *EmergencyContactDto `json:"emergencyContact,omitempty"`
	BloodType         *string              `json:"bloodType,omitempty"`
	Height            *float64             `json:"height,omitempty" validate:"omitempty,gt=0"`
	Weight            *float64             `json:"weight,omitempty" validate:"omitempty,gt=0"`
}

type MedicationDto struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

type EmergencyContactDto struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

func (h *Handler) PatientDashboard(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dashboard, err := h.dashboards.PatientDashboard(ec.Request().Context(), authData.SubjectId)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, dashboard)
}

func (h *Handler) LogMetrics(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dto := LogMetricsRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	update := metrics.Update{
		Steps:          dto.Steps,
		SleepHours:     dto.SleepHours,
		WaterIntake:    dto.WaterIntake,
		ActiveTime:     dto.ActiveTime,
		CaloriesBurned: dto.CaloriesBurned,
		HeartRate:      dto.HeartRate,
		Notes:          dto.Notes,
	}
	if dto.BloodPressure != nil {
		update.BloodPressure = &metrics.BloodPressure{
			Systolic:  dto.BloodPressure.Systolic,
			Diastolic: dto.BloodPressure.Diastolic,
		}
	}

	metric, err := h.metrics.UpsertToday(ec.Request().Context(), authData.SubjectId, update)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, metric)
}

func (h *Handler) TodayMetrics(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	metric, err := h.metrics.Today(ec.Request().Context(), authData.SubjectId)
	if errs.Is(err, metrics.ErrNotFound) {
		return ec.JSON(http.StatusOK, metrics.DefaultMetric())
	} else if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, metric)
}

func (h *Handler) MetricsHistory(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	days := defaultHistoryDays
	if raw := ec.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			return errors.BadRequest
		}
		days = parsed
	}

	history, err := h.metrics.History(ec.Request().Context(), authData.SubjectId, days)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, history)
}

func (h *Handler) UpdatePatientProfile(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dto := UpdateProfileRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	update := users.PatientProfileUpdate{
		Allergies:         dto.Allergies,
		ChronicConditions: dto.ChronicConditions,
		BloodType:         dto.BloodType,
		Height:            dto.Height,
		Weight:            dto.Weight,
	}
	if dto.Medications != nil {
		update.Medications = make([]users.Medication, 0, len(dto.Medications))
		for _, m := range dto.Medications {
			update.Medications = append(update.Medications, users.Medication{
				Name:      m.Name,
				Dosage:    m.Dosage,
				Frequency: m.Frequency,
			})
		}
	}
	if dto.EmergencyContact != nil {
		update.EmergencyContact = &users.EmergencyContact{
			Name:         dto.EmergencyContact.Name,
			Relationship: dto.EmergencyContact.Relationship,
			Phone:        dto.EmergencyContact.Phone,
		}
	}

	user, err := h.users.UpdatePatientProfile(ec.Request().Context(), authData.SubjectId, update)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, user)
}

func (h *Handler) PatientReminders(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	var status *string
	if raw := ec.QueryParam("status"); raw != "" {
		if !reminders.IsValidStatus(raw) {
			return errors.BadRequest
		}
		status = pointer.FromAny(raw)
	}

	list, err := h.reminders.ListByPatient(ec.Request().Context(), authData.SubjectId, status)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, list)
}

// CompleteReminder marks one of the patient's own reminders as completed.
func (h *Handler) CompleteReminder(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	actor := reminders.Actor{
		UserId: authData.SubjectId,
		Role:   authData.Role,
	}
	reminder, err := h.reminders.UpdateStatus(ec.Request().Context(), ec.Param("reminderId"), actor, reminders.StatusCompleted, nil)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, reminder)
}
