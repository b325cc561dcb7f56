package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carewell/portal/auth"
	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/reminders"
)

type AssignPatientRequest struct {
	PatientId string `json:"patientId" validate:"required"`
}

type CreateReminderRequest struct {
	PatientId    string    `json:"patientId" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description,omitempty"`
	ReminderType string    `json:"reminderType" validate:"required"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	Priority     string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

type UpdateReminderStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=upcoming missed completed cancelled"`
	Notes  *string `json:"notes,omitempty"`
}

func (h *Handler) ProviderDashboard(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dashboard, err := h.dashboards.ProviderDashboard(ec.Request().Context(), authData.SubjectId)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, dashboard)
}

// ComplianceReport streams the provider's compliance report as an xlsx
// attachment.
func (h *Handler) ComplianceReport(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	report, err := h.dashboards.ComplianceReport(ec.Request().Context(), authData.SubjectId)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := report.Write(buf); err != nil {
		return fmt.Errorf("%w: unable to serialize report", errors.InternalServerError)
	}

	fileName := fmt.Sprintf("compliance-report-%s.xlsx", time.Now().Format("2006-01-02"))
	ec.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ec.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) ListAssignedPatients(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	patients, err := h.users.ListAssignedPatients(ec.Request().Context(), authData.SubjectId)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, patients)
}

func (h *Handler) PatientDetail(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	detail, err := h.dashboards.PatientDetail(ec.Request().Context(), authData.SubjectId, ec.Param("patientId"))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, detail)
}

func (h *Handler) AssignPatient(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dto := AssignPatientRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	patient, err := h.users.AssignPatient(ec.Request().Context(), authData.SubjectId, dto.PatientId)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, patient)
}

func (h *Handler) CreateReminder(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dto := CreateReminderRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	reminder, err := h.reminders.Create(ec.Request().Context(), reminders.CreateReminder{
		PatientId:    dto.PatientId,
		ProviderId:   authData.SubjectId,
		Title:        dto.Title,
		Description:  dto.Description,
		ReminderType: dto.ReminderType,
		DueDate:      dto.DueDate,
		Priority:     dto.Priority,
	})
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusCreated, reminder)
}

func (h *Handler) UpdateReminderStatus(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	dto := UpdateReminderStatusRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	actor := reminders.Actor{
		UserId: authData.SubjectId,
		Role:   authData.Role,
	}
	reminder, err := h.reminders.UpdateStatus(ec.Request().Context(), ec.Param("reminderId"), actor, dto.Status, dto.Notes)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, reminder)
}

func (h *Handler) ListPatientReminders(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	patientId := ec.Param("patientId")
	filter := &reminders.Filter{
		PatientId:  &patientId,
		ProviderId: &authData.SubjectId,
	}
	list, err := h.reminders.List(ec.Request().Context(), filter)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, list)
}
