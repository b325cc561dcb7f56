package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carewell/portal/auth"
	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/users"
)

type RegisterRequest struct {
	FirstName    string                   `json:"firstName" validate:"required"`
	LastName     string                   `json:"lastName" validate:"required"`
	Email        string                   `json:"email" validate:"required,email"`
	Password     string                   `json:"password" validate:"required,min=6"`
	Role         string                   `json:"role" validate:"required,oneof=patient provider"`
	ConsentGiven bool                     `json:"consentGiven"`
	Provider     *ProviderRegistrationDto `json:"provider,omitempty"`
}

type ProviderRegistrationDto struct {
	LicenseNumber     string `json:"licenseNumber" validate:"required"`
	Specialization    string `json:"specialization"`
	HospitalName      string `json:"hospitalName"`
	ClinicAddress     string `json:"clinicAddress"`
	YearsOfExperience int    `json:"yearsOfExperience" validate:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

func (h *Handler) Register(ec echo.Context) error {
	dto := RegisterRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	registration := users.Registration{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		Password:     dto.Password,
		Role:         dto.Role,
		ConsentGiven: dto.ConsentGiven,
	}
	if dto.Provider != nil {
		registration.Provider = &users.ProviderRegistration{
			LicenseNumber:     dto.Provider.LicenseNumber,
			Specialization:    dto.Provider.Specialization,
			HospitalName:      dto.Provider.HospitalName,
			ClinicAddress:     dto.Provider.ClinicAddress,
			YearsOfExperience: dto.Provider.YearsOfExperience,
		}
	}

	user, err := h.users.Register(ec.Request().Context(), registration)
	if err != nil {
		return err
	}

	session, err := h.issueSession(user)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusCreated, session)
}

func (h *Handler) Login(ec echo.Context) error {
	dto := LoginRequest{}
	if err := ec.Bind(&dto); err != nil {
		return err
	}
	if err := ec.Validate(&dto); err != nil {
		return err
	}

	user, err := h.users.Authenticate(ec.Request().Context(), dto.Email, dto.Password)
	if err != nil {
		return err
	}

	session, err := h.issueSession(user)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, session)
}

// CurrentUser returns the profile of the authenticated subject.
func (h *Handler) CurrentUser(ec echo.Context) error {
	authData := auth.GetAuthData(ec.Request().Context())
	if authData == nil {
		return errors.Unauthorized
	}

	user, err := h.users.Get(ec.Request().Context(), authData.SubjectId)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, user)
}

func (h *Handler) issueSession(user *users.User) (*SessionResponse, error) {
	if user.Id == nil || user.Role == nil || user.Email == nil {
		return nil, fmt.Errorf("%w: user record is incomplete", errors.InternalServerError)
	}

	token, err := h.tokens.Issue(&auth.Auth{
		SubjectId: user.Id.Hex(),
		Email:     *user.Email,
		Role:      *user.Role,
	})
	if err != nil {
		return nil, err
	}

	return &SessionResponse{Token: token, User: user}, nil
}
