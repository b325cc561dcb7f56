package api

import (
	"go.uber.org/fx"

	"github.com/carewell/portal/auth"
	"github.com/carewell/portal/dashboards"
	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/users"
)

type Handler struct {
	dashboards dashboards.Service
	metrics    metrics.Service
	reminders  reminders.Service
	tokens     auth.TokenService
	users      users.Service
}

type Params struct {
	fx.In

	Dashboards dashboards.Service
	Metrics    metrics.Service
	Reminders  reminders.Service
	Tokens     auth.TokenService
	Users      users.Service
}

func NewHandler(p Params) *Handler {
	return &Handler{
		dashboards: p.Dashboards,
		metrics:    p.Metrics,
		reminders:  p.Reminders,
		tokens:     p.Tokens,
		users:      p.Users,
	}
}
