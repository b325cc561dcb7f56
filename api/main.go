package api

import (
	"context"
	"fmt"
	"time"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/carewell/portal/auth"
	"github.com/carewell/portal/authz"
	"github.com/carewell/portal/config"
	"github.com/carewell/portal/dashboards"
	"github.com/carewell/portal/errors"
	"github.com/carewell/portal/logger"
	"github.com/carewell/portal/metrics"
	"github.com/carewell/portal/outbox"
	"github.com/carewell/portal/reminders"
	"github.com/carewell/portal/store"
	"github.com/carewell/portal/tips"
	"github.com/carewell/portal/users"
)

// Routes that do not require a session token
var publicRoutes = []string{
	"/ready",
	"/v1/auth/register",
	"/v1/auth/login",
}

func Start(e *echo.Echo, cfg *config.Config, log *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	address := fmt.Sprintf(":%d", cfg.HttpPort)
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(address); err != nil {
					log.Infow("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, authorizer authz.RequestAuthorizer, authenticator auth.Authenticator, zapLogger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	skipper := RouteSkipper(publicRoutes)
	authMiddleware := auth.NewAuthMiddleware(authenticator, auth.AuthMiddlewareOpts{
		Skipper: skipper,
	})
	authzMiddleware := authz.NewAuthzMiddleware(authorizer, authz.AuthzMiddlewareOpts{
		Skipper: RouteSkipper([]string{"/ready"}),
	})

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(zapLogger))
	e.Use(authMiddleware)
	e.Use(authzMiddleware)

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

// RegisterHandlers attaches all portal routes to the server.
func RegisterHandlers(e *echo.Echo, handler *Handler) {
	// Credential endpoints get a tight limit to slow down brute forcing
	authLimiter := newRateLimiter(5, 15*time.Minute)
	reminderLimiter := newRateLimiter(50, time.Hour)

	v1 := e.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", handler.Register, authLimiter)
	authGroup.POST("/login", handler.Login, authLimiter)
	authGroup.GET("/me", handler.CurrentUser)

	patient := v1.Group("/patient")
	patient.GET("/dashboard", handler.PatientDashboard)
	patient.POST("/metrics", handler.LogMetrics)
	patient.GET("/metrics/today", handler.TodayMetrics)
	patient.GET("/metrics/history", handler.MetricsHistory)
	patient.PATCH("/profile", handler.UpdatePatientProfile)
	patient.GET("/reminders", handler.PatientReminders)
	patient.POST("/reminders/:reminderId/complete", handler.CompleteReminder)

	provider := v1.Group("/provider")
	provider.GET("/dashboard", handler.ProviderDashboard)
	provider.GET("/reports/compliance", handler.ComplianceReport)
	provider.GET("/patients", handler.ListAssignedPatients)
	provider.GET("/patients/:patientId", handler.PatientDetail)
	provider.GET("/patients/:patientId/reminders", handler.ListPatientReminders)
	provider.POST("/patients/assign", handler.AssignPatient)
	provider.POST("/reminders", handler.CreateReminder, reminderLimiter)
	provider.PATCH("/reminders/:reminderId/status", handler.UpdateReminderStatus)
}

func newRateLimiter(requests int, window time.Duration) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(requests) / window.Seconds()),
			Burst:     requests,
			ExpiresIn: window,
		}),
	})
}

func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Sugar,
			config.NewConfig,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			auth.NewTokenService,
			auth.NewAuthenticator,
			authz.NewRequestAuthorizer,
			users.NewRepository,
			users.NewService,
			metrics.NewRepository,
			outbox.NewRepository,
			outbox.NewNotifier,
			reminders.NewRepository,
			reminders.NewNotificationHandler,
			reminders.NewService,
			tips.NewRepository,
			dashboards.NewService,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	options := append(
		Dependencies(),
		fx.Invoke(reminders.NewSweeper),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(options...).Run()
}
