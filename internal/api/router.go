package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/loandesk/loan-api/docs"
	"github.com/loandesk/loan-api/internal/api/handler"
	"github.com/loandesk/loan-api/internal/api/metrics"
	"github.com/loandesk/loan-api/internal/api/middleware"
	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
	"github.com/loandesk/loan-api/internal/infrastructure/config"
)

// Dependencies groups everything the router needs. Registry and Redis are optional.
type Dependencies struct {
	Loans        ports.LoanService
	Resolver     ports.IdentityResolver
	Guard        ports.AccessGuard
	Metrics      *metrics.Metrics
	Registry     *prometheus.Registry
	Redis        *redis.Client
	Logger       zerolog.Logger
	DeletePolicy string
}

// route binds a handler to its access policy.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	policy  middleware.Policy
}

var anyRole = []domain.Role{domain.RoleApplicant, domain.RoleManager}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))

	if deps.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: deps.Registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry}))
	}

	// --- Health probes and docs (no auth required) ---
	health := handler.NewHealthHandler(deps.Redis)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Loan routes ---
	loans := handler.NewLoanHandler(deps.Loans)
	routes := []route{
		{http.MethodGet, "", loans.List, middleware.Policy{Roles: anyRole}},
		{http.MethodGet, "/:id", loans.Get, middleware.Policy{Roles: anyRole, Ownership: true}},
		{http.MethodPost, "", loans.Create, middleware.Policy{Roles: []domain.Role{domain.RoleApplicant}}},
		{http.MethodPut, "/:id", loans.Update, middleware.Policy{Roles: []domain.Role{domain.RoleManager}}},
		{http.MethodPatch, "/:id/status", loans.UpdateStatus, middleware.Policy{Roles: []domain.Role{domain.RoleManager}}},
		{http.MethodDelete, "/:id", loans.Delete, DeletePolicy(deps.DeletePolicy)},
	}

	g := e.Group("/api/loans", middleware.Auth(deps.Resolver, deps.Metrics))
	for _, r := range routes {
		g.Add(r.method, r.path, r.handler, middleware.Enforce(deps.Guard, r.policy, deps.Metrics))
	}

	return e
}

// DeletePolicy maps the DELETE_POLICY setting onto a route policy. Unknown
// values fall back to the owner policy.
func DeletePolicy(name string) middleware.Policy {
	switch name {
	case config.DeletePolicyOpen:
		return middleware.Policy{}
	case config.DeletePolicyManager:
		return middleware.Policy{Roles: []domain.Role{domain.RoleManager}}
	default:
		return middleware.Policy{Roles: anyRole, Ownership: true}
	}
}
