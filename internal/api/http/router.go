package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/insurance-crm/internal/api/http/handlers"
	"github.com/spec-kit/insurance-crm/internal/auth"
	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/observability"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIVersion     string
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Companies      *handlers.CompanyHandler
	Contacts       *handlers.ContactHandler
	Policies       *handlers.PolicyHandler
	Claims         *handlers.ClaimHandler
	Tasks          *handlers.TaskHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

const (
	admin          = domain.StaffRoleAdmin
	manager        = domain.StaffRoleManager
	agent          = domain.StaffRoleAgent
	underwriter    = domain.StaffRoleUnderwriter
	claimsAdjuster = domain.StaffRoleClaimsAdjuster
)

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	prefix := "/api/" + cfg.APIVersion
	app.Get(prefix, apiIndex(prefix, cfg.APIVersion))
	api := app.Group(prefix)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/register", cfg.AuthMiddleware.Handle, cfg.Auth.Register)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.Profile)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	companies := api.Group("/companies", cfg.AuthMiddleware.Handle)
	companies.Get("/", cfg.Companies.List)
	companies.Post("/", auth.RequireRole(admin, manager, agent), cfg.Companies.Create)
	companies.Get("/:id", cfg.Companies.Get)
	companies.Put("/:id", auth.RequireRole(admin, manager, agent), cfg.Companies.Update)
	companies.Delete("/:id", auth.RequireRole(admin, manager), cfg.Companies.Delete)
	companies.Get("/:id/profile", cfg.Companies.GetProfile)
	companies.Put("/:id/profile", auth.RequireRole(admin, manager, agent), cfg.Companies.UpdateProfile)
	companies.Get("/:id/risk-factors", cfg.Companies.ListRiskFactors)
	companies.Post("/:id/risk-factors", auth.RequireRole(admin, manager, underwriter), cfg.Companies.AddRiskFactor)
	companies.Get("/:id/change-events", cfg.Companies.ListChangeEvents)
	companies.Get("/:id/accounts", cfg.Companies.ListAccounts)
	companies.Post("/:id/accounts", auth.RequireRole(admin, manager, agent, underwriter), cfg.Companies.CreateAccount)

	contacts := api.Group("/contacts", cfg.AuthMiddleware.Handle)
	contacts.Get("/", cfg.Contacts.List)
	contacts.Post("/", auth.RequireRole(admin, manager, agent), cfg.Contacts.Create)
	contacts.Get("/:id", cfg.Contacts.Get)
	contacts.Put("/:id", auth.RequireRole(admin, manager, agent), cfg.Contacts.Update)
	contacts.Delete("/:id", auth.RequireRole(admin, manager), cfg.Contacts.Delete)

	policies := api.Group("/policies", cfg.AuthMiddleware.Handle)
	policies.Get("/", cfg.Policies.List)
	policies.Post("/", auth.RequireRole(admin, manager, agent, underwriter), cfg.Policies.Create)
	policies.Get("/:id", cfg.Policies.Get)
	policies.Put("/:id", auth.RequireRole(admin, manager, agent, underwriter), cfg.Policies.Update)
	policies.Delete("/:id", auth.RequireRole(admin, manager), cfg.Policies.Delete)

	claims := api.Group("/claims", cfg.AuthMiddleware.Handle)
	claims.Get("/", cfg.Claims.List)
	claims.Post("/", auth.RequireRole(admin, manager, agent, claimsAdjuster), cfg.Claims.Create)
	claims.Get("/:id", cfg.Claims.Get)
	claims.Put("/:id", auth.RequireRole(admin, manager, agent, claimsAdjuster), cfg.Claims.Update)
	claims.Delete("/:id", auth.RequireRole(admin, manager), cfg.Claims.Delete)

	tasks := api.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", cfg.Tasks.Update)
	tasks.Delete("/:id", auth.RequireRole(admin, manager), cfg.Tasks.Delete)

	dashboard := api.Group("/dashboard", cfg.AuthMiddleware.Handle)
	dashboard.Get("/metrics", cfg.Dashboard.Metrics)
	dashboard.Get("/recent-activities", cfg.Dashboard.RecentActivities)
	dashboard.Get("/upcoming-tasks", cfg.Dashboard.UpcomingTasks)

	reports := api.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Get("/companies", cfg.Dashboard.CompanyReport)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewDomainError(apperrors.CodeNotFound, "Route not found", fiber.StatusNotFound)
	})
}

func apiIndex(prefix, version string) fiber.Handler {
	endpoints := fiber.Map{}
	for _, name := range []string{"auth", "companies", "contacts", "policies", "claims", "tasks", "reports", "dashboard"} {
		endpoints[name] = prefix + "/" + name
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Insurance CRM API",
			"version":   version,
			"endpoints": endpoints,
		})
	}
}
