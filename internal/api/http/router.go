package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/employee-portal/secure-api/internal/api/http/handlers"
	"github.com/employee-portal/secure-api/internal/auth"
)

// Operation ids looked up in the access policy table.
const (
	OpEmployeeData    = "employee.data"
	OpAdminDashboard  = "admin.dashboard"
	OpEmployeesList   = "employees.list"
	OpEmployeesGet    = "employees.get"
	OpEmployeesCreate = "employees.create"
	OpEmployeesUpdate = "employees.update"
	OpEmployeesDelete = "employees.delete"
	OpAuthMe          = "auth.me"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeeHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every route under /api except token
// issuance is guarded by its policy entry.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	guard := cfg.AuthMiddleware.Require
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Get("/token", cfg.Auth.Token)
	authGroup.Post("/token", cfg.Auth.IssueForIdentity)
	authGroup.Get("/me", guard(OpAuthMe), cfg.Auth.Me)

	api.Get("/employee/data", guard(OpEmployeeData), cfg.Employees.Data)
	api.Get("/admin/dashboard", guard(OpAdminDashboard), cfg.Employees.AdminDashboard)

	employees := api.Group("/employees")
	employees.Get("/", guard(OpEmployeesList), cfg.Employees.List)
	employees.Get("/:id", guard(OpEmployeesGet), cfg.Employees.Get)
	employees.Post("/", guard(OpEmployeesCreate), cfg.Employees.Create)
	employees.Put("/:id", guard(OpEmployeesUpdate), cfg.Employees.Update)
	employees.Delete("/:id", guard(OpEmployeesDelete), cfg.Employees.Delete)
}
