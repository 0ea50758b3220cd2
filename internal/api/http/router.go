package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/api/http/handlers"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/persistence"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Employees      *handlers.EmployeesHandler
	Applications   *handlers.ApplicationsHandler
	Public         *handlers.PublicHandler
	Internal       *handlers.InternalHandler
	Patients       *handlers.PatientsHandler
	Tariffs        *handlers.TariffsHandler
	Medications    *handlers.MedicationsHandler
	Wiki           *handlers.WikiHandler
	Shifts         *handlers.ShiftsHandler
	Reminders      *handlers.RemindersHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.AuthMiddleware
	Redis          *persistence.Redis
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Candidate-facing submission, throttled per IP.
	public := app.Group("/public")
	public.Post("/applications",
		RateLimit(cfg.Redis, cfg.Logger, "submit", 5, time.Hour),
		cfg.Public.SubmitApplication)

	// Bot callbacks, authenticated with the shared secret.
	internal := app.Group("/internal", cfg.Internal.Authorize)
	internal.Post("/messages", cfg.Internal.CandidateMessage)
	internal.Get("/applications/by-channel/:channelID", cfg.Internal.ApplicationByChannel)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Employees.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Employees.Me)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Employees.ChangePassword)

	api := app.Group("", cfg.AuthMiddleware.Handle)

	applications := api.Group("/applications", auth.RequirePermission(auth.PermApplicationsView))
	applications.Get("/", cfg.Applications.List)
	applications.Get("/:id", cfg.Applications.Get)
	applications.Patch("/:id/status", auth.RequirePermission(auth.PermApplicationsManage), cfg.Applications.UpdateStatus)
	applications.Post("/:id/close", auth.RequirePermission(auth.PermApplicationsClose), cfg.Applications.Close)
	applications.Post("/:id/vote", auth.RequirePermission(auth.PermApplicationsVote), cfg.Applications.CastVote)
	applications.Post("/:id/messages", auth.RequirePermission(auth.PermApplicationsManage), cfg.Applications.SendMessage)
	applications.Patch("/:id/messages/:number", auth.RequirePermission(auth.PermApplicationsManage), cfg.Applications.EditMessage)
	applications.Delete("/:id/messages/:number", auth.RequirePermission(auth.PermApplicationsManage), cfg.Applications.DeleteMessage)

	patients := api.Group("/patients", auth.RequirePermission(auth.PermPatientsView))
	patients.Get("/", cfg.Patients.Search)
	patients.Get("/:id", cfg.Patients.Get)
	patients.Post("/", auth.RequirePermission(auth.PermPatientsManage), cfg.Patients.Create)
	patients.Put("/:id", auth.RequirePermission(auth.PermPatientsManage), cfg.Patients.Update)
	patients.Delete("/:id", auth.RequirePermission(auth.PermPatientsDelete), cfg.Patients.Delete)
	patients.Post("/:id/restore", auth.RequirePermission(auth.PermPatientsDelete), cfg.Patients.Restore)

	tariffs := api.Group("/tariffs", auth.RequirePermission(auth.PermTariffsView))
	tariffs.Get("/", cfg.Tariffs.ListTypes)
	tariffs.Get("/categories", cfg.Tariffs.ListCategories)
	tariffs.Post("/categories", auth.RequirePermission(auth.PermTariffsManage), cfg.Tariffs.CreateCategory)
	tariffs.Delete("/categories/:id", auth.RequirePermission(auth.PermTariffsManage), cfg.Tariffs.DeleteCategory)
	tariffs.Post("/", auth.RequirePermission(auth.PermTariffsManage), cfg.Tariffs.CreateType)
	tariffs.Put("/:id", auth.RequirePermission(auth.PermTariffsManage), cfg.Tariffs.UpdateType)
	tariffs.Delete("/:id", auth.RequirePermission(auth.PermTariffsManage), cfg.Tariffs.DeleteType)

	medications := api.Group("/medications", auth.RequirePermission(auth.PermMedicationsView))
	medications.Get("/", cfg.Medications.List)
	medications.Get("/categories", cfg.Medications.ListCategories)
	medications.Post("/categories", auth.RequirePermission(auth.PermMedicationsManage), cfg.Medications.CreateCategory)
	medications.Delete("/categories/:id", auth.RequirePermission(auth.PermMedicationsManage), cfg.Medications.DeleteCategory)
	medications.Post("/", auth.RequirePermission(auth.PermMedicationsManage), cfg.Medications.Create)
	medications.Put("/:id", auth.RequirePermission(auth.PermMedicationsManage), cfg.Medications.Update)
	medications.Delete("/:id", auth.RequirePermission(auth.PermMedicationsManage), cfg.Medications.Delete)

	wiki := api.Group("/wiki", auth.RequirePermission(auth.PermWikiView))
	wiki.Get("/", cfg.Wiki.List)
	wiki.Get("/:slug", cfg.Wiki.GetBySlug)
	wiki.Post("/", auth.RequirePermission(auth.PermWikiManage), cfg.Wiki.Create)
	wiki.Put("/reorder", auth.RequirePermission(auth.PermWikiManage), cfg.Wiki.Reorder)
	wiki.Put("/:id", auth.RequirePermission(auth.PermWikiManage), cfg.Wiki.Update)
	wiki.Delete("/:id", auth.RequirePermission(auth.PermWikiManage), cfg.Wiki.Delete)

	shifts := api.Group("/shifts", auth.RequirePermission(auth.PermShiftsDeclare))
	shifts.Post("/", cfg.Shifts.Declare)
	shifts.Get("/", cfg.Shifts.History)
	shifts.Get("/payroll", auth.RequirePermission(auth.PermShiftsPayroll), cfg.Shifts.Payroll)

	reminders := api.Group("/reminders")
	reminders.Post("/", cfg.Reminders.Schedule)
	reminders.Get("/", cfg.Reminders.List)
	reminders.Delete("/:id", cfg.Reminders.Cancel)

	api.Get("/audit", auth.RequirePermission(auth.PermAuditView), cfg.Audit.List)

	employees := api.Group("/employees", auth.RequireGrade(domain.GradeDirection))
	employees.Get("/", cfg.Employees.ListEmployees)
	employees.Post("/", cfg.Employees.CreateEmployee)
	employees.Put("/:id", cfg.Employees.UpdateEmployee)
}
