package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// EmployeesHandler manages login and staff accounts.
type EmployeesHandler struct {
	service *service.AuthService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(authService *service.AuthService) *EmployeesHandler {
	return &EmployeesHandler{service: authService}
}

// Login POST /auth/login.
func (h *EmployeesHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password required", nil)
	}
	emp, token, exp, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Employee:  employeeResponse(emp),
	}})
}

// ChangePassword POST /auth/password/change.
func (h *EmployeesHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := h.service.ChangePassword(c.Context(), principal.Employee.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// CreateEmployee POST /employees.
func (h *EmployeesHandler) CreateEmployee(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	emp, err := h.service.CreateEmployee(c.Context(), principal.Employee, service.EmployeeInput{
		DiscordID: req.DiscordID,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Grade:     req.Grade,
		Active:    true,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": employeeResponse(emp)})
}

// UpdateEmployee PUT /employees/:id.
func (h *EmployeesHandler) UpdateEmployee(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	emp, err := h.service.UpdateEmployee(c.Context(), principal.Employee, c.Params("id"), service.EmployeeInput{
		DiscordID: req.DiscordID,
		Name:      req.Name,
		Email:     req.Email,
		Grade:     req.Grade,
		Active:    active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// ListEmployees GET /employees.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)
	emps, err := h.service.ListEmployees(c.Context(), includeInactive)
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		items = append(items, employeeResponse(&emps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Me GET /auth/me.
func (h *EmployeesHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": employeeResponse(principal.Employee)})
}

func employeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        emp.ID,
		DiscordID: emp.DiscordID,
		Name:      emp.Name,
		Email:     emp.Email,
		Grade:     emp.Grade,
		Active:    emp.Active,
		CreatedAt: emp.CreatedAt,
	}
}
