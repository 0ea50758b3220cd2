package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// ShiftsHandler manages duty declarations and payroll.
type ShiftsHandler struct {
	service *service.ShiftService
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shiftService *service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{service: shiftService}
}

// Declare POST /shifts.
func (h *ShiftsHandler) Declare(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.DeclareShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	shift, err := h.service.Declare(c.Context(), principal.Employee, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": shiftResponse(shift)})
}

// History GET /shifts.
func (h *ShiftsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	shifts, err := h.service.History(c.Context(), principal.Employee.DiscordID, parseInt(c.Query("limit"), 50))
	if err != nil {
		return err
	}
	items := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, shiftResponse(&shifts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Payroll GET /shifts/payroll.
func (h *ShiftsHandler) Payroll(c *fiber.Ctx) error {
	now := time.Now()
	defaultYear, defaultWeek := now.ISOWeek()
	year := parseInt(c.Query("year"), defaultYear)
	week := parseInt(c.Query("week"), defaultWeek)
	if week < 1 || week > 53 {
		return util.NewValidationError("week out of range", nil)
	}
	lines, err := h.service.Payroll(c.Context(), year, week)
	if err != nil {
		return err
	}
	items := make([]dto.PayrollLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, dto.PayrollLineResponse{
			EmployeeDiscordID: line.EmployeeDiscordID,
			EmployeeName:      line.EmployeeName,
			Grade:             line.Grade,
			TotalMinutes:      line.TotalMinutes,
			TotalSalary:       line.TotalSalary,
			WeeklyCap:         line.WeeklyCap,
		})
	}
	return c.JSON(fiber.Map{"data": items, "year": year, "week": week})
}

func shiftResponse(shift *domain.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:              shift.ID,
		StartTime:       shift.StartTime,
		EndTime:         shift.EndTime,
		DurationMinutes: shift.DurationMinutes,
		WeekNumber:      shift.WeekNumber,
		Year:            shift.Year,
		SalaryEarned:    shift.SalaryEarned,
	}
}
