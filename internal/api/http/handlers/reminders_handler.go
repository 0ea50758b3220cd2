package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// RemindersHandler manages personal reminder endpoints.
type RemindersHandler struct {
	service *service.ReminderService
}

// NewRemindersHandler constructs handler.
func NewRemindersHandler(reminderService *service.ReminderService) *RemindersHandler {
	return &RemindersHandler{service: reminderService}
}

// Schedule POST /reminders.
func (h *RemindersHandler) Schedule(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.ScheduleReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	delay, err := service.ParseDelay(req.Delay)
	if err != nil {
		return err
	}
	reminder, err := h.service.Schedule(principal.Employee.DiscordID, req.Message, delay)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": reminderResponse(reminder)})
}

// List GET /reminders.
func (h *RemindersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	reminders := h.service.ListPending(principal.Employee.DiscordID)
	items := make([]dto.ReminderResponse, 0, len(reminders))
	for i := range reminders {
		items = append(items, reminderResponse(&reminders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Cancel DELETE /reminders/:id.
func (h *RemindersHandler) Cancel(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.Cancel(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"cancelled": true}})
}

func reminderResponse(reminder *service.Reminder) dto.ReminderResponse {
	return dto.ReminderResponse{
		ID:      reminder.ID,
		Message: reminder.Message,
		FiresAt: reminder.FiresAt,
	}
}
