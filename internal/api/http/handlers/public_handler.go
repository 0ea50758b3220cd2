package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// PublicHandler exposes the unauthenticated submission endpoint.
type PublicHandler struct {
	applications *service.ApplicationService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(applications *service.ApplicationService) *PublicHandler {
	return &PublicHandler{applications: applications}
}

// SubmitApplication POST /public/applications.
func (h *PublicHandler) SubmitApplication(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	details := map[string]any{}
	if strings.TrimSpace(req.DiscordID) == "" {
		details["discord_id"] = "required"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		details["first_name"] = "required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		details["last_name"] = "required"
	}
	if strings.TrimSpace(req.Motivation) == "" {
		details["motivation"] = "required"
	}
	if strings.TrimSpace(req.Service) == "" {
		details["service"] = "required"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid application", details)
	}

	app, err := h.applications.Submit(c.Context(), service.ApplicationSubmitInput{
		CandidateDiscordID: strings.TrimSpace(req.DiscordID),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		BirthDate:          req.BirthDate,
		Motivation:         req.Motivation,
		Availability:       req.Availability,
		Service:            req.Service,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": applicationSummary(app)})
}
