package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// InternalHandler serves the bot's private callbacks.
type InternalHandler struct {
	secret       string
	applications *service.ApplicationService
	messages     *service.MessageService
}

// NewInternalHandler constructs handler.
func NewInternalHandler(secret string, applications *service.ApplicationService, messages *service.MessageService) *InternalHandler {
	return &InternalHandler{secret: secret, applications: applications, messages: messages}
}

// Authorize checks the shared bot secret.
func (h *InternalHandler) Authorize(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(parts[1]), []byte(h.secret)) != 1 {
		return util.NewUnauthorized("invalid bot secret")
	}
	return c.Next()
}

// CandidateMessage POST /internal/messages mirrors a candidate DM.
func (h *InternalHandler) CandidateMessage(c *fiber.Ctx) error {
	var req dto.CandidateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.DiscordID == "" {
		return util.NewValidationError("discord_id required", nil)
	}
	msg, err := h.messages.RecordCandidateReply(c.Context(), req.DiscordID, req.Name, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// ApplicationByChannel GET /internal/applications/by-channel/:channelID.
func (h *InternalHandler) ApplicationByChannel(c *fiber.Ctx) error {
	app, err := h.applications.GetByChannelID(c.Context(), c.Params("channelID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationSummary(app)})
}
