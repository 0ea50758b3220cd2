package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/internal/service"
)

// AuditHandler exposes the change record viewer.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// List GET /audit.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := repository.AuditLogFilter{}
	if table := c.Query("table"); table != "" {
		filter.TableName = &table
	}
	if actionStr := c.Query("action"); actionStr != "" {
		action := domain.AuditAction(actionStr)
		filter.Action = &action
	}
	if actor := c.Query("actor"); actor != "" {
		filter.ActorDiscordID = &actor
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	entries, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditLogResponse{
			ID:             entry.ID,
			ActorDiscordID: entry.ActorDiscordID,
			ActorName:      entry.ActorName,
			ActorGrade:     entry.ActorGrade,
			Action:         entry.Action,
			TableName:      entry.TableName,
			RecordID:       entry.RecordID,
			OldData:        entry.OldData,
			NewData:        entry.NewData,
			CreatedAt:      entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"data":  items,
		"total": total,
		"page":  page,
	})
}
