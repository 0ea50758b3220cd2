package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// ApplicationsHandler manages staff recruitment endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	messages     *service.MessageService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService, messages *service.MessageService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, messages: messages}
}

// List GET /applications.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	filter := parseApplicationQuery(c)
	apps, err := h.applications.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationSummary, 0, len(apps))
	for i := range apps {
		items = append(items, applicationSummary(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	detail, err := h.applications.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetail(detail)})
}

// UpdateStatus PATCH /applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	app, err := h.applications.UpdateStatus(c.Context(), principal.Employee, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationSummary(app)})
}

// Close POST /applications/:id/close.
func (h *ApplicationsHandler) Close(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CloseApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	app, err := h.applications.Close(c.Context(), principal.Employee, c.Params("id"), req.Accepted, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationSummary(app)})
}

// CastVote POST /applications/:id/vote.
func (h *ApplicationsHandler) CastVote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CastVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if _, err := h.applications.CastVote(c.Context(), principal.Employee, c.Params("id"), req.Vote, req.Comment); err != nil {
		return err
	}
	summary, err := h.applications.VoteSummary(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": voteSummaryResponse(*summary)})
}

// SendMessage POST /applications/:id/messages.
func (h *ApplicationsHandler) SendMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	msg, err := h.messages.Send(c.Context(), principal.Employee, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// EditMessage PATCH /applications/:id/messages/:number.
func (h *ApplicationsHandler) EditMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		return util.NewValidationError("invalid message number", nil)
	}
	var req dto.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	msg, err := h.messages.Edit(c.Context(), principal.Employee, c.Params("id"), number, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messageResponse(msg)})
}

// DeleteMessage DELETE /applications/:id/messages/:number.
func (h *ApplicationsHandler) DeleteMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		return util.NewValidationError("invalid message number", nil)
	}
	if err := h.messages.Delete(c.Context(), principal.Employee, c.Params("id"), number); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseApplicationQuery(c *fiber.Ctx) repository.ApplicationFilter {
	filter := repository.ApplicationFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ApplicationStatus(strings.TrimSpace(part)))
		}
	}
	if svc := c.Query("service"); svc != "" {
		filter.Service = &svc
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
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func applicationSummary(app *domain.Application) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:                 app.ID,
		CandidateDiscordID: app.CandidateDiscordID,
		FirstName:          app.FirstName,
		LastName:           app.LastName,
		Service:            app.Service,
		Status:             app.Status,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
	}
}

func applicationDetail(detail *service.ApplicationDetail) dto.ApplicationDetailResponse {
	app := detail.Application
	msgs := make([]dto.MessageResponse, 0, len(detail.Messages))
	for i := range detail.Messages {
		msgs = append(msgs, messageResponse(&detail.Messages[i]))
	}
	logs := make([]dto.ApplicationLogResponse, 0, len(detail.Logs))
	for _, entry := range detail.Logs {
		logs = append(logs, dto.ApplicationLogResponse{
			ID:             entry.ID,
			ActorDiscordID: entry.ActorDiscordID,
			ActorName:      entry.ActorName,
			Action:         entry.Action,
			Details:        entry.Details,
			CreatedAt:      entry.CreatedAt,
		})
	}
	return dto.ApplicationDetailResponse{
		ID:                 app.ID,
		CandidateDiscordID: app.CandidateDiscordID,
		FirstName:          app.FirstName,
		LastName:           app.LastName,
		BirthDate:          app.BirthDate,
		Motivation:         app.Motivation,
		Availability:       app.Availability,
		Service:            app.Service,
		Status:             app.Status,
		CloseReason:        app.CloseReason,
		ClosedAt:           app.ClosedAt,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
		Messages:           msgs,
		Votes:              voteSummaryResponse(detail.Votes),
		Logs:               logs,
	}
}

func messageResponse(msg *domain.ApplicationMessage) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:              msg.ID,
		SenderDiscordID: msg.SenderDiscordID,
		SenderName:      msg.SenderName,
		Content:         msg.Content,
		IsFromCandidate: msg.IsFromCandidate,
		MessageNumber:   msg.MessageNumber,
		IsDeleted:       msg.IsDeleted,
		EditedAt:        msg.EditedAt,
		CreatedAt:       msg.CreatedAt,
	}
	if msg.IsDeleted {
		resp.Content = ""
	}
	return resp
}

func voteSummaryResponse(summary domain.VoteSummary) dto.VoteSummaryResponse {
	votes := make([]dto.VoteResponse, 0, len(summary.Votes))
	for _, vote := range summary.Votes {
		votes = append(votes, dto.VoteResponse{
			VoterDiscordID: vote.VoterDiscordID,
			VoterName:      vote.VoterName,
			Vote:           vote.Vote,
			Comment:        vote.Comment,
			UpdatedAt:      vote.UpdatedAt,
		})
	}
	return dto.VoteSummaryResponse{
		For:     summary.For,
		Against: summary.Against,
		Ratio:   summary.Ratio(),
		Votes:   votes,
	}
}
